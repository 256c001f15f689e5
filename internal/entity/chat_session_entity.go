package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is a user-owned conversation thread. Sessions are created on
// explicit user action and are never deleted by this service.
type ChatSession struct {
	SessionId uuid.UUID
	UserId    string
	Title     string
	CreatedAt time.Time
}
