package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one turn in a session. Messages are append-only: no edits,
// no deletion. Image carries a data URI when the turn is a generated image.
type ChatMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	UserId    string
	Role      string
	Content   string
	Image     string
	CreatedAt time.Time
}
