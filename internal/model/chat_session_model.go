package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	SessionId uuid.UUID `gorm:"column:session_id;type:uuid;primaryKey"`
	UserId    string    `gorm:"type:text;not null;index"` // User ownership for data isolation
	Title     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
