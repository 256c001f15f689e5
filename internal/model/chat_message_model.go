package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId uuid.UUID `gorm:"column:session_id;type:uuid;not null;index"`
	UserId    string    `gorm:"type:text;not null;index"`
	Role      string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:text"`
	Image     string    `gorm:"type:text"` // data URI, empty for text turns
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "messages"
}
