package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// ViewResponse is a snapshot of the caller's session view: the active session,
// the optimistic message list and the two in-flight flags.
type ViewResponse struct {
	ActiveSessionId string            `json:"active_session_id,omitempty"`
	TextPending     bool              `json:"text_pending"`
	ImagePending    bool              `json:"image_pending"`
	Messages        []MessageResponse `json:"messages"`
}
