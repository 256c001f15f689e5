package events

import (
	"time"

	"ai-chat-be/internal/entity"
)

// TopicChatEvents is the watermill topic all chat events flow through.
const TopicChatEvents = "chat.events"

const (
	TypeSessionCreated  = "chat.session.created"
	TypeMessageAppended = "chat.message.appended"
)

// ChatEvent is the wire shape pushed to connected clients. Payload mirrors
// the DTO the REST surface uses so clients render both the same way.
type ChatEvent struct {
	Type       string                 `json:"type"`
	UserId     string                 `json:"user_id"`
	SessionId  string                 `json:"session_id"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func NewMessageAppended(userId string, msg *entity.ChatMessage) ChatEvent {
	payload := map[string]interface{}{
		"id":         msg.Id.String(),
		"role":       msg.Role,
		"content":    msg.Content,
		"created_at": msg.CreatedAt,
	}
	if msg.Image != "" {
		payload["image"] = msg.Image
	}
	return ChatEvent{
		Type:       TypeMessageAppended,
		UserId:     userId,
		SessionId:  msg.SessionId.String(),
		Payload:    payload,
		OccurredAt: time.Now(),
	}
}

func NewSessionCreated(session *entity.ChatSession) ChatEvent {
	return ChatEvent{
		Type:      TypeSessionCreated,
		UserId:    session.UserId,
		SessionId: session.SessionId.String(),
		Payload: map[string]interface{}{
			"title":      session.Title,
			"created_at": session.CreatedAt,
		},
		OccurredAt: time.Now(),
	}
}
