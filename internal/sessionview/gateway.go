package sessionview

import (
	"context"

	"ai-chat-be/internal/entity"

	"github.com/google/uuid"
)

// Gateway is the persistence boundary the session view depends on. Every
// operation is scoped by user id; cross-user access is rejected by the
// implementation, not here.
type Gateway interface {
	// ListSessions returns the user's sessions, newest created first.
	ListSessions(ctx context.Context, userId string) ([]*entity.ChatSession, error)
	InsertSession(ctx context.Context, session *entity.ChatSession) error
	// RenameSessionIf updates the title only while the stored title still
	// equals expectedTitle; a no-op otherwise.
	RenameSessionIf(ctx context.Context, sessionId uuid.UUID, userId, expectedTitle, newTitle string) error
	// ListMessages returns the session's messages ordered by creation time
	// ascending, ties broken by storage order. Fails when the session does
	// not exist or belongs to another user.
	ListMessages(ctx context.Context, userId string, sessionId uuid.UUID) ([]*entity.ChatMessage, error)
	InsertMessage(ctx context.Context, message *entity.ChatMessage) error
}

// Notifier receives local appends so they can be pushed to connected clients.
// Implementations must not block; a nil Notifier disables push entirely.
type Notifier interface {
	MessageAppended(userId string, message *entity.ChatMessage)
	SessionCreated(session *entity.ChatSession)
}
