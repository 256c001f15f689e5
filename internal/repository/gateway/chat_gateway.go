package gateway

import (
	"context"
	"fmt"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ChatGateway is the durable side of the session view: typed access to the
// chat_sessions and messages collections, every query scoped by user id.
type ChatGateway struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChatGateway(uowFactory unitofwork.RepositoryFactory) *ChatGateway {
	return &ChatGateway{
		uowFactory: uowFactory,
	}
}

func (g *ChatGateway) ListSessions(ctx context.Context, userId string) ([]*entity.ChatSession, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	return uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (g *ChatGateway) InsertSession(ctx context.Context, session *entity.ChatSession) error {
	uow := g.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().Create(ctx, session)
}

func (g *ChatGateway) RenameSessionIf(ctx context.Context, sessionId uuid.UUID, userId, expectedTitle, newTitle string) error {
	uow := g.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().RenameIf(ctx, sessionId, userId, expectedTitle, newTitle)
}

func (g *ChatGateway) ListMessages(ctx context.Context, userId string, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}

	// created_at ascending, id as the storage-order tie breaker
	return uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
		specification.OrderBy{Field: "id", Desc: false},
	)
}

func (g *ChatGateway) InsertMessage(ctx context.Context, message *entity.ChatMessage) error {
	uow := g.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatMessageRepository().Create(ctx, message)
}
