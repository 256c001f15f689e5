package service

import (
	"context"
	"sync"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/selection"
	"ai-chat-be/internal/sessionview"
	"ai-chat-be/pkg/genai"

	"github.com/google/uuid"
)

// IChatService defines the chat service interface
type IChatService interface {
	CreateSession(ctx context.Context, userId string) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId string) ([]*dto.SessionResponse, error)
	GetChatHistory(ctx context.Context, userId string, sessionId uuid.UUID) ([]*dto.MessageResponse, error)
	SelectSession(ctx context.Context, userId string, sessionId uuid.UUID) (*dto.ViewResponse, error)
	GetView(ctx context.Context, userId string) (*dto.ViewResponse, error)
	SendText(ctx context.Context, userId, prompt string) error
	SendImage(ctx context.Context, userId, prompt string) error
}

// chatService hands each user a session view backed by the shared gateway
// and dispatcher, and translates view state into transport DTOs.
type chatService struct {
	gateway   sessionview.Gateway
	generator genai.Generator
	selection selection.Store
	views     *memory.ViewRepository
	notifier  sessionview.Notifier
	log       logger.ILogger

	mu sync.Mutex // serializes view construction per process
}

func NewChatService(
	gateway sessionview.Gateway,
	generator genai.Generator,
	sel selection.Store,
	views *memory.ViewRepository,
	notifier sessionview.Notifier,
	log logger.ILogger,
) IChatService {
	return &chatService{
		gateway:   gateway,
		generator: generator,
		selection: sel,
		views:     views,
		notifier:  notifier,
		log:       log,
	}
}

// entryFor returns the user's cached view/directory pair, building it from
// durable state on first access (or after cache eviction).
func (cs *chatService) entryFor(ctx context.Context, userId string) *memory.Entry {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if entry, found := cs.views.Get(userId); found {
		return entry
	}

	view := sessionview.NewView(userId, cs.gateway, cs.generator, cs.selection, cs.notifier, cs.log)
	view.Reload(ctx)

	directory := sessionview.NewDirectory(userId, cs.gateway, view, cs.notifier, cs.log)

	entry := &memory.Entry{View: view, Directory: directory}
	cs.views.Save(userId, entry)
	return entry
}

func (cs *chatService) CreateSession(ctx context.Context, userId string) (*dto.CreateSessionResponse, error) {
	entry := cs.entryFor(ctx, userId)

	session, err := entry.Directory.Create(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{
		SessionId: session.SessionId,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
	}, nil
}

func (cs *chatService) GetAllSessions(ctx context.Context, userId string) ([]*dto.SessionResponse, error) {
	entry := cs.entryFor(ctx, userId)

	if err := entry.Directory.Refresh(ctx); err != nil {
		return nil, err
	}

	sessions := entry.Directory.Sessions()
	response := make([]*dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, &dto.SessionResponse{
			SessionId: s.SessionId,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
		})
	}

	return response, nil
}

// GetChatHistory reads the durable list directly; it does not disturb the
// caller's optimistic view.
func (cs *chatService) GetChatHistory(ctx context.Context, userId string, sessionId uuid.UUID) ([]*dto.MessageResponse, error) {
	messages, err := cs.gateway.ListMessages(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, &dto.MessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			Image:     m.Image,
			CreatedAt: m.CreatedAt,
		})
	}

	return response, nil
}

func (cs *chatService) SelectSession(ctx context.Context, userId string, sessionId uuid.UUID) (*dto.ViewResponse, error) {
	entry := cs.entryFor(ctx, userId)
	entry.View.Select(ctx, sessionId)
	return cs.snapshot(entry.View), nil
}

func (cs *chatService) GetView(ctx context.Context, userId string) (*dto.ViewResponse, error) {
	entry := cs.entryFor(ctx, userId)
	return cs.snapshot(entry.View), nil
}

func (cs *chatService) SendText(ctx context.Context, userId, prompt string) error {
	entry := cs.entryFor(ctx, userId)
	return entry.View.SubmitText(ctx, prompt)
}

func (cs *chatService) SendImage(ctx context.Context, userId, prompt string) error {
	entry := cs.entryFor(ctx, userId)
	return entry.View.SubmitImage(ctx, prompt)
}

func (cs *chatService) snapshot(view *sessionview.View) *dto.ViewResponse {
	textPending, imagePending := view.Pending()

	resp := &dto.ViewResponse{
		TextPending:  textPending,
		ImagePending: imagePending,
	}
	if active := view.ActiveSession(); active != uuid.Nil {
		resp.ActiveSessionId = active.String()
	}

	messages := view.Messages()
	resp.Messages = make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		resp.Messages = append(resp.Messages, dto.MessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			Image:     m.Image,
			CreatedAt: m.CreatedAt,
		})
	}

	return resp
}
