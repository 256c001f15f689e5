package sessionview

import (
	"context"
	"sync"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Directory lists and creates a user's sessions and hands the selected id to
// the owning view. Creation is best-effort: a failed insert means no session,
// no retry, list untouched.
type Directory struct {
	mu       sync.Mutex
	userId   string
	gateway  Gateway
	view     *View
	notifier Notifier
	log      logger.ILogger

	sessions []*entity.ChatSession
	now      func() time.Time
}

func NewDirectory(userId string, gateway Gateway, view *View, notifier Notifier, log logger.ILogger) *Directory {
	return &Directory{
		userId:   userId,
		gateway:  gateway,
		view:     view,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Refresh reloads the listed sequence, newest created first.
func (d *Directory) Refresh(ctx context.Context) error {
	sessions, err := d.gateway.ListSessions(ctx, d.userId)
	if err != nil {
		d.log.Warn("SessionDirectory", "Failed to list sessions", map[string]interface{}{"user_id": d.userId, "error": err.Error()})
		return err
	}

	d.mu.Lock()
	d.sessions = sessions
	d.mu.Unlock()
	return nil
}

// Sessions returns a snapshot copy of the last refreshed list.
func (d *Directory) Sessions() []entity.ChatSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]entity.ChatSession, len(d.sessions))
	for i, s := range d.sessions {
		out[i] = *s
	}
	return out
}

// Create persists a fresh session, then selects it on the view and refreshes
// the list, in that order, so a selected session is never absent from the
// listed sequence for longer than the refresh takes.
func (d *Directory) Create(ctx context.Context) (*entity.ChatSession, error) {
	session := &entity.ChatSession{
		SessionId: uuid.New(),
		UserId:    d.userId,
		Title:     constant.DefaultSessionTitle,
		CreatedAt: d.now(),
	}

	if err := d.gateway.InsertSession(ctx, session); err != nil {
		// Best effort: no session created, nothing else changes.
		d.log.Warn("SessionDirectory", "Failed to create session", map[string]interface{}{"user_id": d.userId, "error": err.Error()})
		return nil, err
	}

	if d.view != nil {
		d.view.Select(ctx, session.SessionId)
	}
	// Refresh already logs its own failures.
	_ = d.Refresh(ctx)

	if d.notifier != nil {
		d.notifier.SessionCreated(session)
	}

	return session, nil
}
