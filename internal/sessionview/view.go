package sessionview

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/selection"
	"ai-chat-be/pkg/genai"

	"github.com/google/uuid"
)

// Guard violations. All three leave the view untouched.
var (
	ErrEmptyPrompt       = errors.New("prompt is empty")
	ErrGenerationPending = errors.New("a generation request is already pending")
	ErrNoActiveSession   = errors.New("no active session selected")
)

// View owns one user's optimistic chat state: the active session id, the
// ordered message list for that session and the two in-flight flags. All
// mutation is serialized behind a single mutex; gateway and provider calls
// happen outside it.
//
// Appends are optimistic: the local list updates before the durable write,
// and a failed write is logged but does not roll the append back. At
// quiescence (no generation in flight) the local list matches the stored one.
type View struct {
	mu        sync.Mutex
	userId    string
	gateway   Gateway
	generator genai.Generator
	selection selection.Store
	notifier  Notifier
	log       logger.ILogger

	active       uuid.UUID
	messages     []*entity.ChatMessage
	textPending  bool
	imagePending bool

	inflight sync.WaitGroup
	now      func() time.Time
}

// NewView restores the last selected session id from the selection store.
// Call Reload to populate the message list for it.
func NewView(userId string, gateway Gateway, generator genai.Generator, sel selection.Store, notifier Notifier, log logger.ILogger) *View {
	v := &View{
		userId:    userId,
		gateway:   gateway,
		generator: generator,
		selection: sel,
		notifier:  notifier,
		log:       log,
		now:       time.Now,
	}

	saved, err := sel.Load(context.Background(), userId)
	if err != nil {
		log.Warn("SessionView", "Failed to load session selection", map[string]interface{}{"user_id": userId, "error": err.Error()})
		return v
	}
	if saved != "" {
		if id, perr := uuid.Parse(saved); perr == nil {
			v.active = id
		}
	}
	return v
}

// Reload fetches the active session's stored history into the local list.
// A read failure leaves the list empty; the view stays usable.
func (v *View) Reload(ctx context.Context) {
	v.mu.Lock()
	active := v.active
	v.mu.Unlock()

	if active == uuid.Nil {
		return
	}
	v.loadMessages(ctx, active)
}

// Select makes sessionId the active session. Legal from any state: the local
// list clears immediately (never show stale content), the selection is
// persisted, and the new session's history is loaded. An in-flight generation
// for the previous session is not cancelled; its result is discarded on
// arrival (see complete).
func (v *View) Select(ctx context.Context, sessionId uuid.UUID) {
	v.mu.Lock()
	if sessionId != v.active {
		v.messages = nil
	}
	v.active = sessionId
	v.mu.Unlock()

	if err := v.selection.Save(ctx, v.userId, sessionId.String()); err != nil {
		v.log.Warn("SessionView", "Failed to persist session selection", map[string]interface{}{"user_id": v.userId, "error": err.Error()})
	}

	v.loadMessages(ctx, sessionId)
}

func (v *View) loadMessages(ctx context.Context, sessionId uuid.UUID) {
	msgs, err := v.gateway.ListMessages(ctx, v.userId, sessionId)
	if err != nil {
		v.log.Warn("SessionView", "Failed to load session history", map[string]interface{}{
			"user_id":    v.userId,
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return
	}

	v.mu.Lock()
	// A concurrent Select may have moved on; only apply to the still-active session.
	if v.active == sessionId {
		v.messages = msgs
	}
	v.mu.Unlock()
}

func (v *View) SubmitText(ctx context.Context, prompt string) error {
	return v.submit(ctx, genai.CapabilityText, prompt)
}

func (v *View) SubmitImage(ctx context.Context, prompt string) error {
	return v.submit(ctx, genai.CapabilityImage, prompt)
}

func (v *View) submit(ctx context.Context, capability genai.Capability, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ErrEmptyPrompt
	}

	v.mu.Lock()
	if v.textPending || v.imagePending {
		v.mu.Unlock()
		return ErrGenerationPending
	}
	if v.active == uuid.Nil {
		v.mu.Unlock()
		return ErrNoActiveSession
	}

	issued := v.active
	userMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: issued,
		UserId:    v.userId,
		Role:      constant.ChatMessageRoleUser,
		Content:   prompt,
		CreatedAt: v.now(),
	}
	v.messages = append(v.messages, userMsg)
	if capability == genai.CapabilityImage {
		v.imagePending = true
	} else {
		v.textPending = true
	}
	v.mu.Unlock()

	if v.notifier != nil {
		v.notifier.MessageAppended(v.userId, userMsg)
	}

	// The durable write is fire-and-forget relative to the optimistic append.
	if err := v.gateway.InsertMessage(ctx, userMsg); err != nil {
		v.log.Warn("SessionView", "Failed to persist user message", map[string]interface{}{
			"user_id":    v.userId,
			"session_id": issued.String(),
			"message_id": userMsg.Id.String(),
			"error":      err.Error(),
		})
	}

	// Auto-title: first prompt wins, conditionally on the sentinel still
	// being stored. Racing submissions cannot both rename.
	if err := v.gateway.RenameSessionIf(ctx, issued, v.userId, constant.DefaultSessionTitle, titleFromPrompt(prompt)); err != nil {
		v.log.Warn("SessionView", "Failed to update session title", map[string]interface{}{
			"user_id":    v.userId,
			"session_id": issued.String(),
			"error":      err.Error(),
		})
	}

	v.inflight.Add(1)
	go v.complete(issued, capability, prompt)
	return nil
}

// complete runs off the submitting goroutine. The request is bound to the
// session id it was issued for; a result arriving after the user switched
// sessions is discarded instead of leaking into the new session's list.
func (v *View) complete(issued uuid.UUID, capability genai.Capability, prompt string) {
	defer v.inflight.Done()

	// No caller cancellation applies here; the provider's HTTP client
	// enforces the per-call bound.
	ctx := context.Background()
	res, genErr := v.generator.Generate(ctx, genai.Request{Capability: capability, Prompt: prompt})

	v.mu.Lock()
	if capability == genai.CapabilityImage {
		v.imagePending = false
	} else {
		v.textPending = false
	}

	if issued != v.active {
		v.mu.Unlock()
		v.log.Info("SessionView", "Discarding generation result for inactive session", map[string]interface{}{
			"user_id":    v.userId,
			"issued_for": issued.String(),
			"capability": string(capability),
		})
		return
	}

	reply := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: issued,
		UserId:    v.userId,
		Role:      constant.ChatMessageRoleAssistant,
		CreatedAt: v.now(),
	}

	persist := genErr == nil
	if genErr != nil {
		// Synthetic failure message: local view only, never persisted.
		if capability == genai.CapabilityImage {
			reply.Content = constant.ImageGenerationErrorMessage
		} else {
			reply.Content = constant.TextGenerationErrorMessage
		}
		v.log.Error("SessionView", "Generation failed", map[string]interface{}{
			"user_id":    v.userId,
			"session_id": issued.String(),
			"capability": string(capability),
			"error":      genErr.Error(),
		})
	} else if capability == genai.CapabilityImage {
		reply.Image = res.Image
	} else {
		reply.Content = res.Text
		if reply.Content == "" {
			reply.Content = constant.NoResponsePlaceholder
		}
	}

	v.messages = append(v.messages, reply)
	v.mu.Unlock()

	if v.notifier != nil {
		v.notifier.MessageAppended(v.userId, reply)
	}

	if persist {
		if err := v.gateway.InsertMessage(ctx, reply); err != nil {
			v.log.Warn("SessionView", "Failed to persist assistant message", map[string]interface{}{
				"user_id":    v.userId,
				"session_id": issued.String(),
				"message_id": reply.Id.String(),
				"error":      err.Error(),
			})
		}
	}
}

// ActiveSession returns the active session id, uuid.Nil when none.
func (v *View) ActiveSession() uuid.UUID {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}

// Pending reports the two in-flight flags.
func (v *View) Pending() (text, image bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.textPending, v.imagePending
}

// Messages returns a snapshot copy of the local ordered list.
func (v *View) Messages() []entity.ChatMessage {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]entity.ChatMessage, len(v.messages))
	for i, m := range v.messages {
		out[i] = *m
	}
	return out
}

// Quiesce blocks until no generation is in flight.
func (v *View) Quiesce() {
	v.inflight.Wait()
}

func titleFromPrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > constant.SessionTitleMaxLen {
		runes = runes[:constant.SessionTitleMaxLen]
	}
	return string(runes)
}
