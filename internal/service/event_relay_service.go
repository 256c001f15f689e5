package service

import (
	"context"
	"encoding/json"

	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/websocket"
	"ai-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IEventRelayService interface {
	Consume(ctx context.Context) error
}

// eventRelayService subscribes to the chat event bus and forwards each
// event to the websocket hub of the user it belongs to.
type eventRelayService struct {
	pubSub *gochannel.GoChannel
	hub    *websocket.Hub
	logger logger.ILogger
}

func NewEventRelayService(pubSub *gochannel.GoChannel, hub *websocket.Hub, log logger.ILogger) IEventRelayService {
	return &eventRelayService{
		pubSub: pubSub,
		hub:    hub,
		logger: log,
	}
}

func (s *eventRelayService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, events.TopicChatEvents)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *eventRelayService) processMessage(msg *message.Message) {
	var ev events.ChatEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		s.logger.Warn("EventRelay", "Dropping malformed chat event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if ev.UserId == "" {
		s.logger.Warn("EventRelay", "Dropping chat event without user id", map[string]interface{}{"type": ev.Type})
		msg.Ack()
		return
	}

	s.hub.Send(ev.UserId, msg.Payload)
	msg.Ack()
}
