package events

import (
	"encoding/json"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Publisher forwards view appends onto the chat event bus. Best-effort:
// publish failures are logged and never block the session view.
type Publisher struct {
	pubSub *gochannel.GoChannel
	log    logger.ILogger
}

func NewPublisher(pubSub *gochannel.GoChannel, log logger.ILogger) *Publisher {
	return &Publisher{
		pubSub: pubSub,
		log:    log,
	}
}

func (p *Publisher) MessageAppended(userId string, msg *entity.ChatMessage) {
	p.publish(NewMessageAppended(userId, msg))
}

func (p *Publisher) SessionCreated(session *entity.ChatSession) {
	p.publish(NewSessionCreated(session))
}

func (p *Publisher) publish(ev ChatEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("Events", "Failed to marshal chat event", map[string]interface{}{"error": err.Error(), "type": ev.Type})
		return
	}
	if err := p.pubSub.Publish(TopicChatEvents, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		p.log.Warn("Events", "Failed to publish chat event", map[string]interface{}{"error": err.Error(), "type": ev.Type})
	}
}
