package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherMessageAppended(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(context.Background(), TopicChatEvents)
	require.NoError(t, err)

	p := NewPublisher(pubSub, logger.Nop())

	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: uuid.New(),
		UserId:    "user-1",
		Role:      constant.ChatMessageRoleAssistant,
		Content:   "hello",
		CreatedAt: time.Now(),
	}
	p.MessageAppended("user-1", msg)

	select {
	case received := <-messages:
		received.Ack()

		var ev ChatEvent
		require.NoError(t, json.Unmarshal(received.Payload, &ev))
		assert.Equal(t, TypeMessageAppended, ev.Type)
		assert.Equal(t, "user-1", ev.UserId)
		assert.Equal(t, msg.SessionId.String(), ev.SessionId)
		assert.Equal(t, "hello", ev.Payload["content"])
		assert.Equal(t, constant.ChatMessageRoleAssistant, ev.Payload["role"])
		assert.NotContains(t, ev.Payload, "image")
	case <-time.After(2 * time.Second):
		t.Fatal("expected a chat event on the bus")
	}
}

func TestPublisherSessionCreated(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(context.Background(), TopicChatEvents)
	require.NoError(t, err)

	p := NewPublisher(pubSub, logger.Nop())

	session := &entity.ChatSession{
		SessionId: uuid.New(),
		UserId:    "user-1",
		Title:     constant.DefaultSessionTitle,
		CreatedAt: time.Now(),
	}
	p.SessionCreated(session)

	select {
	case received := <-messages:
		received.Ack()

		var ev ChatEvent
		require.NoError(t, json.Unmarshal(received.Payload, &ev))
		assert.Equal(t, TypeSessionCreated, ev.Type)
		assert.Equal(t, session.SessionId.String(), ev.SessionId)
		assert.Equal(t, constant.DefaultSessionTitle, ev.Payload["title"])
	case <-time.After(2 * time.Second):
		t.Fatal("expected a chat event on the bus")
	}
}

func TestImageMessageCarriesImagePayload(t *testing.T) {
	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: uuid.New(),
		UserId:    "user-1",
		Role:      constant.ChatMessageRoleAssistant,
		Image:     "data:image/png;base64,AAAA",
		CreatedAt: time.Now(),
	}

	ev := NewMessageAppended("user-1", msg)
	assert.Equal(t, "data:image/png;base64,AAAA", ev.Payload["image"])
}
