package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/gateway"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ChatSessionRepository())
	assert.NotNil(t, uow.ChatMessageRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check Session Repository", func(t *testing.T) {
		count, err := uow.ChatSessionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Session count: %d", count)
	})

	t.Run("Check Message Repository", func(t *testing.T) {
		count, err := uow.ChatMessageRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Message count: %d", count)
	})

	t.Run("Session and Message Round Trip", func(t *testing.T) {
		ctx := context.Background()
		userId := "integration-" + uuid.New().String()

		session := &entity.ChatSession{
			SessionId: uuid.New(),
			UserId:    userId,
			Title:     constant.DefaultSessionTitle,
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.ChatSessionRepository().Create(ctx, session))

		msg := &entity.ChatMessage{
			Id:        uuid.New(),
			SessionId: session.SessionId,
			UserId:    userId,
			Role:      constant.ChatMessageRoleUser,
			Content:   "integration hello",
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.ChatMessageRepository().Create(ctx, msg))

		found, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.BySessionID{SessionID: session.SessionId},
			specification.OwnedBy{UserID: userId},
		)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, constant.DefaultSessionTitle, found.Title)

		messages, err := uow.ChatMessageRepository().FindAll(ctx,
			specification.BySessionID{SessionID: session.SessionId},
		)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "integration hello", messages[0].Content)
	})

	t.Run("RenameIf Is Conditional", func(t *testing.T) {
		ctx := context.Background()
		userId := "integration-" + uuid.New().String()

		session := &entity.ChatSession{
			SessionId: uuid.New(),
			UserId:    userId,
			Title:     constant.DefaultSessionTitle,
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.ChatSessionRepository().Create(ctx, session))

		// First rename wins.
		require.NoError(t, uow.ChatSessionRepository().RenameIf(ctx, session.SessionId, userId, constant.DefaultSessionTitle, "first title"))
		// Second rename finds the sentinel gone and changes nothing.
		require.NoError(t, uow.ChatSessionRepository().RenameIf(ctx, session.SessionId, userId, constant.DefaultSessionTitle, "second title"))

		found, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{SessionID: session.SessionId})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "first title", found.Title)
	})

	t.Run("Gateway Enforces Ownership", func(t *testing.T) {
		ctx := context.Background()
		gw := gateway.NewChatGateway(uowFactory)
		userId := "integration-" + uuid.New().String()

		session := &entity.ChatSession{
			SessionId: uuid.New(),
			UserId:    userId,
			Title:     constant.DefaultSessionTitle,
			CreatedAt: time.Now(),
		}
		require.NoError(t, gw.InsertSession(ctx, session))

		_, err := gw.ListMessages(ctx, "someone-else", session.SessionId)
		assert.Error(t, err)

		messages, err := gw.ListMessages(ctx, userId, session.SessionId)
		assert.NoError(t, err)
		assert.Empty(t, messages)
	})
}
