package bootstrap

import (
	"context"
	"log"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/controller"
	"ai-chat-be/internal/handler"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/gateway"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/internal/selection"
	"ai-chat-be/internal/service"
	"ai-chat-be/internal/websocket"
	"ai-chat-be/pkg/events"
	"ai-chat-be/pkg/genai"
	"ai-chat-be/pkg/genai/openrouter"
	"ai-chat-be/pkg/genai/stability"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	EventRelayService service.IEventRelayService

	// WebSockets
	ChatStreamHandler *handler.ChatStreamHandler
	WebSocketHub      *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// Redis backs the active-session store and cross-instance push. When it
	// is unreachable the selection store falls back to process memory.
	var rdb *redis.Client
	var selectionStore selection.Store = selection.NewMemoryStore()
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Active session survives this process only", err)
			rdb = nil
		} else {
			selectionStore = selection.NewRedisStore(rdb)
		}
	}

	// WebSocket Hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 4. Generation Providers
	textProvider := openrouter.NewProvider(
		cfg.Keys.OpenRouter,
		cfg.Gen.OpenRouterBaseURL,
		cfg.Gen.TextModel,
		cfg.Gen.RequestTimeout,
	)
	imageProvider := stability.NewProvider(
		cfg.Keys.Stability,
		cfg.Gen.StabilityBaseURL,
		cfg.Gen.ImageModel,
		cfg.Gen.RequestTimeout,
	)
	dispatcher := genai.NewDispatcher(textProvider, imageProvider)

	// 5. Services
	notifier := events.NewPublisher(pubSub, sysLogger)
	chatGateway := gateway.NewChatGateway(uowFactory)
	viewRepo := memory.NewViewRepository()

	chatService := service.NewChatService(
		chatGateway,
		dispatcher,
		selectionStore,
		viewRepo,
		notifier,
		sysLogger,
	)

	relayService := service.NewEventRelayService(pubSub, wsHub, sysLogger)

	// 6. Transport
	chatStreamHandler := handler.NewChatStreamHandler(wsHub, sysLogger)

	return &Container{
		ChatController:    controller.NewChatController(chatService),
		EventRelayService: relayService,
		ChatStreamHandler: chatStreamHandler,
		WebSocketHub:      wsHub,
	}
}
