package handler

import (
	"os"

	"ai-chat-be/internal/pkg/logger"
	internalWS "ai-chat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ChatStreamHandler upgrades authenticated connections onto the hub so chat
// events reach every device the user has open.
type ChatStreamHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewChatStreamHandler(hub *internalWS.Hub, log logger.ILogger) *ChatStreamHandler {
	return &ChatStreamHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *ChatStreamHandler) RegisterRoutes(r fiber.Router) {
	// Reject plain HTTP requests before they reach the upgrader
	r.Use("/chat/v1/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	r.Get("/chat/v1/ws", websocket.New(h.serveWs))
}

func (h *ChatStreamHandler) serveWs(conn *websocket.Conn) {
	userId, err := h.authenticate(conn)
	if err != nil {
		h.logger.Warn("ChatStream", "Rejected websocket handshake", map[string]interface{}{"error": err.Error()})
		conn.Close()
		return
	}

	client := &internalWS.Client{
		Hub:    h.hub,
		Conn:   conn,
		UserID: userId,
		Send:   make(chan []byte, 64),
	}

	h.hub.Register(client)

	go client.WritePump()
	client.ReadPump()
}

// authenticate accepts the token via the "token" query parameter (browser
// standard) and validates it with the same secret the HTTP middleware uses.
func (h *ChatStreamHandler) authenticate(conn *websocket.Conn) (string, error) {
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		return "", fiber.ErrUnauthorized
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", fiber.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	userId, ok := claims["user_id"].(string)
	if !ok || userId == "" {
		return "", fiber.ErrUnauthorized
	}

	return userId, nil
}
