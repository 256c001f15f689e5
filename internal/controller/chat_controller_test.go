package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/sessionview"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChatService satisfies service.IChatService with canned responses.
type stubChatService struct {
	createResp *dto.CreateSessionResponse
	viewResp   *dto.ViewResponse
	sendErr    error

	lastUserId string
	lastPrompt string
}

func (s *stubChatService) CreateSession(_ context.Context, userId string) (*dto.CreateSessionResponse, error) {
	s.lastUserId = userId
	return s.createResp, nil
}

func (s *stubChatService) GetAllSessions(_ context.Context, userId string) ([]*dto.SessionResponse, error) {
	s.lastUserId = userId
	return []*dto.SessionResponse{}, nil
}

func (s *stubChatService) GetChatHistory(_ context.Context, userId string, _ uuid.UUID) ([]*dto.MessageResponse, error) {
	s.lastUserId = userId
	return []*dto.MessageResponse{}, nil
}

func (s *stubChatService) SelectSession(_ context.Context, userId string, _ uuid.UUID) (*dto.ViewResponse, error) {
	s.lastUserId = userId
	return s.viewResp, nil
}

func (s *stubChatService) GetView(_ context.Context, userId string) (*dto.ViewResponse, error) {
	s.lastUserId = userId
	return s.viewResp, nil
}

func (s *stubChatService) SendText(_ context.Context, userId, prompt string) error {
	s.lastUserId = userId
	s.lastPrompt = prompt
	return s.sendErr
}

func (s *stubChatService) SendImage(_ context.Context, userId, prompt string) error {
	s.lastUserId = userId
	s.lastPrompt = prompt
	return s.sendErr
}

func newTestApp(stub *stubChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	NewChatController(stub).RegisterRoutes(api)
	return app
}

func signToken(t *testing.T, userId string) string {
	t.Helper()
	os.Setenv("JWT_SECRET", "test_secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userId})
	signed, err := token.SignedString([]byte("test_secret"))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestChatControllerRequiresAuth(t *testing.T) {
	app := newTestApp(&stubChatService{})

	resp := doRequest(t, app, "GET", "/api/chat/v1/view", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestChatControllerCreateSession(t *testing.T) {
	stub := &stubChatService{
		createResp: &dto.CreateSessionResponse{SessionId: uuid.New(), Title: "New Chat"},
	}
	app := newTestApp(stub)
	token := signToken(t, "user-42")

	resp := doRequest(t, app, "POST", "/api/chat/v1/session", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-42", stub.lastUserId)

	var envelope serverutils.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
}

func TestChatControllerGenerateText(t *testing.T) {
	stub := &stubChatService{}
	app := newTestApp(stub)
	token := signToken(t, "user-42")

	resp := doRequest(t, app, "POST", "/api/chat/v1/generate/text", token, dto.GenerateRequest{Prompt: "hello"})
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "hello", stub.lastPrompt)
}

func TestChatControllerGenerateValidation(t *testing.T) {
	stub := &stubChatService{}
	app := newTestApp(stub)
	token := signToken(t, "user-42")

	resp := doRequest(t, app, "POST", "/api/chat/v1/generate/text", token, map[string]string{})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, stub.lastPrompt)
}

func TestChatControllerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		sendErr    error
		wantStatus int
	}{
		{name: "empty prompt", sendErr: sessionview.ErrEmptyPrompt, wantStatus: fiber.StatusUnprocessableEntity},
		{name: "generation pending", sendErr: sessionview.ErrGenerationPending, wantStatus: fiber.StatusConflict},
		{name: "no active session", sendErr: sessionview.ErrNoActiveSession, wantStatus: fiber.StatusPreconditionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubChatService{sendErr: tt.sendErr}
			app := newTestApp(stub)
			token := signToken(t, "user-42")

			resp := doRequest(t, app, "POST", "/api/chat/v1/generate/image", token, dto.GenerateRequest{Prompt: "x"})
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var envelope serverutils.Response
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
			assert.False(t, envelope.Success)
		})
	}
}

func TestChatControllerInvalidSessionId(t *testing.T) {
	stub := &stubChatService{viewResp: &dto.ViewResponse{}}
	app := newTestApp(stub)
	token := signToken(t, "user-42")

	resp := doRequest(t, app, "POST", "/api/chat/v1/session/not-a-uuid/select", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/chat/v1/session/not-a-uuid/messages", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
