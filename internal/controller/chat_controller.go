package controller

import (
	"context"
	"errors"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"
	"ai-chat-be/internal/sessionview"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	SelectSession(ctx *fiber.Ctx) error
	View(ctx *fiber.Ctx) error
	GenerateText(ctx *fiber.Ctx) error
	GenerateImage(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("session", c.CreateSession)
	h.Get("sessions", c.ListSessions)
	h.Get("session/:id/messages", c.History)
	h.Post("session/:id/select", c.SelectSession)
	h.Get("view", c.View)
	h.Post("generate/text", c.GenerateText)
	h.Post("generate/image", c.GenerateImage)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.chatService.CreateSession(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.chatService.GetAllSessions(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.chatService.GetChatHistory(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) SelectSession(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.chatService.SelectSession(ctx.Context(), userId, sessionId)
	if err != nil {
		return mapViewError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success select session", res))
}

func (c *chatController) View(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.chatService.GetView(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get view", res))
}

func (c *chatController) GenerateText(ctx *fiber.Ctx) error {
	return c.generate(ctx, c.chatService.SendText, "Text generation dispatched")
}

func (c *chatController) GenerateImage(ctx *fiber.Ctx) error {
	return c.generate(ctx, c.chatService.SendImage, "Image generation dispatched")
}

func (c *chatController) generate(
	ctx *fiber.Ctx,
	send func(ctx context.Context, userId, prompt string) error,
	okMessage string,
) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := send(ctx.Context(), userId, req.Prompt); err != nil {
		return mapViewError(err)
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse(okMessage, nil))
}

// mapViewError translates session view sentinels into HTTP statuses.
func mapViewError(err error) error {
	switch {
	case errors.Is(err, sessionview.ErrEmptyPrompt):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, sessionview.ErrGenerationPending):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, sessionview.ErrNoActiveSession):
		return fiber.NewError(fiber.StatusPreconditionFailed, err.Error())
	default:
		return err
	}
}
