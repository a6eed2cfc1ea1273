package controller

import (
	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/pkg/serverutils"
	"focus-shield-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	End(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("start", c.Start)
	h.Post("end", c.End)
	h.Post("reset", c.Reset)
}

func (c *sessionController) Start(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.sessionService.Start(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(dto.StartSessionResponse{Session: *res}))
}

func (c *sessionController) End(ctx *fiber.Ctx) error {
	if err := c.sessionService.End(ctx.Context()); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"ended": true}))
}

func (c *sessionController) Reset(ctx *fiber.Ctx) error {
	if err := c.sessionService.Reset(ctx.Context()); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"reset": true}))
}
