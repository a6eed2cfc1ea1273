package controller

import (
	"errors"

	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/pkg/serverutils"
	"focus-shield-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IClassifyController interface {
	RegisterRoutes(r fiber.Router)
	Classify(ctx *fiber.Ctx) error
}

type classifyController struct {
	gatewayService service.IGatewayService
}

func NewClassifyController(gatewayService service.IGatewayService) IClassifyController {
	return &classifyController{
		gatewayService: gatewayService,
	}
}

func (c *classifyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/classify/v1")
	h.Post("", c.Classify)
}

func (c *classifyController) Classify(ctx *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.gatewayService.Classify(ctx.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			return fiber.NewError(fiber.StatusConflict, "No active session")
		case errors.Is(err, service.ErrStaleSession):
			return fiber.NewError(fiber.StatusGone, "Session changed during classification")
		case errors.Is(err, service.ErrAnalysisPending):
			return fiber.NewError(fiber.StatusTooManyRequests, "Classification already in progress")
		case errors.Is(err, service.ErrClassifierFailed):
			return fiber.NewError(fiber.StatusBadGateway, "Classifier unavailable")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}
