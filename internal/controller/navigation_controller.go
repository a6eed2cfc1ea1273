package controller

import (
	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/pkg/serverutils"
	"focus-shield-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INavigationController interface {
	RegisterRoutes(r fiber.Router)
	Decide(ctx *fiber.Ctx) error
}

type navigationController struct {
	interceptorService service.IInterceptorService
}

func NewNavigationController(interceptorService service.IInterceptorService) INavigationController {
	return &navigationController{
		interceptorService: interceptorService,
	}
}

func (c *navigationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/navigation/v1")
	h.Post("decide", c.Decide)
}

// Decide is the hot path: the background script calls it on every main-frame
// navigation and applies the returned action.
func (c *navigationController) Decide(ctx *fiber.Ctx) error {
	var req dto.NavigationEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res := c.interceptorService.Decide(ctx.Context(), &req)
	return ctx.JSON(serverutils.SuccessResponse(res))
}
