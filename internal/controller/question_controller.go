package controller

import (
	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/pkg/serverutils"
	"focus-shield-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuestionController interface {
	RegisterRoutes(r fiber.Router)
	Next(ctx *fiber.Ctx) error
}

type questionController struct {
	questionService service.IQuestionService
}

func NewQuestionController(questionService service.IQuestionService) IQuestionController {
	return &questionController{
		questionService: questionService,
	}
}

func (c *questionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/question/v1")
	h.Post("next", c.Next)
}

func (c *questionController) Next(ctx *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.questionService.Next(ctx.Context(), &req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Question flow unavailable")
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}
