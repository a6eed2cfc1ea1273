package controller

import (
	"focus-shield-be/internal/constant"
	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/pkg/serverutils"
	"focus-shield-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStateController interface {
	RegisterRoutes(r fiber.Router)
	Snapshot(ctx *fiber.Ctx) error
	Decisions(ctx *fiber.Ctx) error
	SaveBlockPageState(ctx *fiber.Ctx) error
	BlockPageState(ctx *fiber.Ctx) error
}

type stateController struct {
	stateService service.IStateService
}

func NewStateController(stateService service.IStateService) IStateController {
	return &stateController{
		stateService: stateService,
	}
}

func (c *stateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/state/v1")
	h.Get("", c.Snapshot)
	h.Get("decisions", c.Decisions)
	h.Put("block-page/:tabId", c.SaveBlockPageState)
	h.Get("block-page/:tabId", c.BlockPageState)
}

func (c *stateController) Snapshot(ctx *fiber.Ctx) error {
	res, err := c.stateService.Snapshot(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *stateController) Decisions(ctx *fiber.Ctx) error {
	partition := ctx.Query("partition", constant.PartitionBlocked)
	if partition != constant.PartitionAllowed && partition != constant.PartitionBlocked {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown partition")
	}
	limit := ctx.QueryInt("limit", 50)

	res, err := c.stateService.Decisions(ctx.Context(), partition, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *stateController) SaveBlockPageState(ctx *fiber.Ctx) error {
	tabId, err := ctx.ParamsInt("tabId")
	if err != nil || tabId < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid tab id")
	}

	var req dto.BlockPageState
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	c.stateService.SaveBlockPageState(tabId, &req)
	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"saved": true}))
}

func (c *stateController) BlockPageState(ctx *fiber.Ctx) error {
	tabId, err := ctx.ParamsInt("tabId")
	if err != nil || tabId < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid tab id")
	}

	state := c.stateService.BlockPageState(tabId)
	if state == nil {
		return fiber.NewError(fiber.StatusNotFound, "No block page state for tab")
	}
	return ctx.JSON(serverutils.SuccessResponse(state))
}
