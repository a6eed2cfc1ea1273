package handler

import (
	"focus-shield-be/internal/pkg/logger"
	"focus-shield-be/internal/service"
	internalWS "focus-shield-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// StreamHandler owns the push channel to extension contexts and the activity
// trail endpoints the popup reads.
type StreamHandler struct {
	activityService service.IActivityService
	hub             *internalWS.Hub
	logger          logger.ILogger
}

func NewStreamHandler(activityService service.IActivityService, hub *internalWS.Hub, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		activityService: activityService,
		hub:             hub,
		logger:          log,
	}
}

// ServeWs upgrades the connection and attaches it to the hub. The backend is
// loopback-only, so the handshake carries no credentials.
func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StreamHandler", "Starting WebSocket session", nil)
			internalWS.ServeWs(h.hub, conn)
			h.logger.Info("StreamHandler", "WebSocket session ended", nil)
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// GetActivity returns the newest enforcement trail entries.
func (h *StreamHandler) GetActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	res, err := h.activityService.GetRecent(c.UserContext(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  res.Items,
		"total": res.Total,
		"limit": limit,
	})
}
