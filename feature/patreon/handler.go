package patreon

import (
	"errors"

	"patron-manager/core/kv"
	"patron-manager/core/logger"
	"patron-manager/feature/patreon/models"
	"patron-manager/feature/patreon/webhook"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Webhook headers sent by Patreon.
const (
	HeaderEvent     = "X-Patreon-Event"
	HeaderSignature = "X-Patreon-Signature"
)

// Handler handles HTTP requests for the Patreon roster.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = models.Member{}
	return &Handler{service: service}
}

// RegisterRoutes registers the webhook and roster routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/webhook", h.HandleWebhook)

	group := app.Group("/patreon")
	group.Get("/members", h.HandleListMembers)
	group.Get("/members/:id", h.HandleGetMember)
	group.Get("/stats", h.HandleStats)
	group.Post("/sync", h.HandleSync)
}

// HandleWebhook receives Patreon member webhooks.
// @Summary Patreon Webhook
// @Description Verifies the HMAC-MD5 signature and applies a members:* event to the roster.
// @Tags patreon
// @Accept json
// @Produce plain
// @Param X-Patreon-Event header string true "Event type"
// @Param X-Patreon-Signature header string true "Hex HMAC-MD5 of the body"
// @Success 200 {string} string "OK"
// @Failure 400 {string} string "Missing headers"
// @Failure 401 {string} string "Invalid signature"
// @Failure 500 {string} string "Error processing webhook"
// @Router /webhook [post]
func (h *Handler) HandleWebhook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	event := c.Get(HeaderEvent)
	signature := c.Get(HeaderSignature)
	if event == "" || signature == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Missing headers")
	}

	_, err := h.service.HandleWebhook(c.Context(), event, signature, c.Body())
	if errors.Is(err, webhook.ErrInvalidSignature) {
		l.Warn("Invalid webhook signature", zap.String("event", event))
		return c.Status(fiber.StatusUnauthorized).SendString("Invalid signature")
	}
	if err != nil {
		l.Error("Error processing webhook", zap.String("event", event), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("Error processing webhook")
	}
	return c.SendString("OK")
}

// HandleListMembers lists the membership snapshot.
// @Summary List Members
// @Description Returns every member currently held in memory.
// @Tags patreon
// @Produce json
// @Success 200 {array} models.Member
// @Router /patreon/members [get]
func (h *Handler) HandleListMembers(c *fiber.Ctx) error {
	return c.JSON(h.service.Members())
}

// HandleGetMember returns one member.
// @Summary Get Member
// @Tags patreon
// @Produce json
// @Param id path string true "Patreon member id"
// @Success 200 {object} models.Member
// @Failure 404 {object} map[string]string "Not Found"
// @Router /patreon/members/{id} [get]
func (h *Handler) HandleGetMember(c *fiber.Ctx) error {
	m, ok := h.service.Member(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "member not found"})
	}
	return c.JSON(m)
}

// HandleStats summarises the snapshot.
// @Summary Membership Stats
// @Tags patreon
// @Produce json
// @Success 200 {object} models.Stats
// @Router /patreon/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats())
}

// HandleSync triggers a full roster sync.
// @Summary Sync Patreon Roster
// @Description Fetches every page of the campaign roster, replaces the snapshot and purges members no longer present.
// @Tags patreon
// @Produce json
// @Success 200 {object} SyncResult
// @Failure 409 {object} map[string]string "Sync running elsewhere"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /patreon/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering Patreon sync")

	res, err := h.service.Sync(c.Context())
	if errors.Is(err, kv.ErrLocked) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}
