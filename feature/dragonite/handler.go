package dragonite

import (
	"patron-manager/core/logger"
	"patron-manager/feature/dragonite/models"
	"patron-manager/feature/dragonite/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the Dragonite roster.
type Handler struct {
	store  *store.Store
	sync   *SyncService
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(st *store.Store, sync *SyncService, logger *zap.Logger) *Handler {
	// Force import for Swagger
	var _ = models.Area{}
	return &Handler{store: st, sync: sync, logger: logger}
}

// RegisterRoutes registers the dragonite routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/dragonite")
	group.Get("/areas", h.HandleListAreas)
	group.Get("/stats", h.HandleStats)
	group.Post("/sync", h.HandleSync)
}

// HandleListAreas lists the cached areas.
// @Summary List Areas
// @Tags dragonite
// @Produce json
// @Success 200 {array} models.Area
// @Router /dragonite/areas [get]
func (h *Handler) HandleListAreas(c *fiber.Ctx) error {
	return c.JSON(h.store.GetAllAreas())
}

// HandleStats summarises worker capacity.
// @Summary Area Stats
// @Tags dragonite
// @Produce json
// @Success 200 {object} models.Stats
// @Router /dragonite/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	return c.JSON(h.store.Stats())
}

// HandleSync refreshes the area snapshot.
// @Summary Sync Dragonite Areas
// @Tags dragonite
// @Produce json
// @Success 200 {object} SyncResult
// @Failure 502 {object} map[string]string "Dragonite unavailable"
// @Router /dragonite/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("Triggering Dragonite sync")

	res, err := h.sync.Sync(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}
