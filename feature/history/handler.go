package history

import (
	"patron-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the sync history.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/history", h.HandleRecent)
}

// HandleRecent lists recent sync runs.
// @Summary List Sync Runs
// @Description Returns the most recent roster syncs, newest first.
// @Tags history
// @Produce json
// @Param limit query int false "Maximum runs to return"
// @Param source query string false "Filter by source (patreon, dragonite)"
// @Success 200 {array} SyncRun
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history [get]
func (h *Handler) HandleRecent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	runs, err := h.repo.Recent(c.Context(), c.Query("source"), c.QueryInt("limit", DefaultLimit))
	if err != nil {
		l.Error("Failed to load sync history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}
