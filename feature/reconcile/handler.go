package reconcile

import (
	"errors"

	"patron-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconcile routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Get("/", h.HandleReconcile)
	group.Get("/archives", h.HandleListArchives)
	group.Get("/archives/:name", h.HandleGetArchive)
}

// HandleReconcile runs a reconciliation on the current snapshots.
// @Summary Reconcile Patreon and Dragonite
// @Description Links every Dragonite area to a Patreon member or supporter and reports capacity mismatches.
// @Tags reconcile
// @Produce json
// @Param verify query bool false "Re-fetch enabled area names from Dragonite first"
// @Param archive query bool false "Upload the report to object storage"
// @Success 200 {object} Report
// @Failure 400 {object} map[string]string "Archive requested without storage"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile [get]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	opts := Options{
		Verify:  c.QueryBool("verify", false),
		Archive: c.QueryBool("archive", false),
	}
	l.Info("Triggering reconciliation", zap.Bool("verify", opts.Verify), zap.Bool("archive", opts.Archive))

	report, err := h.service.Reconcile(c.Context(), opts)
	if errors.Is(err, ErrArchiveDisabled) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleListArchives lists archived reports.
// @Summary List Archived Reports
// @Tags reconcile
// @Produce json
// @Success 200 {array} string
// @Failure 400 {object} map[string]string "Storage disabled"
// @Router /reconcile/archives [get]
func (h *Handler) HandleListArchives(c *fiber.Ctx) error {
	names, err := h.service.Archives(c.Context())
	if errors.Is(err, ErrArchiveDisabled) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(names)
}

// HandleGetArchive returns one archived report.
// @Summary Get Archived Report
// @Tags reconcile
// @Produce json
// @Param name path string true "Archive name, e.g. 1760000000.json"
// @Success 200 {object} Report
// @Failure 404 {object} map[string]string "Not Found"
// @Router /reconcile/archives/{name} [get]
func (h *Handler) HandleGetArchive(c *fiber.Ctx) error {
	report, err := h.service.Archive(c.Context(), c.Params("name"))
	if errors.Is(err, ErrArchiveDisabled) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
