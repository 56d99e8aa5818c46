package dragonite

import (
	"patron-manager/feature/dragonite/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	sync    *SyncService
	handler *Handler
}

// NewFeature creates a new Dragonite feature.
func NewFeature(source AreaSource, st *store.Store, recorder Recorder, logger *zap.Logger) *Feature {
	sync := NewSyncService(source, st, recorder, logger)
	return &Feature{sync: sync, handler: NewHandler(st, sync, logger)}
}

// Sync returns the feature's sync service.
func (f *Feature) Sync() *SyncService {
	return f.sync
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "dragonite"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
