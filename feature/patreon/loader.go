package patreon

import (
	"patron-manager/core/entitlement"
	"patron-manager/feature/patreon/store"
	"patron-manager/feature/patreon/webhook"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Options are the collaborators of the Patreon feature. Locker, Recorder and Deduper may be nil.
type Options struct {
	Store         *store.Store
	Source        MemberSource
	Table         entitlement.TierQuotaTable
	WebhookSecret string
	Locker        Locker
	Recorder      Recorder
	Deduper       webhook.Deduper
	Logger        *zap.Logger
}

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Patreon feature.
func NewFeature(opts Options) *Feature {
	sync := NewSyncService(opts.Source, opts.Store, opts.Locker, opts.Recorder, opts.Logger)
	processor := webhook.NewProcessor(opts.Store, opts.Deduper, opts.Logger)
	svc := NewService(opts.Store, opts.Table, sync, processor, opts.WebhookSecret, opts.Logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "patreon"
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
