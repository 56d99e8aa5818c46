package patreon

import (
	"context"

	"patron-manager/core/entitlement"
	"patron-manager/feature/patreon/models"
	"patron-manager/feature/patreon/store"
	"patron-manager/feature/patreon/webhook"

	"go.uber.org/zap"
)

// Service exposes the membership snapshot and applies webhooks.
type Service struct {
	store     *store.Store
	table     entitlement.TierQuotaTable
	sync      *SyncService
	processor *webhook.Processor
	secret    string
	logger    *zap.Logger
}

// NewService creates a new Patreon service.
func NewService(st *store.Store, table entitlement.TierQuotaTable, sync *SyncService, processor *webhook.Processor, secret string, logger *zap.Logger) *Service {
	return &Service{
		store:     st,
		table:     table,
		sync:      sync,
		processor: processor,
		secret:    secret,
		logger:    logger,
	}
}

// Members returns every member ordered by id.
func (s *Service) Members() []*models.Member {
	return s.store.GetAll()
}

// Member returns one member.
func (s *Service) Member(id string) (*models.Member, bool) {
	return s.store.Get(id)
}

// Stats summarises the snapshot.
func (s *Service) Stats() models.Stats {
	return s.store.Stats(s.table)
}

// Sync runs a full roster sync.
func (s *Service) Sync(ctx context.Context) (SyncResult, error) {
	return s.sync.Sync(ctx)
}

// HandleWebhook verifies and applies a delivery.
func (s *Service) HandleWebhook(ctx context.Context, event, signature string, body []byte) (webhook.Result, error) {
	if !webhook.VerifySignature(body, signature, s.secret) {
		return webhook.Result{Event: event}, webhook.ErrInvalidSignature
	}
	return s.processor.Handle(ctx, event, signature, body)
}
