package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"patron-manager/feature/patreon/client"
	"patron-manager/feature/patreon/models"

	"go.uber.org/zap"
)

// ErrInvalidSignature is returned when a delivery fails signature verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Patreon member events.
const (
	EventMemberCreate = "members:create"
	EventMemberUpdate = "members:update"
	EventMemberDelete = "members:delete"
	EventPledgeCreate = "members:pledge:create"
	EventPledgeUpdate = "members:pledge:update"
	EventPledgeDelete = "members:pledge:delete"
)

// Actions reported in a Result.
const (
	ActionUpserted  = "upserted"
	ActionStale     = "stale"
	ActionRemoved   = "removed"
	ActionIgnored   = "ignored"
	ActionDuplicate = "duplicate"
)

// Sign returns the hex HMAC-MD5 of body keyed with secret.
func Sign(body []byte, secret string) string {
	mac := hmac.New(md5.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the X-Patreon-Signature of a delivery. An empty secret never verifies.
func VerifySignature(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := Sign(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// MemberStore is the part of the membership store the processor writes to.
type MemberStore interface {
	Upsert(m *models.Member) bool
	Remove(id string) bool
}

// Deduper remembers applied deliveries.
type Deduper interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// Result describes what a delivery did to the store.
type Result struct {
	Event    string `json:"event"`
	MemberID string `json:"memberId,omitempty"`
	Action   string `json:"action"`
}

// Processor applies verified webhook deliveries to the membership store.
type Processor struct {
	store  MemberStore
	dedupe Deduper
	logger *zap.Logger
	now    func() time.Time
}

// NewProcessor creates a processor. dedupe may be nil.
func NewProcessor(store MemberStore, dedupe Deduper, logger *zap.Logger) *Processor {
	return &Processor{
		store:  store,
		dedupe: dedupe,
		logger: logger,
		now:    time.Now,
	}
}

// Handle applies one delivery. The event and signature together key deduplication, and a
// delivery is only remembered once it has been applied.
func (p *Processor) Handle(ctx context.Context, event, signature string, body []byte) (Result, error) {
	res := Result{Event: event}

	key := ""
	if p.dedupe != nil && signature != "" {
		key = event + ":" + signature
		seen, err := p.dedupe.Seen(ctx, key)
		if err != nil {
			p.logger.Warn("Webhook dedupe check failed, processing anyway", zap.Error(err))
		} else if seen {
			p.logger.Info("Duplicate webhook delivery", zap.String("event", event))
			res.Action = ActionDuplicate
			return res, nil
		}
	}

	switch event {
	case EventMemberCreate, EventMemberUpdate, EventPledgeCreate, EventPledgeUpdate:
		m, err := client.ParseWebhookMember(body)
		if err != nil {
			return res, fmt.Errorf("failed to parse %s payload: %w", event, err)
		}
		m.LastUpdated = p.now().UnixMilli()
		res.MemberID = m.ID
		res.Action = ActionStale
		if p.store.Upsert(m) {
			res.Action = ActionUpserted
		}

	case EventMemberDelete, EventPledgeDelete:
		m, err := client.ParseWebhookMember(body)
		if err != nil {
			return res, fmt.Errorf("failed to parse %s payload: %w", event, err)
		}
		res.MemberID = m.ID
		p.store.Remove(m.ID)
		res.Action = ActionRemoved

	default:
		p.logger.Warn("Unhandled webhook event", zap.String("event", event))
		res.Action = ActionIgnored
		return res, nil
	}

	if key != "" {
		if err := p.dedupe.Mark(ctx, key); err != nil {
			p.logger.Warn("Failed to remember webhook delivery", zap.Error(err))
		}
	}

	p.logger.Info("Webhook applied",
		zap.String("event", event),
		zap.String("member_id", res.MemberID),
		zap.String("action", res.Action),
	)
	return res, nil
}
