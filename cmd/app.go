package cmd

import (
	"context"
	"fmt"
	"time"

	"patron-manager/core/config"
	"patron-manager/core/database"
	"patron-manager/core/kv"
	"patron-manager/core/logger"
	"patron-manager/core/storage"
	"patron-manager/feature/dragonite"
	dclient "patron-manager/feature/dragonite/client"
	dstore "patron-manager/feature/dragonite/store"
	"patron-manager/feature/history"
	"patron-manager/feature/patreon"
	pclient "patron-manager/feature/patreon/client"
	pstore "patron-manager/feature/patreon/store"
	"patron-manager/feature/reconcile"
	"patron-manager/feature/supporters"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const webhookDedupePrefix = "patron-manager:webhook:"

// app is the wired service graph shared by every command.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	static    *supporters.Static
	members   *pstore.Store
	areas     *dstore.Store
	history   *history.Repository
	patreon   *patreon.Feature
	dragonite *dragonite.Feature
	reconcile *reconcile.Service
	redis     *redis.Client
}

// newApp loads configuration and wires every feature. Database, storage and Redis are optional:
// a failed connection is logged and the dependent capability is disabled.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	a := &app{cfg: cfg, logger: logg}

	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			a.history = history.NewRepository(conn)
			logg.Info("Connected to history database", zap.String("driver", cfg.Database.Driver))
		}
	}
	if a.history == nil {
		a.history = history.NewRepository(nil)
	}

	var store storage.Client
	if cfg.Storage.Enabled {
		if c, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional storage client failed", zap.Error(err))
		} else if err := storage.CheckBucket(ctx, c, cfg.Storage.Bucket); err != nil {
			logg.Warn("Storage bucket unavailable, object storage disabled", zap.Error(err))
		} else {
			store = c
		}
	}

	var (
		locker patreon.Locker
		dedupe *kv.Idempotency
	)
	if cfg.Redis.Enabled() {
		if rdb, err := kv.Connect(ctx, cfg.Redis); err != nil {
			logg.Warn("Optional redis connection failed", zap.Error(err))
		} else {
			a.redis = rdb
			locker = kv.NewLocker(rdb, time.Duration(cfg.Redis.LockTTLSeconds)*time.Second)
			dedupe = kv.NewIdempotency(rdb, webhookDedupePrefix, time.Duration(cfg.Redis.IdempotencyTTLSeconds)*time.Second)
		}
	}

	static, err := supporters.Load(ctx, cfg.Supporters, store, cfg.Storage.Bucket, logger.ForComponent(logg, "supporters"))
	if err != nil {
		return nil, fmt.Errorf("failed to load supporters: %w", err)
	}
	a.static = static

	a.members = pstore.New()
	a.areas = dstore.New()

	opts := patreon.Options{
		Store:         a.members,
		Source:        pclient.NewClient(cfg.Patreon, logger.ForComponent(logg, "patreon-client")),
		Table:         static.Tiers(),
		WebhookSecret: cfg.Server.WebhookSecret,
		Locker:        locker,
		Recorder:      a.history,
		Logger:        logger.ForComponent(logg, "patreon"),
	}
	if dedupe != nil {
		opts.Deduper = dedupe
	}
	a.patreon = patreon.NewFeature(opts)

	areaClient := dclient.NewClient(cfg.Dragonite, logger.ForComponent(logg, "dragonite-client"))
	a.dragonite = dragonite.NewFeature(areaClient, a.areas, a.history, logger.ForComponent(logg, "dragonite"))

	var verifier *reconcile.Verifier
	if cfg.Dragonite.Configured() {
		verifier = reconcile.NewVerifier(areaClient, cfg.Reconcile.VerifyConcurrency, logger.ForComponent(logg, "verify"))
	}
	a.reconcile = reconcile.NewService(a.members, a.areas, static, verifier, store, cfg.Storage.Bucket, cfg.Reconcile, logger.ForComponent(logg, "reconcile"))

	return a, nil
}

// syncAll refreshes both stores once. Either failure is returned after both have run.
func (a *app) syncAll(ctx context.Context) error {
	var firstErr error
	if res, err := a.patreon.Service().Sync(ctx); err != nil {
		a.logger.Error("Patreon sync failed", zap.Error(err))
		firstErr = fmt.Errorf("patreon sync: %w", err)
	} else {
		a.logger.Info("Patreon sync finished", zap.Int("fetched", res.Fetched), zap.Int("purged", res.Purged))
	}
	if res, err := a.dragonite.Sync().Sync(ctx); err != nil {
		a.logger.Error("Dragonite sync failed", zap.Error(err))
		if firstErr == nil {
			firstErr = fmt.Errorf("dragonite sync: %w", err)
		}
	} else {
		a.logger.Info("Dragonite sync finished", zap.Int("areas", res.Areas))
	}
	return firstErr
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	_ = a.logger.Sync()
}
