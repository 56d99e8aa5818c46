package patreon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"patron-manager/core/kv"
	"patron-manager/feature/history"
	"patron-manager/feature/patreon/models"
	"patron-manager/feature/patreon/store"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const syncLockKey = "patron-manager:lock:sync:patreon"

// MemberSource fetches the complete Patreon roster.
type MemberSource interface {
	FetchAllMembers(ctx context.Context) ([]*models.Member, error)
}

// Locker serialises syncs across replicas.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Recorder stores the outcome of a sync.
type Recorder interface {
	Record(ctx context.Context, run *history.SyncRun) error
}

// SyncResult describes a completed full sync.
type SyncResult struct {
	Fetched   int           `json:"fetched"`
	Written   int           `json:"written"`
	Purged    int           `json:"purged"`
	StartedAt int64         `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Shared    bool          `json:"shared"`
}

// SyncService replaces the store contents with a fresh roster.
type SyncService struct {
	source   MemberSource
	store    *store.Store
	locker   Locker
	recorder Recorder
	logger   *zap.Logger
	group    singleflight.Group
	now      func() time.Time
}

// NewSyncService creates a sync service. locker and recorder may be nil.
func NewSyncService(source MemberSource, st *store.Store, locker Locker, recorder Recorder, logger *zap.Logger) *SyncService {
	return &SyncService{
		source:   source,
		store:    st,
		locker:   locker,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Sync fetches the whole roster, writes it stamped with the time the sync started and purges
// every record older than that. Concurrent calls share one run. A failed fetch leaves the store
// untouched.
func (s *SyncService) Sync(ctx context.Context) (SyncResult, error) {
	v, err, shared := s.group.Do("sync", func() (any, error) {
		return s.run(ctx)
	})
	res, _ := v.(SyncResult)
	res.Shared = shared
	return res, err
}

func (s *SyncService) run(ctx context.Context) (SyncResult, error) {
	var res SyncResult
	began := s.now()

	exec := func(ctx context.Context) error {
		start := s.now().UnixMilli()
		res.StartedAt = start

		members, err := s.source.FetchAllMembers(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch patreon roster: %w", err)
		}
		for _, m := range members {
			m.LastUpdated = start
		}

		res.Fetched = len(members)
		res.Written = s.store.SetAll(members)
		res.Purged = s.store.PurgeStale(start)
		return nil
	}

	var err error
	if s.locker != nil {
		err = s.locker.WithLock(ctx, syncLockKey, exec)
	} else {
		err = exec(ctx)
	}
	res.Duration = s.now().Sub(began)

	if errors.Is(err, kv.ErrLocked) {
		s.logger.Info("Patreon sync already running elsewhere, skipping")
		return res, err
	}

	s.record(ctx, began, res, err)
	if err != nil {
		s.logger.Error("Patreon sync failed", zap.Error(err))
		return res, err
	}

	s.logger.Info("Patreon sync complete",
		zap.Int("fetched", res.Fetched),
		zap.Int("written", res.Written),
		zap.Int("purged", res.Purged),
		zap.Duration("took", res.Duration),
	)
	return res, nil
}

func (s *SyncService) record(ctx context.Context, began time.Time, res SyncResult, syncErr error) {
	if s.recorder == nil {
		return
	}
	run := &history.SyncRun{
		Source:     history.SourcePatreon,
		StartedAt:  began.UTC(),
		FinishedAt: began.Add(res.Duration).UTC(),
		Fetched:    res.Fetched,
		Written:    res.Written,
		Purged:     res.Purged,
	}
	if syncErr != nil {
		run.Error = syncErr.Error()
	}
	if err := s.recorder.Record(context.WithoutCancel(ctx), run); err != nil {
		s.logger.Warn("Failed to record sync run", zap.Error(err))
	}
}
