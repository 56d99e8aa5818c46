package dragonite

import (
	"context"
	"fmt"
	"time"

	"patron-manager/feature/dragonite/models"
	"patron-manager/feature/dragonite/store"
	"patron-manager/feature/history"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// AreaSource fetches the Dragonite area roster.
type AreaSource interface {
	GetStatus(ctx context.Context) ([]models.Area, error)
	GetArea(ctx context.Context, id int) (models.Area, error)
}

// Recorder stores the outcome of a sync.
type Recorder interface {
	Record(ctx context.Context, run *history.SyncRun) error
}

// SyncResult describes a completed area sync.
type SyncResult struct {
	Areas    int           `json:"areas"`
	Duration time.Duration `json:"duration"`
}

// SyncService refreshes the area snapshot.
type SyncService struct {
	source   AreaSource
	store    *store.Store
	recorder Recorder
	logger   *zap.Logger
	group    singleflight.Group
}

// NewSyncService creates a sync service. recorder may be nil.
func NewSyncService(source AreaSource, st *store.Store, recorder Recorder, logger *zap.Logger) *SyncService {
	return &SyncService{source: source, store: st, recorder: recorder, logger: logger}
}

// Sync replaces the snapshot with the current roster. On failure the previous snapshot is kept.
func (s *SyncService) Sync(ctx context.Context) (SyncResult, error) {
	v, err, _ := s.group.Do("sync", func() (any, error) {
		return s.run(ctx)
	})
	res, _ := v.(SyncResult)
	return res, err
}

func (s *SyncService) run(ctx context.Context) (SyncResult, error) {
	began := time.Now()
	areas, err := s.source.GetStatus(ctx)
	res := SyncResult{Duration: time.Since(began)}
	if err != nil {
		err = fmt.Errorf("failed to fetch dragonite status: %w", err)
		s.record(ctx, began, res, err)
		s.logger.Error("Dragonite sync failed", zap.Error(err))
		return res, err
	}

	s.store.SetAreas(areas)
	res.Areas = len(areas)
	s.record(ctx, began, res, nil)
	s.logger.Info("Dragonite sync complete", zap.Int("areas", res.Areas), zap.Duration("took", res.Duration))
	return res, nil
}

func (s *SyncService) record(ctx context.Context, began time.Time, res SyncResult, syncErr error) {
	if s.recorder == nil {
		return
	}
	run := &history.SyncRun{
		Source:     history.SourceDragonite,
		StartedAt:  began.UTC(),
		FinishedAt: began.Add(res.Duration).UTC(),
		Fetched:    res.Areas,
		Written:    res.Areas,
	}
	if syncErr != nil {
		run.Error = syncErr.Error()
	}
	if err := s.recorder.Record(context.WithoutCancel(ctx), run); err != nil {
		s.logger.Warn("Failed to record sync run", zap.Error(err))
	}
}
