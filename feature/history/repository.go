package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultLimit is the number of runs returned when no limit is given.
const DefaultLimit = 20

// MaxLimit caps the number of runs returned by Recent.
const MaxLimit = 200

// Repository persists sync runs. A nil repository, or one without a database, ignores writes
// and returns no runs.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db. db may be nil.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Enabled reports whether runs are persisted.
func (r *Repository) Enabled() bool {
	return r != nil && r.db != nil
}

// Migrate creates or updates the sync_runs table.
func (r *Repository) Migrate() error {
	if !r.Enabled() {
		return nil
	}
	if err := r.db.AutoMigrate(&SyncRun{}); err != nil {
		return fmt.Errorf("failed to migrate sync_runs: %w", err)
	}
	return nil
}

// Record stores run, assigning an id when it has none.
func (r *Repository) Record(ctx context.Context, run *SyncRun) error {
	if !r.Enabled() || run == nil {
		return nil
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first. An empty source matches every source.
func (r *Repository) Recent(ctx context.Context, source string, limit int) ([]SyncRun, error) {
	if !r.Enabled() {
		return []SyncRun{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	q := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit)
	if source != "" {
		q = q.Where("source = ?", source)
	}

	runs := []SyncRun{}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to load sync runs: %w", err)
	}
	return runs, nil
}
