package history

import "time"

// Sync sources.
const (
	SourcePatreon   = "patreon"
	SourceDragonite = "dragonite"
)

// SyncRun is one recorded roster sync.
type SyncRun struct {
	ID         string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Source     string    `gorm:"column:source;size:32;index" json:"source"`
	StartedAt  time.Time `gorm:"column:started_at;index" json:"startedAt"`
	FinishedAt time.Time `gorm:"column:finished_at" json:"finishedAt"`
	Fetched    int       `gorm:"column:fetched" json:"fetched"`
	Written    int       `gorm:"column:written" json:"written"`
	Purged     int       `gorm:"column:purged" json:"purged"`
	Error      string    `gorm:"column:error;size:1024" json:"error,omitempty"`
}

// TableName overrides the table name used by GORM.
func (SyncRun) TableName() string {
	return "sync_runs"
}
