package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"patron-manager/core/storage"
	dmodels "patron-manager/feature/dragonite/models"
	pmodels "patron-manager/feature/patreon/models"
	"patron-manager/feature/supporters"

	"go.uber.org/zap"
)

// ErrArchiveDisabled is returned when archiving without object storage.
var ErrArchiveDisabled = errors.New("report archive requires object storage")

// MemberSnapshot is the read side of the membership store.
type MemberSnapshot interface {
	GetAll() []*pmodels.Member
}

// AreaSnapshot is the area store. RenameArea receives live-verification renames.
type AreaSnapshot interface {
	GetAllAreas() []dmodels.Area
	RenameArea(id int, name string) bool
}

// Options selects the optional steps of a run.
type Options struct {
	Verify  bool
	Archive bool
}

// Service runs reconciliations over the live snapshots.
type Service struct {
	members  MemberSnapshot
	areas    AreaSnapshot
	static   *supporters.Static
	engine   *Engine
	verifier *Verifier
	storage  storage.Client
	bucket   string
	prefix   string
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a reconcile service. verifier and client may be nil.
func NewService(members MemberSnapshot, areas AreaSnapshot, static *supporters.Static, verifier *Verifier, client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Service {
	prefix := cfg.ArchivePrefix
	if prefix == "" {
		prefix = "reports/"
	}
	return &Service{
		members:  members,
		areas:    areas,
		static:   static,
		engine:   NewEngine(),
		verifier: verifier,
		storage:  client,
		bucket:   bucket,
		prefix:   prefix,
		logger:   logger,
		now:      time.Now,
	}
}

// Reconcile classifies the current snapshots. With Verify the enabled areas are re-fetched
// first and renames are written back to the area store. With Archive the report is uploaded.
func (s *Service) Reconcile(ctx context.Context, opts Options) (*Report, error) {
	if opts.Archive && s.storage == nil {
		return nil, ErrArchiveDisabled
	}

	areas := s.areas.GetAllAreas()
	renames := []Rename{}
	if opts.Verify && s.verifier != nil {
		areas, renames = s.verifier.Verify(ctx, areas)
		for _, r := range renames {
			s.areas.RenameArea(r.ID, r.To)
		}
	}

	report := s.engine.Run(Input{
		Members: s.members.GetAll(),
		Static:  s.static,
		Areas:   areas,
	})
	report.Renamed = renames
	now := s.now()
	report.Summary.GeneratedAt = now.UnixMilli()
	report.Summary.Renamed = len(renames)

	s.logger.Info("Reconciliation complete",
		zap.Int("areas", report.Summary.Areas),
		zap.Int("completed", report.Summary.Completed),
		zap.Int("matches", report.Summary.Matches),
		zap.Int("mismatches", report.Summary.Mismatches),
		zap.Int("no_patreon_match", report.Summary.NoPatreonMatch),
		zap.Int("no_discord_id", report.Summary.NoDiscordIDFound),
		zap.Int("no_dragonite_match", report.Summary.NoDragoniteMatch),
	)

	if opts.Archive {
		key := fmt.Sprintf("%s%d.json", s.prefix, now.Unix())
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return report, fmt.Errorf("failed to encode report: %w", err)
		}
		if err := storage.WriteObject(ctx, s.storage, s.bucket, key, "application/json", data); err != nil {
			return report, fmt.Errorf("failed to archive report: %w", err)
		}
		report.ArchiveKey = key
		s.logger.Info("Archived reconciliation report", zap.String("key", key))
	}
	return report, nil
}

// Archives lists archived report names, newest last.
func (s *Service) Archives(ctx context.Context) ([]string, error) {
	if s.storage == nil {
		return nil, ErrArchiveDisabled
	}
	keys, err := storage.ListKeys(ctx, s.storage, s.bucket, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasSuffix(k, ".json") {
			names = append(names, path.Base(k))
		}
	}
	return names, nil
}

// Archive loads one archived report by name.
func (s *Service) Archive(ctx context.Context, name string) (*Report, error) {
	if s.storage == nil {
		return nil, ErrArchiveDisabled
	}
	if name == "" || strings.ContainsAny(name, "/\\") || !strings.HasSuffix(name, ".json") {
		return nil, fmt.Errorf("invalid archive name %q", name)
	}
	data, err := storage.ReadObject(ctx, s.storage, s.bucket, s.prefix+name)
	if err != nil {
		return nil, err
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode archive %s: %w", name, err)
	}
	return &report, nil
}
