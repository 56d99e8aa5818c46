package reconcile

import (
	"context"

	dmodels "patron-manager/feature/dragonite/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AreaFetcher fetches the live state of one area.
type AreaFetcher interface {
	GetArea(ctx context.Context, id int) (dmodels.Area, error)
}

// Verifier refreshes area names from Dragonite before a reconciliation.
type Verifier struct {
	fetcher     AreaFetcher
	concurrency int
	logger      *zap.Logger
}

// NewVerifier creates a verifier running at most concurrency fetches at once.
func NewVerifier(fetcher AreaFetcher, concurrency int, logger *zap.Logger) *Verifier {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Verifier{fetcher: fetcher, concurrency: concurrency, logger: logger}
}

// Verify fetches every enabled area and returns a copy of areas with current names, plus the
// renames it applied. A failed fetch is logged and leaves that area unchanged.
func (v *Verifier) Verify(ctx context.Context, areas []dmodels.Area) ([]dmodels.Area, []Rename) {
	out := make([]dmodels.Area, len(areas))
	names := make([]string, len(areas))
	for i, a := range areas {
		out[i] = a.Clone()
		names[i] = a.Name
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i := range out {
		if !out[i].Enabled {
			continue
		}
		g.Go(func() error {
			live, err := v.fetcher.GetArea(gctx, out[i].ID)
			if err != nil {
				v.logger.Warn("Live area fetch failed, keeping cached name",
					zap.Int("area_id", out[i].ID),
					zap.Error(err),
				)
				return nil
			}
			if live.Name != "" {
				names[i] = live.Name
			}
			return nil
		})
	}
	_ = g.Wait()

	renames := []Rename{}
	for i := range out {
		if names[i] != out[i].Name {
			renames = append(renames, Rename{ID: out[i].ID, From: out[i].Name, To: names[i]})
			out[i].Name = names[i]
		}
	}
	if len(renames) > 0 {
		v.logger.Info("Live verification renamed areas", zap.Int("renamed", len(renames)))
	}
	return out, renames
}
