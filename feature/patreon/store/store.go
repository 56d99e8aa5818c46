package store

import (
	"sort"
	"sync"

	"patron-manager/core/entitlement"
	"patron-manager/feature/patreon/models"

	"github.com/shopspring/decimal"
)

// Store is the in-memory membership snapshot keyed by member id.
// Records are stored as pointers and replaced with compare-and-swap, so no write
// takes a lock that a reader would wait on.
type Store struct {
	members sync.Map // string -> *models.Member
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Upsert inserts m, or replaces the existing record when m.LastUpdated is at least
// as recent. It reports whether a write happened.
func (s *Store) Upsert(m *models.Member) bool {
	if m == nil || m.ID == "" {
		return false
	}
	incoming := m.Clone()
	for {
		cur, loaded := s.members.LoadOrStore(incoming.ID, incoming)
		if !loaded {
			return true
		}
		existing := cur.(*models.Member)
		if incoming.LastUpdated < existing.LastUpdated {
			return false
		}
		if s.members.CompareAndSwap(incoming.ID, existing, incoming) {
			return true
		}
	}
}

// SetAll upserts every member and returns how many writes happened.
func (s *Store) SetAll(members []*models.Member) int {
	written := 0
	for _, m := range members {
		if s.Upsert(m) {
			written++
		}
	}
	return written
}

// PurgeStale deletes every record with LastUpdated strictly before cutoff and returns
// the number removed. A record replaced concurrently by a fresher write is kept.
func (s *Store) PurgeStale(cutoff int64) int {
	purged := 0
	s.members.Range(func(key, value any) bool {
		m := value.(*models.Member)
		if m.LastUpdated < cutoff && s.members.CompareAndDelete(key, value) {
			purged++
		}
		return true
	})
	return purged
}

// Remove deletes the record regardless of its timestamp.
func (s *Store) Remove(id string) bool {
	_, ok := s.members.LoadAndDelete(id)
	return ok
}

// Get returns a copy of the record for id.
func (s *Store) Get(id string) (*models.Member, bool) {
	v, ok := s.members.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*models.Member).Clone(), true
}

// GetAll returns a copy of every record ordered by id.
func (s *Store) GetAll() []*models.Member {
	var out []*models.Member
	s.members.Range(func(_, value any) bool {
		out = append(out, value.(*models.Member).Clone())
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of records.
func (s *Store) Count() int {
	n := 0
	s.members.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Stats aggregates the snapshot. Quota and pledged totals only count active patrons.
func (s *Store) Stats(table entitlement.TierQuotaTable) models.Stats {
	var stats models.Stats
	pledged := decimal.Zero
	s.members.Range(func(_, value any) bool {
		m := value.(*models.Member)
		stats.Members++
		if m.DiscordID != "" {
			stats.LinkedDiscord++
		}
		if m.IsActive() {
			stats.Active++
			stats.TotalQuota += m.Quota(table)
			pledged = pledged.Add(decimal.New(int64(m.AmountCents), -2))
		}
		return true
	})
	stats.TotalPledged = pledged.StringFixed(2)
	return stats
}
