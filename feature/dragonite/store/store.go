package store

import (
	"sort"
	"sync"
	"time"

	"patron-manager/feature/dragonite/models"
)

// Store holds the latest Dragonite area snapshot keyed by area id.
type Store struct {
	mu          sync.RWMutex
	areas       map[int]models.Area
	lastUpdated int64
	now         func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{areas: make(map[int]models.Area), now: time.Now}
}

// SetAreas replaces the snapshot.
func (s *Store) SetAreas(areas []models.Area) {
	next := make(map[int]models.Area, len(areas))
	for _, a := range areas {
		next[a.ID] = a.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.areas = next
	s.lastUpdated = s.now().UnixMilli()
}

// GetArea returns a copy of one area.
func (s *Store) GetArea(id int) (models.Area, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.areas[id]
	if !ok {
		return models.Area{}, false
	}
	return a.Clone(), true
}

// GetAllAreas returns a copy of every area ordered by id.
func (s *Store) GetAllAreas() []models.Area {
	s.mu.RLock()
	out := make([]models.Area, 0, len(s.areas))
	for _, a := range s.areas {
		out = append(out, a.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RenameArea updates the cached name of an area. It reports whether the area exists.
func (s *Store) RenameArea(id int, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.areas[id]
	if !ok {
		return false
	}
	a.Name = name
	s.areas[id] = a
	return true
}

// LastUpdated returns the epoch millis of the last SetAreas, or 0.
func (s *Store) LastUpdated() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// Count returns the number of areas.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.areas)
}

// Stats aggregates worker capacity across every area.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{AreaCount: len(s.areas), LastUpdated: s.lastUpdated}
	for _, a := range s.areas {
		stats.TotalWorkers += a.TotalExpected()
		stats.ActiveWorkers += a.TotalActive()
	}
	return stats
}
