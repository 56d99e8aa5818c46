package models

import (
	"fmt"

	"patron-manager/core/utils"
)

// WorkerManager is the capacity of one worker group inside an area.
type WorkerManager struct {
	Expected int `json:"expected_workers"`
	Active   int `json:"active_workers"`
}

// Area is one provisioned Dragonite scanning area.
type Area struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Enabled        bool            `json:"enabled"`
	WorkerManagers []WorkerManager `json:"worker_managers"`
}

// TotalExpected sums the expected workers of every worker manager.
func (a Area) TotalExpected() int {
	n := 0
	for _, wm := range a.WorkerManagers {
		n += wm.Expected
	}
	return n
}

// TotalActive sums the active workers of every worker manager.
func (a Area) TotalActive() int {
	n := 0
	for _, wm := range a.WorkerManagers {
		n += wm.Active
	}
	return n
}

// Clone returns a deep copy of the area.
func (a Area) Clone() Area {
	c := a
	if a.WorkerManagers != nil {
		c.WorkerManagers = make([]WorkerManager, len(a.WorkerManagers))
		copy(c.WorkerManagers, a.WorkerManagers)
	}
	return c
}

// Stats aggregates the snapshot.
type Stats struct {
	AreaCount     int   `json:"areaCount"`
	TotalWorkers  int   `json:"totalWorkers"`
	ActiveWorkers int   `json:"activeWorkers"`
	LastUpdated   int64 `json:"lastUpdated"`
}

// AreaFromMap decodes a loosely typed Dragonite area object.
// The id is required; enabled may be a bool or a 0/1 number.
func AreaFromMap(raw map[string]any) (Area, error) {
	id, ok := raw["id"]
	if !ok || id == nil {
		return Area{}, fmt.Errorf("area has no id")
	}

	area := Area{
		ID:             utils.ToInt(id),
		Name:           utils.ToString(raw["name"]),
		Enabled:        utils.ToBool(raw["enabled"]),
		WorkerManagers: []WorkerManager{},
	}

	if list, ok := raw["worker_managers"].([]any); ok {
		for _, item := range list {
			wm, ok := item.(map[string]any)
			if !ok {
				continue
			}
			area.WorkerManagers = append(area.WorkerManagers, WorkerManager{
				Expected: utils.ToInt(wm["expected_workers"]),
				Active:   utils.ToInt(wm["active_workers"]),
			})
		}
	}
	return area, nil
}
