package dragonite

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"patron-manager/feature/dragonite/models"
	"patron-manager/feature/dragonite/store"
	"patron-manager/feature/history"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	areas []models.Area
	err   error
}

func (f *fakeSource) GetStatus(context.Context) ([]models.Area, error) {
	return f.areas, f.err
}

func (f *fakeSource) GetArea(_ context.Context, id int) (models.Area, error) {
	for _, a := range f.areas {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Area{}, errors.New("not found")
}

type fakeRecorder struct{ runs []*history.SyncRun }

func (f *fakeRecorder) Record(_ context.Context, run *history.SyncRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func TestSync(t *testing.T) {
	st := store.New()
	src := &fakeSource{areas: []models.Area{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}
	rec := &fakeRecorder{}
	svc := NewSyncService(src, st, rec, zap.NewNop())

	res, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Areas)
	assert.Equal(t, 2, st.Count())

	src.err = errors.New("down")
	_, err = svc.Sync(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, st.Count())

	require.Len(t, rec.runs, 2)
	assert.Equal(t, history.SourceDragonite, rec.runs[0].Source)
	assert.Contains(t, rec.runs[1].Error, "down")
}

func TestHandlers(t *testing.T) {
	st := store.New()
	src := &fakeSource{areas: []models.Area{{ID: 1, Name: "A", WorkerManagers: []models.WorkerManager{{Expected: 2, Active: 1}}}}}
	f := NewFeature(src, st, nil, zap.NewNop())
	app := fiber.New()
	require.NoError(t, f.Load(app))

	resp, err := app.Test(httptest.NewRequest("POST", "/dragonite/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/dragonite/areas", nil))
	require.NoError(t, err)
	var areas []models.Area
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&areas))
	assert.Len(t, areas, 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/dragonite/stats", nil))
	require.NoError(t, err)
	var stats models.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 2, stats.TotalWorkers)
	assert.Equal(t, 1, stats.ActiveWorkers)

	src.err = errors.New("down")
	resp, err = app.Test(httptest.NewRequest("POST", "/dragonite/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
}
