package history

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleRecent(t *testing.T) {
	repo := setupSQLite(t)
	require.NoError(t, repo.Record(context.Background(), &SyncRun{Source: SourcePatreon, StartedAt: time.Now()}))

	app := fiber.New()
	f := NewFeature(repo, zap.NewNop())
	assert.True(t, f.IsEnabled())
	require.NoError(t, f.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/history?limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var runs []SyncRun
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	require.Len(t, runs, 1)
	assert.Equal(t, SourcePatreon, runs[0].Source)
}
