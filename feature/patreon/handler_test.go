package patreon

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"patron-manager/core/entitlement"
	"patron-manager/feature/patreon/models"
	"patron-manager/feature/patreon/store"
	"patron-manager/feature/patreon/webhook"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "dummy_secret"

func setupTestApp(t *testing.T, src MemberSource) (*fiber.App, *store.Store) {
	t.Helper()
	st := store.New()
	f := NewFeature(Options{
		Store:         st,
		Source:        src,
		Table:         entitlement.TierQuotaTable{"T1": 2},
		WebhookSecret: testSecret,
		Logger:        zap.NewNop(),
	})
	app := fiber.New()
	require.NoError(t, f.Load(app))
	return app, st
}

func webhookRequest(body, event, signature string) *http.Request {
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	if event != "" {
		req.Header.Set(HeaderEvent, event)
	}
	if signature != "" {
		req.Header.Set(HeaderSignature, signature)
	}
	return req
}

func TestHandleWebhook(t *testing.T) {
	body := `{"data":{"id":"12345","type":"member","attributes":{"email":"test@example.com","full_name":"Test User","patron_status":"active_patron"}}}`

	tests := []struct {
		name       string
		body       string
		event      string
		signature  string
		wantStatus int
		wantBody   string
		wantCount  int
	}{
		{"missing event", body, "", webhook.Sign([]byte(body), testSecret), 400, "Missing headers", 0},
		{"missing signature", body, webhook.EventMemberCreate, "", 400, "Missing headers", 0},
		{"bad signature", body, webhook.EventMemberCreate, "deadbeef", 401, "Invalid signature", 0},
		{"create", body, webhook.EventMemberCreate, webhook.Sign([]byte(body), testSecret), 200, "OK", 1},
		{"unknown event", body, "posts:publish", webhook.Sign([]byte(body), testSecret), 200, "OK", 0},
		{"malformed", `{"data":{}}`, webhook.EventMemberUpdate, webhook.Sign([]byte(`{"data":{}}`), testSecret), 500, "Error processing webhook", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, st := setupTestApp(t, &fakeSource{})

			resp, err := app.Test(webhookRequest(tt.body, tt.event, tt.signature))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			got, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.wantBody, string(got))
			assert.Equal(t, tt.wantCount, st.Count())
		})
	}
}

func TestHandleWebhook_Delete(t *testing.T) {
	app, st := setupTestApp(t, &fakeSource{})
	st.Upsert(&models.Member{ID: "12345", LastUpdated: 1 << 62})

	body := `{"data":{"id":"12345","type":"member","attributes":{}}}`
	resp, err := app.Test(webhookRequest(body, webhook.EventPledgeDelete, webhook.Sign([]byte(body), testSecret)))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Zero(t, st.Count())
}

func TestHandleMembers(t *testing.T) {
	app, st := setupTestApp(t, &fakeSource{})
	st.Upsert(&models.Member{ID: "m1", Status: models.StatusActive, AmountCents: 250, Tiers: []models.Tier{{ID: "T1"}}})

	resp, err := app.Test(httptest.NewRequest("GET", "/patreon/members", nil))
	require.NoError(t, err)
	var members []models.Member
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&members))
	require.Len(t, members, 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/patreon/members/m1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/patreon/members/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/patreon/stats", nil))
	require.NoError(t, err)
	var stats models.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 2, stats.TotalQuota)
	assert.Equal(t, "2.50", stats.TotalPledged)
}

func TestHandleSync(t *testing.T) {
	app, st := setupTestApp(t, &fakeSource{members: []*models.Member{{ID: "a"}, {ID: "b"}}})

	resp, err := app.Test(httptest.NewRequest("POST", "/patreon/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 2, st.Count())

	failing, _ := setupTestApp(t, &fakeSource{err: errors.New("boom")})
	resp, err = failing.Test(httptest.NewRequest("POST", "/patreon/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
