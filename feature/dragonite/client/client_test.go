package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T, status, area string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("authorized")
		if err != nil || cookie.Value != "s3cret" {
			http.Error(w, "forbidden", http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/status/":
			fmt.Fprint(w, status)
		case "/api/areas/7":
			fmt.Fprint(w, area)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr error
	}{
		{"wrapped", `{"success": true, "data": {"areas": [{"id": 1, "name": "A", "enabled": 1, "worker_managers": [{"expected_workers": 2, "active_workers": 2}]}]}}`, 1, nil},
		{"bare", `{"areas": [{"id": 1, "name": "A"}, {"id": 2, "name": "B", "enabled": false}, {"name": "no id"}]}`, 2, nil},
		{"unexpected", `{"success": false}`, 0, ErrUnexpectedFormat},
		{"areas not a list", `{"areas": 3}`, 0, ErrUnexpectedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.body, `{}`)
			c := NewClient(Config{BaseURL: srv.URL + "/", Secret: "s3cret"}, zap.NewNop())

			areas, err := c.GetStatus(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, areas, tt.want)
		})
	}
}

func TestGetStatus_Wrapped(t *testing.T) {
	srv := newServer(t, `{"success": true, "data": {"areas": [{"id": 1, "name": "A", "enabled": 1, "worker_managers": [{"expected_workers": 2, "active_workers": 1}]}]}}`, `{}`)
	c := NewClient(Config{BaseURL: srv.URL, Secret: "s3cret"}, zap.NewNop())

	areas, err := c.GetStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.True(t, areas[0].Enabled)
	assert.Equal(t, 2, areas[0].TotalExpected())
	assert.Equal(t, 1, areas[0].TotalActive())
}

func TestGetStatus_Errors(t *testing.T) {
	srv := newServer(t, `{}`, `{}`)

	_, err := NewClient(Config{BaseURL: srv.URL, Secret: "wrong"}, zap.NewNop()).GetStatus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	_, err = NewClient(Config{}, zap.NewNop()).GetStatus(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGetArea(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"wrapped", `{"data": {"id": 7, "name": "Renamed", "enabled": true}}`},
		{"bare", `{"name": "Renamed", "enabled": true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, `{}`, tt.body)
			c := NewClient(Config{BaseURL: srv.URL, Secret: "s3cret"}, zap.NewNop())

			area, err := c.GetArea(context.Background(), 7)
			require.NoError(t, err)
			assert.Equal(t, 7, area.ID)
			assert.Equal(t, "Renamed", area.Name)
		})
	}
}
