package auth_test

import (
	"net/http/httptest"
	"testing"

	"patron-manager/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg auth.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(cfg))
	app.Get("/patreon/stats", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Post("/webhook", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(auth.Config{ApiKey: "secret", Next: auth.SkipPaths("/webhook")})

	tests := []struct {
		name   string
		method string
		path   string
		header map[string]string
		want   int
	}{
		{"Missing key", "GET", "/patreon/stats", nil, 401},
		{"Wrong key", "GET", "/patreon/stats", map[string]string{auth.HeaderName: "nope"}, 401},
		{"Header key", "GET", "/patreon/stats", map[string]string{auth.HeaderName: "secret"}, 200},
		{"Bearer key", "GET", "/patreon/stats", map[string]string{"Authorization": "Bearer secret"}, 200},
		{"Skipped path", "POST", "/webhook", nil, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := newApp(auth.Config{})
	resp, err := app.Test(httptest.NewRequest("GET", "/patreon/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
