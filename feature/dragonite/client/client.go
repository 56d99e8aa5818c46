package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"patron-manager/feature/dragonite/models"

	"go.uber.org/zap"
)

var (
	// ErrNotConfigured is returned when the URL or secret is missing.
	ErrNotConfigured = errors.New("dragonite client requires a url and secret")
	// ErrUnexpectedFormat is returned when a response has neither known shape.
	ErrUnexpectedFormat = errors.New("dragonite API returned unexpected format")
)

// Client talks to the Dragonite admin API.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a Dragonite client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
	}
}

// GetStatus fetches every area from /api/status/. Both the wrapped
// {"success": true, "data": {"areas": [...]}} and the bare {"areas": [...]} shapes are accepted.
func (c *Client) GetStatus(ctx context.Context) ([]models.Area, error) {
	body, err := c.get(ctx, "/api/status/")
	if err != nil {
		return nil, err
	}

	payload := body
	if ok, _ := body["success"].(bool); ok {
		if data, isMap := body["data"].(map[string]any); isMap {
			payload = data
		}
	}
	rawAreas, ok := payload["areas"]
	if !ok {
		return nil, ErrUnexpectedFormat
	}
	list, ok := rawAreas.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: areas is not a list", ErrUnexpectedFormat)
	}

	areas := make([]models.Area, 0, len(list))
	for i, item := range list {
		raw, ok := item.(map[string]any)
		if !ok {
			c.logger.Warn("Skipping malformed area", zap.Int("index", i))
			continue
		}
		area, err := models.AreaFromMap(raw)
		if err != nil {
			c.logger.Warn("Skipping malformed area", zap.Int("index", i), zap.Error(err))
			continue
		}
		areas = append(areas, area)
	}
	return areas, nil
}

// GetArea fetches one area from /api/areas/{id}, accepting a {"data": {...}} wrapper.
func (c *Client) GetArea(ctx context.Context, id int) (models.Area, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/areas/%d", id))
	if err != nil {
		return models.Area{}, err
	}
	raw := body
	if data, ok := body["data"].(map[string]any); ok {
		raw = data
	}
	if _, ok := raw["id"]; !ok {
		raw["id"] = id
	}
	return models.AreaFromMap(raw)
}

func (c *Client) get(ctx context.Context, path string) (map[string]any, error) {
	if !c.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cookie", "authorized="+c.cfg.Secret)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dragonite request %s failed: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("dragonite API error: %d %s", res.StatusCode, strings.TrimSpace(string(text)))
	}

	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
	}
	if body == nil {
		return nil, ErrUnexpectedFormat
	}
	return body, nil
}
