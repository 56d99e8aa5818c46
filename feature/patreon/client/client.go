package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"patron-manager/feature/patreon/models"

	"go.uber.org/zap"
)

var (
	// ErrNotConfigured is returned when the token or campaign id is missing.
	ErrNotConfigured = errors.New("patreon client requires a token and campaign id")
	// ErrUnexpectedFormat is returned when a response cannot be decoded.
	ErrUnexpectedFormat = errors.New("unexpected patreon response format")
)

var userURLID = regexp.MustCompile(`[?&]u=(\d+)`)

const (
	memberFields = "email,full_name,patron_status,currently_entitled_amount_cents,last_charge_date,last_charge_status,lifetime_support_cents,will_pay_amount_cents,is_follower,is_free_trial,is_gifted,next_charge_date"
	userFields   = "social_connections,url"
	tierFields   = "title,amount_cents"
)

// Client fetches the campaign roster from Patreon.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a Patreon client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
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

// FetchAllMembers walks every page of the campaign members endpoint.
// Any failed page aborts the whole fetch with no partial result.
func (c *Client) FetchAllMembers(ctx context.Context) ([]*models.Member, error) {
	if !c.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	var all []*models.Member
	seen := make(map[string]struct{})
	next := c.membersURL()
	for page := 1; next != ""; page++ {
		if _, dup := seen[next]; dup {
			return nil, fmt.Errorf("pagination loop detected at page %d", page)
		}
		seen[next] = struct{}{}

		c.logger.Debug("Fetching Patreon page", zap.Int("page", page))
		resp, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}
		all = append(all, toMembers(resp.Data, resp.Included, c.logger)...)

		next = ""
		if resp.Links != nil {
			next = resp.Links.Next
		}
	}

	c.logger.Info("Fetched Patreon roster", zap.Int("members", len(all)))
	return all, nil
}

func (c *Client) membersURL() string {
	q := url.Values{}
	q.Set("include", "user,currently_entitled_tiers")
	q.Set("fields[member]", memberFields)
	q.Set("fields[user]", userFields)
	q.Set("fields[tier]", tierFields)
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	return fmt.Sprintf("%s/campaigns/%s/members?%s", base, url.PathEscape(c.cfg.CampaignID), q.Encode())
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*models.CollectionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("patreon API error: %d %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload models.CollectionResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
	}
	return &payload, nil
}

// ParseWebhookMember converts a webhook body into a member record.
func ParseWebhookMember(body []byte) (*models.Member, error) {
	var payload models.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
	}
	if payload.Data.ID == "" {
		return nil, fmt.Errorf("%w: webhook member has no id", ErrUnexpectedFormat)
	}
	m, err := toMember(payload.Data, index(payload.Included, zap.L()))
	if err != nil {
		return nil, err
	}
	return m, nil
}

type included struct {
	users map[string]models.UserAttributes
	tiers map[string]models.TierAttributes
}

func index(resources []models.Resource, logger *zap.Logger) included {
	idx := included{
		users: make(map[string]models.UserAttributes),
		tiers: make(map[string]models.TierAttributes),
	}
	for _, r := range resources {
		switch r.Type {
		case "user":
			var attrs models.UserAttributes
			decodeIncluded(r, &attrs, logger)
			idx.users[r.ID] = attrs
		case "tier":
			var attrs models.TierAttributes
			decodeIncluded(r, &attrs, logger)
			idx.tiers[r.ID] = attrs
		}
	}
	return idx
}

// decodeIncluded leaves v zeroed when the attributes are malformed.
func decodeIncluded(r models.Resource, v any, logger *zap.Logger) {
	if len(r.Attributes) == 0 {
		return
	}
	if err := json.Unmarshal(r.Attributes, v); err != nil {
		logger.Warn("Ignoring malformed included resource",
			zap.String("type", r.Type),
			zap.String("id", r.ID),
			zap.Error(err),
		)
	}
}

func toMembers(data, inc []models.Resource, logger *zap.Logger) []*models.Member {
	idx := index(inc, logger)
	out := make([]*models.Member, 0, len(data))
	for _, r := range data {
		m, err := toMember(r, idx)
		if err != nil {
			logger.Warn("Skipping malformed member", zap.String("id", r.ID), zap.Error(err))
			continue
		}
		out = append(out, m)
	}
	return out
}

func toMember(r models.Resource, idx included) (*models.Member, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("%w: member has no id", ErrUnexpectedFormat)
	}

	var attrs models.MemberAttributes
	if len(r.Attributes) > 0 {
		if err := json.Unmarshal(r.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
		}
	}

	m := &models.Member{
		ID:               r.ID,
		Email:            models.Deref(attrs.Email),
		FullName:         attrs.FullName,
		Status:           models.Deref(attrs.PatronStatus),
		AmountCents:      attrs.CurrentlyEntitledAmountCents,
		LastChargeStatus: models.Deref(attrs.LastChargeStatus),
		IsFollower:       attrs.IsFollower,
		IsFreeTrial:      attrs.IsFreeTrial,
		IsGifted:         attrs.IsGifted,
		NextChargeDate:   models.Deref(attrs.NextChargeDate),
		Tiers:            []models.Tier{},
	}

	if ids := r.Relationships["user"].Identifiers(); len(ids) > 0 {
		userID := ids[0].ID
		m.PatreonID = userID
		if user, ok := idx.users[userID]; ok {
			if sc := user.SocialConnections; sc != nil && sc.Discord != nil {
				m.DiscordID = sc.Discord.UserID
			}
			if match := userURLID.FindStringSubmatch(user.URL); match != nil {
				m.PatreonID = match[1]
			}
		}
	}

	for _, t := range r.Relationships["currently_entitled_tiers"].Identifiers() {
		title := idx.tiers[t.ID].Title
		if title == "" {
			title = "Tier " + t.ID
		}
		m.Tiers = append(m.Tiers, models.Tier{ID: t.ID, Title: title})
	}
	return m, nil
}
