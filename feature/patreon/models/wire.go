package models

import (
	"bytes"
	"encoding/json"
)

// Resource is a JSON:API resource object.
type Resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    json.RawMessage         `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// ResourceIdentifier points at an included resource.
type ResourceIdentifier struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Relationship holds either a single identifier or a list.
type Relationship struct {
	Data json.RawMessage `json:"data"`
}

// Identifiers decodes the relationship data regardless of cardinality.
func (r Relationship) Identifiers() []ResourceIdentifier {
	raw := bytes.TrimSpace(r.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '[' {
		var list []ResourceIdentifier
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil
		}
		return list
	}
	var one ResourceIdentifier
	if err := json.Unmarshal(raw, &one); err != nil || one.ID == "" {
		return nil
	}
	return []ResourceIdentifier{one}
}

// Links carries pagination links.
type Links struct {
	Next string `json:"next,omitempty"`
}

// CollectionResponse is one page of the campaign members endpoint.
type CollectionResponse struct {
	Data     []Resource `json:"data"`
	Included []Resource `json:"included,omitempty"`
	Links    *Links     `json:"links,omitempty"`
	Meta     struct {
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

// WebhookPayload is the body of a members webhook delivery.
type WebhookPayload struct {
	Data     Resource   `json:"data"`
	Included []Resource `json:"included,omitempty"`
}

// MemberAttributes are the requested member fields.
type MemberAttributes struct {
	Email                        *string `json:"email"`
	FullName                     string  `json:"full_name"`
	PatronStatus                 *string `json:"patron_status"`
	CurrentlyEntitledAmountCents int     `json:"currently_entitled_amount_cents"`
	LastChargeDate               *string `json:"last_charge_date"`
	LastChargeStatus             *string `json:"last_charge_status"`
	LifetimeSupportCents         int     `json:"lifetime_support_cents"`
	WillPayAmountCents           int     `json:"will_pay_amount_cents"`
	IsFollower                   bool    `json:"is_follower"`
	IsFreeTrial                  bool    `json:"is_free_trial"`
	IsGifted                     bool    `json:"is_gifted"`
	NextChargeDate               *string `json:"next_charge_date"`
}

// UserAttributes are the requested user fields.
type UserAttributes struct {
	URL               string             `json:"url"`
	SocialConnections *SocialConnections `json:"social_connections"`
}

// SocialConnections lists the accounts a user linked on Patreon.
type SocialConnections struct {
	Discord *struct {
		UserID string `json:"user_id"`
	} `json:"discord"`
}

// TierAttributes are the requested tier fields.
type TierAttributes struct {
	Title       string `json:"title"`
	AmountCents int    `json:"amount_cents"`
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
