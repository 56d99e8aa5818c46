package models

import (
	"patron-manager/core/entitlement"
)

// Patron statuses reported by Patreon.
const (
	StatusActive   = entitlement.StatusActive
	StatusDeclined = "declined_patron"
	StatusFormer   = "former_patron"
)

// Tier is a tier currently granted to a member.
type Tier struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Member is one subscriber of the campaign.
type Member struct {
	// ID is the Patreon member UUID, stable across syncs.
	ID string `json:"id"`
	// PatreonID is the numeric Patreon user id.
	PatreonID string `json:"patreonId,omitempty"`
	// DiscordID is the linked Discord account, if any.
	DiscordID        string `json:"discordId,omitempty"`
	Email            string `json:"email,omitempty"`
	FullName         string `json:"fullName"`
	Status           string `json:"status,omitempty"`
	AmountCents      int    `json:"amountCents"`
	LastChargeStatus string `json:"lastChargeStatus,omitempty"`
	IsFollower       bool   `json:"isFollower"`
	IsFreeTrial      bool   `json:"isFreeTrial"`
	IsGifted         bool   `json:"isGifted"`
	NextChargeDate   string `json:"nextChargeDate,omitempty"`
	Tiers            []Tier `json:"tiers"`
	// LastUpdated is the epoch millis of the write that produced this record.
	LastUpdated int64 `json:"lastUpdated"`
}

// TierIDs returns the ids of the member's tiers.
func (m *Member) TierIDs() []string {
	ids := make([]string, 0, len(m.Tiers))
	for _, t := range m.Tiers {
		ids = append(ids, t.ID)
	}
	return ids
}

// IsActive reports whether the member counts toward entitlements.
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

// Quota returns the scanner quota granted to the member by table.
func (m *Member) Quota(table entitlement.TierQuotaTable) int {
	return entitlement.MemberQuota(m.Status, m.TierIDs(), table)
}

// Clone returns a deep copy of the member.
func (m *Member) Clone() *Member {
	if m == nil {
		return nil
	}
	c := *m
	if m.Tiers != nil {
		c.Tiers = make([]Tier, len(m.Tiers))
		copy(c.Tiers, m.Tiers)
	}
	return &c
}

// Stats is an aggregate view of the store.
type Stats struct {
	Members       int    `json:"members"`
	Active        int    `json:"active"`
	LinkedDiscord int    `json:"linkedDiscord"`
	TotalQuota    int    `json:"totalQuota"`
	TotalPledged  string `json:"totalPledged"`
}
