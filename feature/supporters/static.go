package supporters

import (
	"fmt"
	"sort"
	"strings"

	"patron-manager/core/entitlement"
	"patron-manager/core/identity"

	"github.com/goccy/go-yaml"
)

// Supporter is a manually curated supporter outside Patreon, such as a Ko-Fi donor.
type Supporter struct {
	DiscordID   string `yaml:"discordId" json:"discordId"`
	DisplayName string `yaml:"name" json:"name"`
	Quota       int    `yaml:"quota" json:"quota"`
}

// Document is the YAML layout of the static inputs.
type Document struct {
	Tiers      map[string]int    `yaml:"tiers,omitempty"`
	Supporters []Supporter       `yaml:"supporters,omitempty"`
	Aliases    map[string]string `yaml:"aliases,omitempty"`
}

// Static is the immutable set of static inputs. Accessors return copies.
type Static struct {
	tiers      entitlement.TierQuotaTable
	supporters []Supporter
	byDiscord  map[string]int
	aliases    map[string]string
}

// Builtin returns the inputs compiled into the service.
func Builtin() *Static {
	s, _ := New(Document{
		Supporters: []Supporter{
			{DiscordID: "884905804757622835", DisplayName: "swollywoood", Quota: 1},
			{},
		},
	})
	return s
}

// Parse decodes a YAML document. Unknown fields are rejected.
func Parse(data []byte) (*Static, error) {
	var doc Document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("failed to parse supporters document: %w", err)
	}
	return New(doc)
}

// New validates doc. Supporters without a Discord id are dropped. A missing tier table falls
// back to the default quotas. Alias tokens must be UUIDs and are stored lowercased.
func New(doc Document) (*Static, error) {
	s := &Static{
		tiers:     entitlement.TierQuotaTable{},
		byDiscord: make(map[string]int),
		aliases:   make(map[string]string),
	}

	if len(doc.Tiers) == 0 {
		s.tiers = entitlement.DefaultTierQuotas()
	} else {
		for id, quota := range doc.Tiers {
			if quota < 0 {
				return nil, fmt.Errorf("tier %s has negative quota %d", id, quota)
			}
			s.tiers[id] = quota
		}
	}

	for _, sup := range doc.Supporters {
		sup.DiscordID = strings.TrimSpace(sup.DiscordID)
		sup.DisplayName = strings.TrimSpace(sup.DisplayName)
		if sup.DiscordID == "" {
			continue
		}
		if _, dup := s.byDiscord[sup.DiscordID]; dup {
			return nil, fmt.Errorf("duplicate supporter %s", sup.DiscordID)
		}
		sup.Quota = entitlement.SupporterQuota(sup.Quota)
		s.byDiscord[sup.DiscordID] = len(s.supporters)
		s.supporters = append(s.supporters, sup)
	}

	for token, patreonID := range doc.Aliases {
		norm, ok := identity.OpaqueToken(token)
		if !ok {
			return nil, fmt.Errorf("alias %q is not a uuid", token)
		}
		patreonID = strings.TrimSpace(patreonID)
		if patreonID == "" {
			return nil, fmt.Errorf("alias %s has no patreon id", token)
		}
		s.aliases[norm] = patreonID
	}
	return s, nil
}

// Tiers returns the tier quota table.
func (s *Static) Tiers() entitlement.TierQuotaTable {
	out := make(entitlement.TierQuotaTable, len(s.tiers))
	for k, v := range s.tiers {
		out[k] = v
	}
	return out
}

// Supporters returns the supporter list in document order.
func (s *Static) Supporters() []Supporter {
	out := make([]Supporter, len(s.supporters))
	copy(out, s.supporters)
	return out
}

// Supporter looks a supporter up by Discord id.
func (s *Static) Supporter(discordID string) (Supporter, bool) {
	i, ok := s.byDiscord[discordID]
	if !ok {
		return Supporter{}, false
	}
	return s.supporters[i], true
}

// Alias resolves a lowercased opaque token to a Patreon id.
func (s *Static) Alias(token string) (string, bool) {
	id, ok := s.aliases[token]
	return id, ok
}

// AliasTokens returns the known alias tokens, sorted.
func (s *Static) AliasTokens() []string {
	out := make([]string, 0, len(s.aliases))
	for k := range s.aliases {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Document returns the inputs in their YAML layout.
func (s *Static) Document() Document {
	aliases := make(map[string]string, len(s.aliases))
	for k, v := range s.aliases {
		aliases[k] = v
	}
	return Document{Tiers: s.Tiers(), Supporters: s.Supporters(), Aliases: aliases}
}

// Marshal encodes the inputs as YAML.
func (s *Static) Marshal() ([]byte, error) {
	return yaml.Marshal(s.Document())
}
