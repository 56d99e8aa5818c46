package reconcile

import (
	"patron-manager/core/entitlement"
	"patron-manager/core/identity"
	pmodels "patron-manager/feature/patreon/models"
	"patron-manager/feature/supporters"
)

const memberKeyPrefix = "patreon:"

// Lookup indexes the membership snapshot and the static inputs for the strategies.
type Lookup struct {
	byPatreonID map[string]Subject
	byDiscordID map[string]Subject
	supporters  map[string]Subject
	static      *supporters.Static

	// entitled lists every subject in membership then supporter order.
	entitled []Subject
}

// NewLookup indexes members and static. When several members share an id the one with the
// highest quota wins.
func NewLookup(members []*pmodels.Member, static *supporters.Static) *Lookup {
	if static == nil {
		static = supporters.Builtin()
	}
	table := static.Tiers()

	l := &Lookup{
		byPatreonID: make(map[string]Subject),
		byDiscordID: make(map[string]Subject),
		supporters:  make(map[string]Subject),
		static:      static,
	}

	for _, m := range members {
		s := memberSubject(m, table)
		l.entitled = append(l.entitled, s)
		if m.PatreonID != "" {
			keepBest(l.byPatreonID, m.PatreonID, s)
		}
		if m.DiscordID != "" {
			keepBest(l.byDiscordID, m.DiscordID, s)
		}
	}
	for _, sup := range static.Supporters() {
		s := Subject{
			Kind:      KindSupporter,
			Key:       sup.DiscordID,
			DiscordID: sup.DiscordID,
			Name:      sup.DisplayName,
			Quota:     entitlement.SupporterQuota(sup.Quota),
		}
		l.supporters[sup.DiscordID] = s
		l.entitled = append(l.entitled, s)
	}
	return l
}

func memberSubject(m *pmodels.Member, table entitlement.TierQuotaTable) Subject {
	key := m.DiscordID
	if key == "" {
		key = memberKeyPrefix + m.ID
	}
	return Subject{
		Kind:      KindPatreon,
		Key:       key,
		MemberID:  m.ID,
		PatreonID: m.PatreonID,
		DiscordID: m.DiscordID,
		Name:      m.FullName,
		Status:    m.Status,
		Quota:     m.Quota(table),
	}
}

func keepBest(idx map[string]Subject, id string, s Subject) {
	cur, ok := idx[id]
	if !ok || s.Quota > cur.Quota {
		idx[id] = s
	}
}

// MemberByPatreonID finds a member by numeric Patreon id.
func (l *Lookup) MemberByPatreonID(id string) (Subject, bool) {
	s, ok := l.byPatreonID[id]
	return s, ok
}

// MemberByDiscordID finds a member by linked Discord id.
func (l *Lookup) MemberByDiscordID(id string) (Subject, bool) {
	s, ok := l.byDiscordID[id]
	return s, ok
}

// Supporter finds a curated supporter by Discord id.
func (l *Lookup) Supporter(discordID string) (Subject, bool) {
	s, ok := l.supporters[discordID]
	return s, ok
}

// ByDiscordID finds a member, then a supporter, by Discord id.
func (l *Lookup) ByDiscordID(id string) (Subject, bool) {
	if s, ok := l.MemberByDiscordID(id); ok {
		return s, true
	}
	return l.Supporter(id)
}

// Alias resolves an opaque token to a Patreon id.
func (l *Lookup) Alias(token string) (string, bool) {
	return l.static.Alias(token)
}

// NameCandidates returns every subject whose name is contained in areaName.
func (l *Lookup) NameCandidates(areaName string) []Subject {
	var out []Subject
	seen := make(map[string]struct{})
	for _, s := range l.entitled {
		if _, dup := seen[s.Key]; dup {
			continue
		}
		if identity.ContainsFold(areaName, s.Name) {
			seen[s.Key] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// Entitled returns every subject, members first.
func (l *Lookup) Entitled() []Subject {
	out := make([]Subject, len(l.entitled))
	copy(out, l.entitled)
	return out
}
