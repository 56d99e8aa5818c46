package reconcile

import (
	"patron-manager/core/identity"
	dmodels "patron-manager/feature/dragonite/models"
)

// Link is the outcome of a strategy: the group an area belongs to and, when the strategy
// already resolved it, the subject.
type Link struct {
	Key     string
	Rule    Rule
	Subject *Subject
}

// Strategy tries to link an area. Strategies are evaluated in order and the first hit wins.
type Strategy func(area dmodels.Area, l *Lookup) (Link, bool)

// DefaultStrategies returns the linking rules in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		PatreonPrefix,
		KofiPrefix,
		DiscordSubstring,
		AliasToken,
	}
}

// PatreonPrefix links areas whose name starts with a known numeric Patreon id.
func PatreonPrefix(area dmodels.Area, l *Lookup) (Link, bool) {
	id, ok := identity.PatreonPrefix(area.Name)
	if !ok {
		return Link{}, false
	}
	s, ok := l.MemberByPatreonID(id)
	if !ok {
		return Link{}, false
	}
	return Link{Key: s.Key, Rule: RulePatreonPrefix, Subject: &s}, true
}

// KofiPrefix links Ko-Fi marked areas carrying the Discord id of a known supporter.
func KofiPrefix(area dmodels.Area, l *Lookup) (Link, bool) {
	if !identity.KofiMarker(area.Name) {
		return Link{}, false
	}
	id, ok := identity.DiscordID(area.Name)
	if !ok {
		return Link{}, false
	}
	s, ok := l.Supporter(id)
	if !ok {
		return Link{}, false
	}
	return Link{Key: id, Rule: RuleKofiPrefix, Subject: &s}, true
}

// DiscordSubstring groups areas by any Discord id in the name. The subject is resolved per
// group.
func DiscordSubstring(area dmodels.Area, _ *Lookup) (Link, bool) {
	id, ok := identity.DiscordID(area.Name)
	if !ok {
		return Link{}, false
	}
	return Link{Key: id, Rule: RuleDiscordID}, true
}

// AliasToken resolves a UUID token through the alias table to a member.
func AliasToken(area dmodels.Area, l *Lookup) (Link, bool) {
	token, ok := identity.OpaqueToken(area.Name)
	if !ok {
		return Link{}, false
	}
	patreonID, ok := l.Alias(token)
	if !ok {
		return Link{}, false
	}
	s, ok := l.MemberByPatreonID(patreonID)
	if !ok {
		return Link{}, false
	}
	return Link{Key: s.Key, Rule: RuleAlias, Subject: &s}, true
}
