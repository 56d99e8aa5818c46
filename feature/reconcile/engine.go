package reconcile

import (
	"sort"

	"patron-manager/core/identity"
	dmodels "patron-manager/feature/dragonite/models"
	pmodels "patron-manager/feature/patreon/models"
	"patron-manager/feature/supporters"
)

// Input is everything one reconciliation reads.
type Input struct {
	Members []*pmodels.Member
	Static  *supporters.Static
	Areas   []dmodels.Area
}

// Engine classifies areas and subjects. It is stateless and safe for concurrent use.
type Engine struct {
	strategies []Strategy
}

// NewEngine creates an engine with strategies, or DefaultStrategies when none are given.
func NewEngine(strategies ...Strategy) *Engine {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Engine{strategies: strategies}
}

type group struct {
	key     string
	rule    Rule
	subject *Subject
	areas   []AreaRef
}

func (g *group) anyEnabled() bool {
	for _, a := range g.areas {
		if a.Enabled {
			return true
		}
	}
	return false
}

func (g *group) totals() (expected, active int) {
	for _, a := range g.areas {
		expected += a.Expected
		active += a.Active
	}
	return expected, active
}

// Run produces a report. Every area lands in exactly one of completed, matches,
// noPatreonMatch or noDiscordIdFound. A group is filed by the highest-priority rule
// among its areas, independent of area order.
func (e *Engine) Run(in Input) *Report {
	report := newReport()
	lookup := NewLookup(in.Members, in.Static)

	areas := make([]dmodels.Area, len(in.Areas))
	copy(areas, in.Areas)
	sort.SliceStable(areas, func(i, j int) bool { return areas[i].ID < areas[j].ID })
	report.Summary.Areas = len(areas)

	groups := make(map[string]*group)
	var order []string
	tokens := make(map[string]struct{})

	for _, area := range areas {
		ref := AreaRef{
			ID:       area.ID,
			Name:     area.Name,
			Enabled:  area.Enabled,
			Expected: area.TotalExpected(),
			Active:   area.TotalActive(),
		}
		token, hasToken := identity.OpaqueToken(area.Name)
		if hasToken {
			tokens[token] = struct{}{}
		}

		if link, ok := e.resolve(area, lookup); ok {
			g, exists := groups[link.Key]
			if !exists {
				g = &group{key: link.Key, rule: link.Rule}
				groups[link.Key] = g
				order = append(order, link.Key)
			}
			// The strongest rule linking into a group decides its bucket.
			if link.Rule.rank() < g.rule.rank() {
				g.rule = link.Rule
				if link.Subject != nil {
					g.subject = link.Subject
				}
			}
			if g.subject == nil && link.Subject != nil {
				g.subject = link.Subject
			}
			g.areas = append(g.areas, ref)
			continue
		}

		if candidates := lookup.NameCandidates(area.Name); len(candidates) > 0 {
			report.PossibleMatches = append(report.PossibleMatches, PossibleMatch{Area: ref, Candidates: candidates})
		}
		if area.Enabled {
			report.NoDiscordIDFound.Enabled = append(report.NoDiscordIDFound.Enabled, ref)
		} else {
			report.NoDiscordIDFound.Disabled = append(report.NoDiscordIDFound.Disabled, ref)
		}
		if !hasToken {
			report.UsernameAudit = append(report.UsernameAudit, area.Name)
		}
	}

	resolved := make(map[string]struct{})
	for _, key := range order {
		g := groups[key]
		expected, active := g.totals()

		subject := g.subject
		if subject == nil {
			if s, ok := lookup.ByDiscordID(key); ok {
				subject = &s
			}
		}

		if subject == nil {
			u := Unlinked{Key: key, Rule: g.rule, Areas: g.areas, TotalExpected: expected}
			if g.anyEnabled() {
				report.NoPatreonMatch.Enabled = append(report.NoPatreonMatch.Enabled, u)
			} else {
				report.NoPatreonMatch.Disabled = append(report.NoPatreonMatch.Disabled, u)
			}
			continue
		}

		resolved[key] = struct{}{}
		resolved[subject.Key] = struct{}{}

		m := Match{
			Key:           key,
			Rule:          g.rule,
			Subject:       *subject,
			Areas:         g.areas,
			TotalExpected: expected,
			TotalActive:   active,
			AllowedQuota:  subject.Quota,
			IsMismatch:    expected != subject.Quota,
		}
		if g.rule.Confirmed() {
			report.Completed = append(report.Completed, m)
		} else {
			report.Matches = append(report.Matches, m)
		}
	}

	emitted := make(map[string]struct{})
	for _, s := range lookup.Entitled() {
		if s.Quota <= 0 {
			continue
		}
		if _, ok := resolved[s.Key]; ok {
			continue
		}
		if _, ok := emitted[s.Key]; ok {
			continue
		}
		emitted[s.Key] = struct{}{}
		report.NoDragoniteMatch = append(report.NoDragoniteMatch, s)
	}

	for token := range tokens {
		report.ObservedTokens = append(report.ObservedTokens, token)
	}
	sort.Strings(report.ObservedTokens)

	report.summarize()
	return report
}

func (e *Engine) resolve(area dmodels.Area, l *Lookup) (Link, bool) {
	for _, strategy := range e.strategies {
		if link, ok := strategy(area, l); ok {
			return link, true
		}
	}
	return Link{}, false
}
