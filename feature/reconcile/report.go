package reconcile

// Rule names the strategy that linked an area.
type Rule string

// Linking rules in priority order.
const (
	RulePatreonPrefix Rule = "patreon_prefix"
	RuleKofiPrefix    Rule = "kofi_prefix"
	RuleDiscordID     Rule = "discord_id"
	RuleAlias         Rule = "alias"
)

// rank orders rules by priority. Lower ranks win.
func (r Rule) rank() int {
	switch r {
	case RulePatreonPrefix:
		return 0
	case RuleKofiPrefix:
		return 1
	case RuleDiscordID:
		return 2
	case RuleAlias:
		return 3
	}
	return 4
}

// Confirmed reports whether the rule files its group under completed.
func (r Rule) Confirmed() bool {
	return r == RulePatreonPrefix || r == RuleKofiPrefix
}

// SubjectKind distinguishes Patreon members from curated supporters.
type SubjectKind string

// Subject kinds.
const (
	KindPatreon   SubjectKind = "patreon"
	KindSupporter SubjectKind = "supporter"
)

// Subject is a subscriber or supporter entitled to scanners.
type Subject struct {
	Kind SubjectKind `json:"kind"`
	// Key is the grouping key: the Discord id, or patreon:<member id> for members without one.
	Key       string `json:"key"`
	MemberID  string `json:"memberId,omitempty"`
	PatreonID string `json:"patreonId,omitempty"`
	DiscordID string `json:"discordId,omitempty"`
	Name      string `json:"name"`
	Status    string `json:"status,omitempty"`
	Quota     int    `json:"quota"`
}

// AreaRef is the report view of an area.
type AreaRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
	Expected int    `json:"expected"`
	Active   int    `json:"active"`
}

// Match is a group of areas linked to one subject.
type Match struct {
	Key           string    `json:"key"`
	Rule          Rule      `json:"rule"`
	Subject       Subject   `json:"subject"`
	Areas         []AreaRef `json:"areas"`
	TotalExpected int       `json:"totalExpected"`
	TotalActive   int       `json:"totalActive"`
	AllowedQuota  int       `json:"allowedQuota"`
	IsMismatch    bool      `json:"isMismatch"`
}

// Unlinked is a group whose linking key matched no subject.
type Unlinked struct {
	Key           string    `json:"key"`
	Rule          Rule      `json:"rule"`
	Areas         []AreaRef `json:"areas"`
	TotalExpected int       `json:"totalExpected"`
}

// UnlinkedSplit splits unlinked groups by whether any area is enabled.
type UnlinkedSplit struct {
	Enabled  []Unlinked `json:"enabled"`
	Disabled []Unlinked `json:"disabled"`
}

// AreaSplit splits areas by their enabled flag.
type AreaSplit struct {
	Enabled  []AreaRef `json:"enabled"`
	Disabled []AreaRef `json:"disabled"`
}

// PossibleMatch is an advisory name-similarity hit. It never affects classification.
type PossibleMatch struct {
	Area       AreaRef   `json:"area"`
	Candidates []Subject `json:"candidates"`
}

// Rename is a name change picked up by live verification.
type Rename struct {
	ID   int    `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Summary counts each bucket.
type Summary struct {
	GeneratedAt      int64 `json:"generatedAt"`
	Areas            int   `json:"areas"`
	Completed        int   `json:"completed"`
	Matches          int   `json:"matches"`
	Mismatches       int   `json:"mismatches"`
	NoPatreonMatch   int   `json:"noPatreonMatch"`
	NoDiscordIDFound int   `json:"noDiscordIdFound"`
	NoDragoniteMatch int   `json:"noDragoniteMatch"`
	PossibleMatches  int   `json:"possibleMatches"`
	Renamed          int   `json:"renamed"`
}

// Report is the outcome of one reconciliation.
type Report struct {
	Summary          Summary         `json:"summary"`
	Completed        []Match         `json:"completed"`
	Matches          []Match         `json:"matches"`
	NoPatreonMatch   UnlinkedSplit   `json:"noPatreonMatch"`
	NoDiscordIDFound AreaSplit       `json:"noDiscordIdFound"`
	NoDragoniteMatch []Subject       `json:"noDragoniteMatch"`
	PossibleMatches  []PossibleMatch `json:"possibleMatches"`
	UsernameAudit    []string        `json:"usernameAudit"`
	ObservedTokens   []string        `json:"observedTokens"`
	Renamed          []Rename        `json:"renamed"`
	ArchiveKey       string          `json:"archiveKey,omitempty"`
}

func newReport() *Report {
	return &Report{
		Completed:        []Match{},
		Matches:          []Match{},
		NoPatreonMatch:   UnlinkedSplit{Enabled: []Unlinked{}, Disabled: []Unlinked{}},
		NoDiscordIDFound: AreaSplit{Enabled: []AreaRef{}, Disabled: []AreaRef{}},
		NoDragoniteMatch: []Subject{},
		PossibleMatches:  []PossibleMatch{},
		UsernameAudit:    []string{},
		ObservedTokens:   []string{},
		Renamed:          []Rename{},
	}
}

func (r *Report) summarize() {
	s := &r.Summary
	s.Completed = len(r.Completed)
	s.Matches = len(r.Matches)
	s.Mismatches = 0
	for _, list := range [][]Match{r.Completed, r.Matches} {
		for _, m := range list {
			if m.IsMismatch {
				s.Mismatches++
			}
		}
	}
	s.NoPatreonMatch = len(r.NoPatreonMatch.Enabled) + len(r.NoPatreonMatch.Disabled)
	s.NoDiscordIDFound = len(r.NoDiscordIDFound.Enabled) + len(r.NoDiscordIDFound.Disabled)
	s.NoDragoniteMatch = len(r.NoDragoniteMatch)
	s.PossibleMatches = len(r.PossibleMatches)
	s.Renamed = len(r.Renamed)
}
