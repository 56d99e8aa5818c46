package identity

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

var (
	prefixPattern  = regexp.MustCompile(`^(\d+)`)
	discordPattern = regexp.MustCompile(`(?:^|\D)(\d{17,20})(?:\D|$)`)
	kofiPattern    = regexp.MustCompile(`(?i)^\s*ko-?fi`)
	tokenPattern   = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
)

// PatreonPrefix returns the run of digits the name starts with.
func PatreonPrefix(name string) (string, bool) {
	m := prefixPattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DiscordID returns the first 17-20 digit run that is not part of a longer number.
func DiscordID(name string) (string, bool) {
	m := discordPattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// KofiMarker reports whether the name starts with the Ko-Fi supporter marker.
func KofiMarker(name string) bool {
	return kofiPattern.MatchString(name)
}

// OpaqueToken returns the first UUID-shaped token in the name, lowercased.
func OpaqueToken(name string) (string, bool) {
	raw := tokenPattern.FindString(name)
	if raw == "" {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// ContainsFold reports whether candidate appears in name, ignoring case.
// Blank candidates never match.
func ContainsFold(name, candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false
	}
	// Casers are stateful, so each call gets its own.
	return strings.Contains(cases.Fold().String(name), cases.Fold().String(candidate))
}
