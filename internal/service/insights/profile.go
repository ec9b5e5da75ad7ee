package insights

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Profile is one of the three billing/costing buckets every employee and
// every rate belongs to.
type Profile string

const (
	ProfileConception Profile = "conception"
	ProfileCrea       Profile = "créa"
	ProfileDev        Profile = "dev"
)

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ResolveProfile maps a free-form team label to a profile. It never fails:
// commercial, conception, direction, empty and unrecognized labels all land
// in the conception bucket. Multiple call sites rely on that default instead
// of an error path, so missing data must keep degrading silently here.
func ResolveProfile(team string) Profile {
	label := normalizeTeam(team)

	switch {
	case strings.HasPrefix(label, "crea"):
		return ProfileCrea
	case strings.HasPrefix(label, "dev"):
		return ProfileDev
	default:
		return ProfileConception
	}
}

// normalizeTeam lowercases and strips diacritics, so "Créa", "création" and
// "CREA" all compare equal.
func normalizeTeam(team string) string {
	lowered := strings.ToLower(strings.TrimSpace(team))

	stripped, _, err := transform.String(stripDiacritics, lowered)
	if err != nil {
		return lowered
	}
	return stripped
}
