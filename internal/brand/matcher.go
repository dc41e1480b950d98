package brand

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/example/phishcheck/internal/target"
)

// MatchType classifies how a hostname impersonates a brand.
type MatchType string

const (
	MatchExactSubdomain    MatchType = "EXACT_SUBDOMAIN"
	MatchCharSubstitution  MatchType = "CHAR_SUBSTITUTION"
	MatchBrandWithKeywords MatchType = "BRAND_WITH_KEYWORDS"
	MatchSimilarity        MatchType = "SIMILARITY"
	MatchNone              MatchType = "NONE"
)

// Confidence grades how certain a match is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Match is the immutable result of one brand-impersonation scan.
type Match struct {
	IsMatch      bool       `json:"isMatch"`
	Brand        string     `json:"brand,omitempty"`
	Type         MatchType  `json:"matchType"`
	Confidence   Confidence `json:"confidence,omitempty"`
	Score        int        `json:"score"`
	EditDistance int        `json:"editDistance,omitempty"`
}

// Substitution maps a visually deceptive token to the characters it impersonates.
// Single-character tokens are applied as replacements inside the brand name;
// multi-character tokens (rn, vv, cl) are pseudo-letters matched by containment.
type Substitution struct {
	Fake string
	Real []string
}

// DefaultSubstitutions covers the common homoglyph swaps seen in typosquats.
func DefaultSubstitutions() []Substitution {
	return []Substitution{
		{Fake: "0", Real: []string{"o"}},
		{Fake: "1", Real: []string{"l", "i"}},
		{Fake: "3", Real: []string{"e"}},
		{Fake: "4", Real: []string{"a"}},
		{Fake: "5", Real: []string{"s"}},
		{Fake: "8", Real: []string{"b"}},
		{Fake: "rn", Real: []string{"m"}},
		{Fake: "vv", Real: []string{"w"}},
		{Fake: "cl", Real: []string{"d"}},
	}
}

var suspiciousAdditions = regexp.MustCompile(`login|verify|secure|account|official|auth`)

// Matcher scans hostnames against a protected brand list. Brand order matters:
// earlier brands win ties in the similarity fallback.
type Matcher struct {
	brands []string
	subs   []Substitution
}

// NewMatcher builds a matcher over an immutable brand list and substitution table.
func NewMatcher(brands []string, subs []Substitution) *Matcher {
	return &Matcher{brands: brands, subs: subs}
}

// Match runs the rule pipeline against one target. The exact-subdomain,
// character-substitution, and brand-plus-keyword rules terminate on the first
// hit; the edit-distance rule only records candidates because a later brand
// may be a closer match, so it resolves after the full scan.
func (m *Matcher) Match(tgt target.Target) Match {
	hostNorm := Normalize(tgt.Hostname)
	subNorm := Normalize(tgt.Subdomain)

	best := Match{Type: MatchNone}
	bestDistance := -1

	for _, brand := range m.brands {
		brandNorm := Normalize(brand)
		if brandNorm == "" {
			continue
		}

		if subNorm != "" && subNorm == brandNorm {
			return Match{
				IsMatch:    true,
				Brand:      brand,
				Type:       MatchExactSubdomain,
				Confidence: ConfidenceHigh,
				Score:      50,
			}
		}

		if m.hasCharSubstitution(hostNorm, brandNorm) {
			return Match{
				IsMatch:    true,
				Brand:      brand,
				Type:       MatchCharSubstitution,
				Confidence: ConfidenceHigh,
				Score:      50,
			}
		}

		if hostNorm != brandNorm && strings.Contains(hostNorm, brandNorm) {
			additions := strings.Replace(hostNorm, brandNorm, "", 1)
			if suspiciousAdditions.MatchString(additions) {
				return Match{
					IsMatch:    true,
					Brand:      brand,
					Type:       MatchBrandWithKeywords,
					Confidence: ConfidenceHigh,
					Score:      45,
				}
			}
		}

		distance := levenshtein.ComputeDistance(hostNorm, brandNorm)
		threshold := len(brandNorm) / 5
		if threshold < 2 {
			threshold = 2
		}
		if distance <= threshold && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			best = Match{
				IsMatch:      true,
				Brand:        brand,
				Type:         MatchSimilarity,
				Score:        35,
				Confidence:   ConfidenceMedium,
				EditDistance: distance,
			}
		}
	}

	if bestDistance >= 0 && bestDistance <= 2 {
		if bestDistance == 1 {
			best.Confidence = ConfidenceHigh
			best.Score = 45
		}
		return best
	}

	return Match{Type: MatchNone}
}

func (m *Matcher) hasCharSubstitution(hostNorm, brandNorm string) bool {
	for _, sub := range m.subs {
		if len(sub.Fake) > 1 {
			// Pseudo-letters such as rn->m match by containment.
			if strings.Contains(hostNorm, sub.Fake) && strings.Contains(brandNorm, sub.Real[0]) {
				return true
			}
			continue
		}
		for _, real := range sub.Real {
			if strings.Contains(brandNorm, real) && hostNorm == strings.ReplaceAll(brandNorm, real, sub.Fake) {
				return true
			}
		}
	}
	return false
}

// Normalize lower-cases a name and strips every non-alphanumeric rune so that
// brand and hostname spellings compare on equal footing.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
