package verdict

import (
	"github.com/example/phishcheck/internal/brand"
	"github.com/example/phishcheck/internal/detector"
	"github.com/example/phishcheck/internal/target"
)

// Fuse combines a fully populated SignalSet into one Verdict. The content and
// domain-age components are weighed against each other: a login form on a
// ten-year-old domain means something very different from the same form on a
// domain registered last week.
func Fuse(tgt target.Target, signals detector.SignalSet, match brand.Match) Verdict {
	heuristic := signals[detector.NameHeuristic]
	typosquat := signals[detector.NameTyposquat]
	ssl := signals[detector.NameSSL]
	domainAge := signals[detector.NameDomainAge]
	content := signals[detector.NameContent]
	reputation := signals[detector.NameReputation]

	flags := newFlagSet()
	if tgt.IsHostedPlatform {
		flags.add("HOSTED_PLATFORM")
	}
	for _, res := range []detector.Result{heuristic, typosquat, ssl, domainAge, content, reputation} {
		flags.add(res.Flags...)
	}
	if match.IsMatch {
		flags.add(string(match.Type))
	}

	total := heuristic.Score + typosquat.Score + ssl.Score + reputation.Score

	ageYears := ageYearsFrom(domainAge)
	hasPasswordForm := flags.has("PASSWORD_FORM")
	hasExternalForm := flags.has("EXTERNAL_FORM_ACTION")

	switch {
	case ageYears >= 5:
		// Long-lived domains with a bare login form are presumptively
		// legitimate; the registration age itself contributes nothing.
		if hasPasswordForm && !hasExternalForm {
			total += maxInt(0, content.Score-5)
		} else {
			total += content.Score
		}
	case ageYears >= 2:
		if hasPasswordForm && !hasExternalForm {
			total += maxInt(0, content.Score-3)
		} else {
			total += content.Score
		}
		total += maxInt(0, domainAge.Score-5)
	default:
		total += domainAge.Score + content.Score
		if hasPasswordForm && (flags.has("VERY_NEW_DOMAIN") || flags.has("NEW_DOMAIN")) {
			total += 10
			flags.add("NEW_DOMAIN_WITH_LOGIN")
		}
	}

	if ageYears >= 2 && !flags.has("NO_HTTPS") && !flags.has("SELF_SIGNED_CERT") {
		total = maxInt(0, total-5)
	}

	// Combinations that individually look mild but together are classic
	// credential-harvesting setups.
	if hasExternalForm && hasPasswordForm {
		total += 20
	}
	if match.IsMatch && hasPasswordForm {
		total += 15
	}
	if tgt.IsHostedPlatform && match.IsMatch {
		total += 10
	}

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	band, level, recommendation := bandFor(total)

	return Verdict{
		URL:            tgt.URL,
		Band:           band,
		RiskScore:      total,
		Level:          level,
		Summary:        summaryFor(flags.ordered),
		Recommendation: recommendation,
		Flags:          flags.ordered,
		Analysis:       buildAnalysis(tgt, signals, match),
		Scores: map[string]int{
			detector.NameHeuristic:  heuristic.Score,
			detector.NameTyposquat:  typosquat.Score,
			detector.NameSSL:        ssl.Score,
			detector.NameDomainAge:  domainAge.Score,
			detector.NameContent:    content.Score,
			detector.NameReputation: reputation.Score,
			"total":                 total,
		},
	}
}

// Whitelisted builds the bypass verdict for trusted domains; no detector runs.
func Whitelisted(tgt target.Target) Verdict {
	return Verdict{
		URL:            tgt.URL,
		Band:           BandSafe,
		RiskScore:      0,
		Level:          "success",
		Summary:        "Domain is in the trusted whitelist.",
		Recommendation: "This domain is verified as safe.",
		Flags:          []string{"WHITELISTED"},
		Analysis: map[string]interface{}{
			"domain": domainAnalysis(tgt),
		},
		Scores: map[string]int{"total": 0},
	}
}

func buildAnalysis(tgt target.Target, signals detector.SignalSet, match brand.Match) map[string]interface{} {
	analysis := map[string]interface{}{
		"domain": domainAnalysis(tgt),
	}
	for name, res := range signals {
		if name == detector.NameTyposquat {
			continue
		}
		if res.Details != nil {
			analysis[name] = res.Details
		}
	}
	if match.IsMatch {
		analysis[detector.NameTyposquat] = map[string]interface{}{
			"matchedBrand": match.Brand,
			"matchType":    string(match.Type),
			"confidence":   string(match.Confidence),
		}
	}
	return analysis
}

func domainAnalysis(tgt target.Target) map[string]interface{} {
	return map[string]interface{}{
		"hostname":         tgt.Hostname,
		"rootDomain":       tgt.RootDomain,
		"subdomain":        tgt.Subdomain,
		"isHostedPlatform": tgt.IsHostedPlatform,
		"platform":         tgt.Platform,
	}
}

func ageYearsFrom(res detector.Result) float64 {
	if res.Details == nil {
		return 0
	}
	switch v := res.Details["ageYears"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// flagSet keeps first-seen order while deduplicating.
type flagSet struct {
	seen    map[string]struct{}
	ordered []string
}

func newFlagSet() *flagSet {
	return &flagSet{seen: map[string]struct{}{}, ordered: []string{}}
}

func (s *flagSet) add(flags ...string) {
	for _, f := range flags {
		if _, ok := s.seen[f]; ok {
			continue
		}
		s.seen[f] = struct{}{}
		s.ordered = append(s.ordered, f)
	}
}

func (s *flagSet) has(flag string) bool {
	_, ok := s.seen[flag]
	return ok
}
