package detector

import (
	"context"
	"regexp"
	"strings"

	"github.com/example/phishcheck/internal/target"
)

// Keywords that phishing URLs lean on to look urgent or official.
var suspiciousKeywords = []string{
	"login", "signin", "verify", "secure", "account", "update",
	"confirm", "validate", "suspend", "unusual", "activity",
	"password", "reset", "recover", "unlock", "blocked",
	"urgent", "action", "required", "immediately", "warning",
	"security", "alert", "notification", "verification",
}

var ipHostname = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// HeuristicDetector scores lexical red flags in the URL itself. It performs no
// I/O and never fails.
type HeuristicDetector struct{}

// NewHeuristicDetector returns the URL-string heuristic scanner.
func NewHeuristicDetector() *HeuristicDetector {
	return &HeuristicDetector{}
}

// Name implements Detector.
func (d *HeuristicDetector) Name() string { return NameHeuristic }

// Detect implements Detector.
func (d *HeuristicDetector) Detect(_ context.Context, tgt target.Target) (Result, error) {
	fullURL := strings.ToLower(tgt.Hostname + tgt.Path)
	if tgt.Query != "" {
		fullURL += "?" + strings.ToLower(tgt.Query)
	}

	score := 0
	var flags []string
	details := map[string]interface{}{}

	if len(tgt.Hostname) > 50 {
		score += 15
		flags = append(flags, "LONG_HOSTNAME")
	}
	details["hostnameLength"] = len(tgt.Hostname)

	dashCount := strings.Count(tgt.Hostname, "-")
	if dashCount > 3 {
		score += 10
		flags = append(flags, "EXCESSIVE_DASHES")
	}
	details["dashCount"] = dashCount

	digitCount := 0
	for _, r := range tgt.Hostname {
		if r >= '0' && r <= '9' {
			digitCount++
		}
	}
	if digitCount > 4 {
		score += 10
		flags = append(flags, "EXCESSIVE_DIGITS")
	}
	details["digitCount"] = digitCount

	var found []string
	for _, kw := range suspiciousKeywords {
		if strings.Contains(fullURL, kw) {
			found = append(found, kw)
		}
	}
	if len(found) > 0 {
		bump := len(found) * 5
		if bump > 20 {
			bump = 20
		}
		score += bump
		flags = append(flags, "SUSPICIOUS_KEYWORDS")
		details["suspiciousKeywords"] = found
	}

	if strings.Contains(fullURL, "@") {
		score += 25
		flags = append(flags, "AT_SYMBOL")
	}

	if ipHostname.MatchString(tgt.Hostname) {
		score += 20
		flags = append(flags, "IP_ADDRESS")
	}

	depth := 0
	if tgt.Subdomain != "" {
		depth = len(strings.Split(tgt.Subdomain, "."))
	}
	if depth > 3 {
		score += 10
		flags = append(flags, "DEEP_SUBDOMAIN")
	}
	details["subdomainDepth"] = depth

	return Result{Success: true, Score: score, Flags: flags, Details: details}, nil
}
