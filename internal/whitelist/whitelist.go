package whitelist

import "strings"

// Checker answers whether a hostname belongs to a trusted domain. It exists to
// prevent false positives: whitelisted hosts bypass the engine entirely.
type Checker struct {
	exact    map[string]struct{}
	suffixes []string
}

// NewChecker builds an immutable checker from exact domains and wildcard
// suffixes. A suffix entry "google.com" trusts every subdomain of google.com.
func NewChecker(domains, suffixes []string) *Checker {
	exact := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		exact[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	cleaned := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "*.")))
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return &Checker{exact: exact, suffixes: cleaned}
}

// IsWhitelisted reports whether the hostname is trusted.
func (c *Checker) IsWhitelisted(hostname string) bool {
	hostname = strings.ToLower(hostname)
	if _, ok := c.exact[hostname]; ok {
		return true
	}
	for _, suffix := range c.suffixes {
		if hostname == suffix || strings.HasSuffix(hostname, "."+suffix) {
			return true
		}
	}
	return false
}
