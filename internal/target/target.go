package target

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ErrPrivateAddress is returned for loopback, private, or unspecified hosts.
var ErrPrivateAddress = errors.New("private or loopback addresses are not allowed")

// Target is the normalized, immutable representation of a URL under evaluation.
type Target struct {
	URL              string `json:"url"`
	Protocol         string `json:"protocol"`
	Hostname         string `json:"hostname"`
	RootDomain       string `json:"rootDomain"`
	Subdomain        string `json:"subdomain"`
	Path             string `json:"path"`
	Query            string `json:"query"`
	IsHostedPlatform bool   `json:"isHostedPlatform"`
	Platform         string `json:"platform,omitempty"`
}

// Parser builds Targets from raw user input using an immutable hosted-platform table.
type Parser struct {
	platforms []string
}

// NewParser returns a parser that recognizes the given shared-hosting root domains.
func NewParser(platforms []string) *Parser {
	return &Parser{platforms: platforms}
}

// Parse normalizes a raw URL into a Target. It rejects unparseable input and
// private/loopback hosts before any detector runs.
func (p *Parser) Parse(raw string) (Target, error) {
	cleaned := Sanitize(raw)
	if cleaned == "" {
		return Target{}, errors.New("url is required")
	}
	if !strings.HasPrefix(cleaned, "http://") && !strings.HasPrefix(cleaned, "https://") {
		cleaned = "https://" + cleaned
	}

	u, err := url.Parse(cleaned)
	if err != nil {
		return Target{}, fmt.Errorf("invalid url format: %w", err)
	}

	hostname := strings.ToLower(u.Hostname())
	if hostname == "" {
		return Target{}, errors.New("invalid hostname")
	}
	if isPrivateHost(hostname) {
		return Target{}, ErrPrivateAddress
	}

	// Hosted platforms (vercel.app, github.io, ...) appear in the public-suffix
	// list themselves, which would swallow the tenant label. The platform table
	// takes precedence so that brand.vercel.app splits into subdomain "brand".
	platform := hostedPlatformFor(hostname, p.platforms)

	rootDomain := hostname
	if platform != "" {
		rootDomain = platform
	} else if registrable, err := publicsuffix.EffectiveTLDPlusOne(hostname); err == nil {
		rootDomain = strings.ToLower(registrable)
	}

	subdomain := ""
	if hostname != rootDomain {
		subdomain = strings.TrimSuffix(hostname, "."+rootDomain)
	}

	return Target{
		URL:              u.String(),
		Protocol:         u.Scheme,
		Hostname:         hostname,
		RootDomain:       rootDomain,
		Subdomain:        subdomain,
		Path:             u.Path,
		Query:            u.RawQuery,
		IsHostedPlatform: platform != "",
		Platform:         platform,
	}, nil
}

// Sanitize trims surrounding whitespace and trailing slashes from raw input.
func Sanitize(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

func hostedPlatformFor(hostname string, platforms []string) string {
	for _, platform := range platforms {
		if hostname == platform || strings.HasSuffix(hostname, "."+platform) {
			return platform
		}
	}
	return ""
}

func isPrivateHost(hostname string) bool {
	if hostname == "localhost" {
		return true
	}
	ip := net.ParseIP(hostname)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || ip.IsLinkLocalUnicast()
}
