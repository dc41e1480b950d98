package detector

import (
	"net/http"

	"github.com/example/phishcheck/internal/brand"
)

// AllNames returns every built-in detector name in canonical order.
func AllNames() []string {
	return []string{NameHeuristic, NameTyposquat, NameSSL, NameDomainAge, NameContent, NameReputation}
}

// Options carries the collaborators the built-in detectors need.
type Options struct {
	Matcher          *brand.Matcher
	HTTPClient       *http.Client
	RDAPBaseURL      string
	DomainAgeEnabled bool
	AbuseIPDBURL     string
	AbuseIPDBKey     string
	Lookup           LookupFunc
}

// NewRegistry wires the built-in detectors to their collaborators.
func NewRegistry(opts Options) Registry {
	return Registry{
		NameHeuristic: func() Detector { return NewHeuristicDetector() },
		NameTyposquat: func() Detector { return NewTyposquatDetector(opts.Matcher) },
		NameSSL:       func() Detector { return NewSSLDetector() },
		NameDomainAge: func() Detector {
			return NewDomainAgeDetector(opts.HTTPClient, opts.RDAPBaseURL, opts.DomainAgeEnabled)
		},
		NameContent: func() Detector { return NewContentDetector(opts.HTTPClient) },
		NameReputation: func() Detector {
			return NewReputationDetector(opts.HTTPClient, opts.Lookup, opts.AbuseIPDBURL, opts.AbuseIPDBKey)
		},
	}
}
