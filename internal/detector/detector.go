package detector

import (
	"context"
	"fmt"

	"github.com/example/phishcheck/internal/target"
)

// Canonical detector names. They double as the per-signal score keys in the
// final verdict, so changing one changes the API response shape.
const (
	NameHeuristic  = "heuristic"
	NameTyposquat  = "typosquatting"
	NameSSL        = "ssl"
	NameDomainAge  = "domainAge"
	NameContent    = "content"
	NameReputation = "reputation"
)

// Result is a single detector's contribution to an evaluation. A failed
// detector (Success=false) is a first-class outcome: it may still carry a
// small score representing partial signal.
type Result struct {
	Success bool                   `json:"success"`
	Score   int                    `json:"score"`
	Flags   []string               `json:"flags,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HasFlag reports whether the result carries the given flag.
func (r Result) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// SignalSet maps detector name to its result. The runner guarantees one entry
// per registered detector: a real result, a failure, a timeout placeholder, or
// a SKIPPED placeholder.
type SignalSet map[string]Result

// Detector is implemented by every signal source. Detect should absorb its own
// domain failures into a Result; a returned error is converted by the runner
// into a failure placeholder.
type Detector interface {
	Name() string
	Detect(ctx context.Context, tgt target.Target) (Result, error)
}

// Registry maps detector names to constructors.
type Registry map[string]Factory

// Factory builds a detector instance.
type Factory func() Detector

// Build instantiates detectors for the provided names, rejecting unknown names
// and skipping duplicates.
func (r Registry) Build(names []string) ([]Detector, error) {
	var detectors []Detector
	seen := map[string]struct{}{}
	for _, name := range names {
		factory, ok := r[name]
		if !ok {
			return nil, fmt.Errorf("unknown detector: %s", name)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		detectors = append(detectors, factory())
	}
	return detectors, nil
}
