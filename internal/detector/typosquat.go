package detector

import (
	"context"

	"github.com/example/phishcheck/internal/brand"
	"github.com/example/phishcheck/internal/target"
)

// DetailBrandMatch is the Details key carrying the typed brand.Match so the
// fusion step can consume it without rescanning.
const DetailBrandMatch = "match"

// TyposquatDetector adapts the brand matcher to the detector capability.
type TyposquatDetector struct {
	matcher *brand.Matcher
}

// NewTyposquatDetector wraps a matcher as a detector.
func NewTyposquatDetector(m *brand.Matcher) *TyposquatDetector {
	return &TyposquatDetector{matcher: m}
}

// Name implements Detector.
func (d *TyposquatDetector) Name() string { return NameTyposquat }

// Detect implements Detector. The scan is pure string work, so it ignores the
// context and never fails.
func (d *TyposquatDetector) Detect(_ context.Context, tgt target.Target) (Result, error) {
	m := d.matcher.Match(tgt)

	res := Result{
		Success: true,
		Score:   m.Score,
		Details: map[string]interface{}{DetailBrandMatch: m},
	}
	if m.IsMatch {
		res.Flags = []string{string(m.Type)}
		res.Details["brand"] = m.Brand
		res.Details["confidence"] = string(m.Confidence)
	}
	return res, nil
}

// MatchFromSignals extracts the typed brand match stashed by the typosquat
// detector. A missing or malformed slot yields a no-match value.
func MatchFromSignals(signals SignalSet) brand.Match {
	res, ok := signals[NameTyposquat]
	if !ok || res.Details == nil {
		return brand.Match{Type: brand.MatchNone}
	}
	if m, ok := res.Details[DetailBrandMatch].(brand.Match); ok {
		return m
	}
	return brand.Match{Type: brand.MatchNone}
}
