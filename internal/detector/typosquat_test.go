package detector

import (
	"context"
	"testing"

	"github.com/example/phishcheck/internal/brand"
	"github.com/example/phishcheck/internal/target"
)

func TestTyposquatDetectStashesTypedMatch(t *testing.T) {
	matcher := brand.NewMatcher([]string{"tokopedia"}, brand.DefaultSubstitutions())
	d := NewTyposquatDetector(matcher)

	res, err := d.Detect(context.Background(), target.Target{
		Hostname:  "tokopedia.vercel.app",
		Subdomain: "tokopedia",
	})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	if res.Score != 50 || !res.HasFlag("EXACT_SUBDOMAIN") {
		t.Fatalf("unexpected result: %#v", res)
	}

	m := MatchFromSignals(SignalSet{NameTyposquat: res})
	if !m.IsMatch || m.Type != brand.MatchExactSubdomain || m.Brand != "tokopedia" {
		t.Fatalf("expected the typed match back, got %#v", m)
	}
}

func TestTyposquatDetectNoMatch(t *testing.T) {
	matcher := brand.NewMatcher([]string{"tokopedia"}, brand.DefaultSubstitutions())
	d := NewTyposquatDetector(matcher)

	res, err := d.Detect(context.Background(), target.Target{Hostname: "example.com"})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	if res.Score != 0 || len(res.Flags) != 0 {
		t.Fatalf("expected neutral result, got %#v", res)
	}
}

func TestMatchFromSignalsMissingSlot(t *testing.T) {
	m := MatchFromSignals(SignalSet{})
	if m.IsMatch || m.Type != brand.MatchNone {
		t.Fatalf("expected no-match fallback, got %#v", m)
	}

	m = MatchFromSignals(SignalSet{
		NameTyposquat: {Success: true, Details: map[string]interface{}{DetailBrandMatch: "garbage"}},
	})
	if m.IsMatch {
		t.Fatalf("malformed slot should yield no match, got %#v", m)
	}
}
