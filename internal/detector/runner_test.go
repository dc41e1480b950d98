package detector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/phishcheck/internal/target"
)

type fakeDetector struct {
	name   string
	result Result
	err    error
	delay  time.Duration
}

func (f fakeDetector) Name() string { return f.name }

func (f fakeDetector) Detect(ctx context.Context, _ target.Target) (Result, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.result, f.err
}

type panicDetector struct{ name string }

func (p panicDetector) Name() string { return p.name }

func (p panicDetector) Detect(ctx context.Context, _ target.Target) (Result, error) {
	panic("boom")
}

func TestRunPopulatesEverySlot(t *testing.T) {
	r := NewRunner([]Detector{
		fakeDetector{name: "one", result: Result{Success: true, Score: 10}},
		fakeDetector{name: "two", result: Result{Success: true, Score: 20}},
	}, nil, time.Second)

	signals := r.Run(context.Background(), target.Target{Hostname: "example.com"})

	if len(signals) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(signals))
	}
	if signals["one"].Score != 10 || signals["two"].Score != 20 {
		t.Fatalf("unexpected signals: %#v", signals)
	}
}

func TestRunAbsorbsDetectorErrors(t *testing.T) {
	r := NewRunner([]Detector{
		fakeDetector{name: "content", err: errors.New("boom")},
		fakeDetector{name: "heuristic", result: Result{Success: true, Score: 15}},
	}, nil, time.Second)

	signals := r.Run(context.Background(), target.Target{Hostname: "example.com"})

	failed := signals["content"]
	if failed.Success {
		t.Fatal("expected a failure result")
	}
	if !failed.HasFlag("CONTENT_FAILED") {
		t.Fatalf("expected CONTENT_FAILED flag, got %v", failed.Flags)
	}
	if signals["heuristic"].Score != 15 {
		t.Fatal("one failing detector must not affect the others")
	}
}

func TestRunTimesOutSlowDetectors(t *testing.T) {
	r := NewRunner([]Detector{
		fakeDetector{name: "domainAge", delay: 500 * time.Millisecond, result: Result{Success: true, Score: 30}},
	}, map[string]time.Duration{"domainAge": 20 * time.Millisecond}, time.Second)

	signals := r.Run(context.Background(), target.Target{Hostname: "example.com"})

	res := signals["domainAge"]
	if res.Success {
		t.Fatal("expected a timeout placeholder")
	}
	if !res.HasFlag("DOMAIN_AGE_TIMEOUT") {
		t.Fatalf("expected DOMAIN_AGE_TIMEOUT flag, got %v", res.Flags)
	}
	if res.Score != 0 {
		t.Fatalf("timeout placeholder must score 0, got %d", res.Score)
	}
}

func TestRunRecoversDetectorPanic(t *testing.T) {
	r := NewRunner([]Detector{panicDetector{name: "ssl"}}, nil, time.Second)

	signals := r.Run(context.Background(), target.Target{Hostname: "example.com"})

	res := signals["ssl"]
	if res.Success || !res.HasFlag("SSL_FAILED") {
		t.Fatalf("expected recovered failure, got %#v", res)
	}
}

func TestRunSkipsDomainAgeOnHostedPlatforms(t *testing.T) {
	r := NewRunner([]Detector{
		fakeDetector{name: NameDomainAge, result: Result{Success: true, Score: 30}},
		fakeDetector{name: NameHeuristic, result: Result{Success: true, Score: 5}},
	}, nil, time.Second)

	signals := r.Run(context.Background(), target.Target{
		Hostname:         "shop.vercel.app",
		IsHostedPlatform: true,
	})

	res := signals[NameDomainAge]
	if !res.Success || res.Score != 0 || !res.HasFlag(FlagSkipped) {
		t.Fatalf("expected SKIPPED placeholder, got %#v", res)
	}
	if signals[NameHeuristic].Score != 5 {
		t.Fatal("other detectors should still run")
	}
}

func TestRunHonorsCallerCancellation(t *testing.T) {
	r := NewRunner([]Detector{
		fakeDetector{name: "reputation", delay: 5 * time.Second, result: Result{Success: true}},
	}, nil, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	signals := r.Run(ctx, target.Target{Hostname: "example.com"})
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("cancelled run took too long: %s", elapsed)
	}

	if signals["reputation"].Success {
		t.Fatal("cancelled detector should report a placeholder")
	}
}

func TestFailureFlag(t *testing.T) {
	tests := []struct {
		name   string
		suffix string
		want   string
	}{
		{"domainAge", "TIMEOUT", "DOMAIN_AGE_TIMEOUT"},
		{"content", "FAILED", "CONTENT_FAILED"},
		{"ssl", "FAILED", "SSL_FAILED"},
	}

	for _, tt := range tests {
		if got := failureFlag(tt.name, tt.suffix); got != tt.want {
			t.Fatalf("failureFlag(%s, %s) = %s, want %s", tt.name, tt.suffix, got, tt.want)
		}
	}
}

func TestRegistryBuild(t *testing.T) {
	r := Registry{
		"fake": func() Detector { return fakeDetector{name: "fake"} },
	}

	dets, err := r.Build([]string{"fake", "fake"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dets) != 1 || dets[0].Name() != "fake" {
		t.Fatalf("unexpected detectors: %#v", dets)
	}

	if _, err := r.Build([]string{"missing"}); err == nil {
		t.Fatal("expected an error for unknown detector")
	}
}

func TestNewRegistryCoversAllNames(t *testing.T) {
	registry := NewRegistry(Options{})

	dets, err := registry.Build(AllNames())
	if err != nil {
		t.Fatalf("build all detectors: %v", err)
	}
	if len(dets) != len(AllNames()) {
		t.Fatalf("expected %d detectors, got %d", len(AllNames()), len(dets))
	}
}
