package detector

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/example/phishcheck/internal/target"
)

// FlagSkipped fills the slot of a detector the runner decided not to invoke.
const FlagSkipped = "SKIPPED"

// Runner fans out one target to every registered detector concurrently. Each
// invocation gets its own deadline derived from the caller's context, so a
// slow detector never delays the others beyond its own budget and a caller
// cancellation stops all in-flight probes at once.
type Runner struct {
	detectors      []Detector
	timeouts       map[string]time.Duration
	defaultTimeout time.Duration
}

// NewRunner builds a runner with per-detector timeouts; detectors without an
// entry use defaultTimeout.
func NewRunner(detectors []Detector, timeouts map[string]time.Duration, defaultTimeout time.Duration) *Runner {
	if defaultTimeout <= 0 {
		defaultTimeout = 10 * time.Second
	}
	return &Runner{detectors: detectors, timeouts: timeouts, defaultTimeout: defaultTimeout}
}

// Run executes all detectors against the target and returns a fully populated
// SignalSet. Domain-age lookups are skipped for hosted-platform targets, since
// a shared platform's registration date says nothing about the tenant.
func (r *Runner) Run(ctx context.Context, tgt target.Target) SignalSet {
	signals := make(SignalSet, len(r.detectors))
	results := make([]Result, len(r.detectors))

	var wg sync.WaitGroup
	for i, det := range r.detectors {
		if det.Name() == NameDomainAge && tgt.IsHostedPlatform {
			results[i] = Result{Success: true, Score: 0, Flags: []string{FlagSkipped}}
			continue
		}

		wg.Add(1)
		go func(i int, det Detector) {
			defer wg.Done()
			results[i] = r.runOne(ctx, det, tgt)
		}(i, det)
	}
	wg.Wait()

	for i, det := range r.detectors {
		signals[det.Name()] = results[i]
	}
	return signals
}

func (r *Runner) runOne(ctx context.Context, det Detector, tgt target.Target) Result {
	timeout := r.defaultTimeout
	if t, ok := r.timeouts[det.Name()]; ok && t > 0 {
		timeout = t
	}

	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- outcome{err: fmt.Errorf("detector panic: %v", rec)}
			}
		}()
		res, err := det.Detect(dctx, tgt)
		done <- outcome{res: res, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return Result{
				Success: false,
				Score:   0,
				Flags:   []string{failureFlag(det.Name(), "FAILED")},
				Details: map[string]interface{}{"error": out.err.Error()},
			}
		}
		return out.res
	case <-dctx.Done():
		return Result{
			Success: false,
			Score:   0,
			Flags:   []string{failureFlag(det.Name(), "TIMEOUT")},
			Details: map[string]interface{}{"error": dctx.Err().Error()},
		}
	}
}

// failureFlag turns a camelCase detector name into an upper-snake diagnostic
// flag, e.g. domainAge + TIMEOUT -> DOMAIN_AGE_TIMEOUT.
func failureFlag(name, suffix string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String()) + "_" + suffix
}
