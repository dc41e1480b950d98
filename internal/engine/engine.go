package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/example/phishcheck/internal/cache"
	"github.com/example/phishcheck/internal/detector"
	"github.com/example/phishcheck/internal/target"
	"github.com/example/phishcheck/internal/verdict"
	"github.com/example/phishcheck/internal/whitelist"
)

// ErrInvalidInput marks client-side problems (malformed URL, private address)
// so transport layers can answer 400 instead of 500.
var ErrInvalidInput = errors.New("invalid input")

// Engine runs one full evaluation: whitelist bypass, cache read, concurrent
// detector fan-out, score fusion, cache write. Identical concurrent requests
// share a single in-flight evaluation.
type Engine struct {
	parser    *target.Parser
	whitelist *whitelist.Checker
	cache     *cache.Cache
	runner    *detector.Runner
	group     singleflight.Group
}

// Result pairs a verdict with whether it came from the cache.
type Result struct {
	Verdict verdict.Verdict
	Cached  bool
}

// New assembles an engine from its collaborators.
func New(parser *target.Parser, wl *whitelist.Checker, c *cache.Cache, runner *detector.Runner) *Engine {
	return &Engine{parser: parser, whitelist: wl, cache: c, runner: runner}
}

// Check evaluates one raw URL and returns its verdict. Detector failures never
// surface as errors; only unusable input does.
func (e *Engine) Check(ctx context.Context, rawURL string) (Result, error) {
	tgt, err := e.parser.Parse(rawURL)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if e.whitelist.IsWhitelisted(tgt.Hostname) {
		return Result{Verdict: verdict.Whitelisted(tgt)}, nil
	}

	key := "check:" + tgt.URL
	if v, ok := e.cache.Get(key); ok {
		return Result{Verdict: v, Cached: true}, nil
	}

	v, err, _ := e.group.Do(key, func() (interface{}, error) {
		// The evaluation is shared by every waiter on this key, so it must not
		// die with the caller that happened to start it.
		signals := e.runner.Run(context.WithoutCancel(ctx), tgt)
		match := detector.MatchFromSignals(signals)
		fused := verdict.Fuse(tgt, signals, match)
		e.cache.Set(key, fused)
		return fused, nil
	})
	if err != nil {
		return Result{}, err
	}

	return Result{Verdict: v.(verdict.Verdict)}, nil
}
