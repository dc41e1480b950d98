package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/example/phishcheck/internal/brand"
	"github.com/example/phishcheck/internal/cache"
	"github.com/example/phishcheck/internal/config"
	"github.com/example/phishcheck/internal/detector"
	"github.com/example/phishcheck/internal/engine"
	"github.com/example/phishcheck/internal/target"
	"github.com/example/phishcheck/internal/whitelist"
)

// runtimeFlagSet tracks shared check/serve flags before they are converted
// into config overrides.
type runtimeFlagSet struct {
	listenAddr string
	cacheTTL   time.Duration
	brands     string
	eventsLog  string
}

// buildEngine wires the merged configuration into a ready evaluation engine.
func buildEngine(cfg config.RuntimeConfig) (*engine.Engine, *cache.Cache) {
	parser := target.NewParser(cfg.HostedPlatforms)
	matcher := brand.NewMatcher(cfg.Brands, brand.DefaultSubstitutions())
	checker := whitelist.NewChecker(cfg.WhitelistDomains, cfg.WhitelistSuffixes)
	verdictCache := cache.New(cfg.CacheTTL)

	registry := detector.NewRegistry(detector.Options{
		Matcher:          matcher,
		DomainAgeEnabled: cfg.DomainAgeEnabled,
		AbuseIPDBKey:     cfg.AbuseIPDBKey,
	})
	detectors, err := registry.Build(detector.AllNames())
	if err != nil {
		// Registry and AllNames are both built-in; a mismatch is a programming error.
		panic(err)
	}

	runner := detector.NewRunner(detectors, cfg.Timeouts, cfg.DefaultTimeout)
	return engine.New(parser, checker, verdictCache, runner), verdictCache
}

func openEventsLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open events log: %w", err)
	}
	return f, nil
}
