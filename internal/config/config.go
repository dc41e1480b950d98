package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "phishcheck.config.yml"

	envListenAddr   = "PHISH_LISTEN_ADDR"
	envCacheTTL     = "PHISH_CACHE_TTL"
	envBrands       = "PHISH_BRANDS"
	envWhitelist    = "PHISH_WHITELIST"
	envPlatforms    = "PHISH_PLATFORMS"
	envAbuseIPDBKey = "PHISH_ABUSEIPDB_KEY"
	envDomainAge    = "PHISH_DOMAIN_AGE"
	envEventsLog    = "PHISH_EVENTS_LOG"
)

// Loader merges configuration coming from files, environment variables, and CLI flags.
type Loader struct {
	ConfigPath string
}

// RuntimeConfig contains the fully merged settings. The brand, whitelist, and
// platform tables are resolved once here and passed explicitly to the matcher,
// checker, and parser; nothing reads them as ambient globals.
type RuntimeConfig struct {
	ListenAddr        string
	CacheTTL          time.Duration
	Brands            []string
	WhitelistDomains  []string
	WhitelistSuffixes []string
	HostedPlatforms   []string
	Timeouts          map[string]time.Duration
	DefaultTimeout    time.Duration
	DomainAgeEnabled  bool
	AbuseIPDBKey      string
	EventsLog         string
}

// Overrides captures values coming from a config file, env vars, or CLI flags.
// Brand and whitelist entries are additive; the built-in tables stay.
type Overrides struct {
	ListenAddr       string
	CacheTTL         *time.Duration
	ExtraBrands      []string
	ExtraWhitelist   []string
	ExtraPlatforms   []string
	Timeouts         map[string]time.Duration
	DomainAgeEnabled *bool
	AbuseIPDBKey     string
	EventsLog        string
}

// DefaultRuntimeConfig returns the baseline configuration with the built-in tables.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ListenAddr:        ":8080",
		CacheTTL:          time.Hour,
		Brands:            append([]string(nil), defaultBrands...),
		WhitelistDomains:  append([]string(nil), defaultWhitelistDomains...),
		WhitelistSuffixes: append([]string(nil), defaultWhitelistSuffixes...),
		HostedPlatforms:   append([]string(nil), defaultHostedPlatforms...),
		Timeouts:          defaultTimeouts(),
		DefaultTimeout:    10 * time.Second,
		DomainAgeEnabled:  true,
	}
}

// Load resolves the final runtime configuration: defaults, then file, then
// environment, then explicit overrides.
func (l Loader) Load(override Overrides) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	path := l.ConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	if fileExists(path) {
		fileOv, err := loadFromFile(path)
		if err != nil {
			return cfg, err
		}
		cfg.apply(fileOv)
	}

	cfg.apply(overridesFromEnv())
	cfg.apply(override)

	return cfg, nil
}

// Validate ensures the config can actually drive an evaluation.
func (c RuntimeConfig) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen address cannot be empty")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache ttl must be positive (got %s)", c.CacheTTL)
	}
	if c.DefaultTimeout <= 0 {
		return fmt.Errorf("default detector timeout must be positive (got %s)", c.DefaultTimeout)
	}
	if len(c.Brands) == 0 {
		return errors.New("brand list cannot be empty")
	}
	return nil
}

func (c *RuntimeConfig) apply(src Overrides) {
	if src.ListenAddr != "" {
		c.ListenAddr = src.ListenAddr
	}
	if src.CacheTTL != nil {
		c.CacheTTL = *src.CacheTTL
	}
	if len(src.ExtraBrands) > 0 {
		c.Brands = appendUnique(c.Brands, src.ExtraBrands)
	}
	if len(src.ExtraWhitelist) > 0 {
		c.WhitelistDomains = appendUnique(c.WhitelistDomains, src.ExtraWhitelist)
	}
	if len(src.ExtraPlatforms) > 0 {
		c.HostedPlatforms = appendUnique(c.HostedPlatforms, src.ExtraPlatforms)
	}
	for name, timeout := range src.Timeouts {
		if timeout > 0 {
			c.Timeouts[name] = timeout
		}
	}
	if src.DomainAgeEnabled != nil {
		c.DomainAgeEnabled = *src.DomainAgeEnabled
	}
	if src.AbuseIPDBKey != "" {
		c.AbuseIPDBKey = src.AbuseIPDBKey
	}
	if src.EventsLog != "" {
		c.EventsLog = src.EventsLog
	}
}

func loadFromFile(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, err
	}

	type rawConfig struct {
		ListenAddr   string              `yaml:"listenAddr"`
		CacheTTL     *duration           `yaml:"cacheTTL"`
		Brands       []string            `yaml:"brands"`
		Whitelist    []string            `yaml:"whitelist"`
		Platforms    []string            `yaml:"platforms"`
		Timeouts     map[string]duration `yaml:"timeouts"`
		DomainAge    *bool               `yaml:"domainAge"`
		AbuseIPDBKey string              `yaml:"abuseIPDBKey"`
		EventsLog    string              `yaml:"eventsLog"`
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Overrides{}, err
	}

	over := Overrides{
		ListenAddr:       raw.ListenAddr,
		ExtraBrands:      cleanList(raw.Brands),
		ExtraWhitelist:   cleanList(raw.Whitelist),
		ExtraPlatforms:   cleanList(raw.Platforms),
		DomainAgeEnabled: raw.DomainAge,
		AbuseIPDBKey:     raw.AbuseIPDBKey,
		EventsLog:        raw.EventsLog,
	}

	if raw.CacheTTL != nil {
		ttl := time.Duration(*raw.CacheTTL)
		over.CacheTTL = &ttl
	}
	if len(raw.Timeouts) > 0 {
		over.Timeouts = make(map[string]time.Duration, len(raw.Timeouts))
		for name, d := range raw.Timeouts {
			over.Timeouts[name] = time.Duration(d)
		}
	}

	return over, nil
}

func overridesFromEnv() Overrides {
	ov := Overrides{}

	if value := os.Getenv(envListenAddr); value != "" {
		ov.ListenAddr = value
	}

	if value := os.Getenv(envCacheTTL); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			ov.CacheTTL = &parsed
		}
	}

	if value := os.Getenv(envBrands); value != "" {
		ov.ExtraBrands = ParseList(value)
	}

	if value := os.Getenv(envWhitelist); value != "" {
		ov.ExtraWhitelist = ParseList(value)
	}

	if value := os.Getenv(envPlatforms); value != "" {
		ov.ExtraPlatforms = ParseList(value)
	}

	if value := os.Getenv(envAbuseIPDBKey); value != "" {
		ov.AbuseIPDBKey = value
	}

	if value := os.Getenv(envDomainAge); value != "" {
		parsed := strings.EqualFold(value, "true") || value == "1"
		ov.DomainAgeEnabled = &parsed
	}

	if value := os.Getenv(envEventsLog); value != "" {
		ov.EventsLog = value
	}

	return ov
}

// ParseList turns comma or newline separated input into individual entries.
func ParseList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	parts := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	return cleanList(parts)
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		candidate := strings.ToLower(strings.TrimSpace(v))
		if candidate != "" {
			out = append(out, candidate)
		}
	}
	return out
}

func appendUnique(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, v := range base {
		seen[v] = struct{}{}
	}
	for _, v := range extra {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			base = append(base, v)
		}
	}
	return base
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// duration enables YAML fields written as Go duration strings ("5s", "1h").
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("unsupported YAML type for duration")
	}
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = duration(parsed)
	return nil
}
