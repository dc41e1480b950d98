package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoaderLoadWithFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "phishcheck.config.yml")
	configBody := []byte("listenAddr: \":9090\"\n" +
		"cacheTTL: 30m\n" +
		"brands:\n  - filebrand\n" +
		"whitelist:\n  - trusted.example\n" +
		"timeouts:\n  content: 2s\n" +
		"domainAge: false\n")
	if err := os.WriteFile(configPath, configBody, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(envListenAddr, ":7070")
	t.Setenv(envBrands, "envbrand")

	loader := Loader{ConfigPath: configPath}
	cfg, err := loader.Load(Overrides{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}

	if cfg.ListenAddr != ":7070" {
		t.Fatalf("env should beat file, got %s", cfg.ListenAddr)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Fatalf("expected 30m cache ttl, got %s", cfg.CacheTTL)
	}
	if !contains(cfg.Brands, "filebrand") || !contains(cfg.Brands, "envbrand") {
		t.Fatalf("expected additive brands, got %v", cfg.Brands)
	}
	if !contains(cfg.Brands, "tokopedia") {
		t.Fatal("built-in brands must survive merging")
	}
	if !contains(cfg.WhitelistDomains, "trusted.example") {
		t.Fatalf("expected whitelist entry, got %v", cfg.WhitelistDomains)
	}
	if cfg.Timeouts["content"] != 2*time.Second {
		t.Fatalf("expected content timeout 2s, got %s", cfg.Timeouts["content"])
	}
	if cfg.DomainAgeEnabled {
		t.Fatal("file should disable the domain age check")
	}
}

func TestLoaderExplicitOverridesWinLast(t *testing.T) {
	t.Setenv(envListenAddr, ":7070")

	ttl := 5 * time.Minute
	loader := Loader{ConfigPath: filepath.Join(t.TempDir(), "absent.yml")}
	cfg, err := loader.Load(Overrides{ListenAddr: ":1111", CacheTTL: &ttl})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.ListenAddr != ":1111" {
		t.Fatalf("explicit override should beat env, got %s", cfg.ListenAddr)
	}
	if cfg.CacheTTL != ttl {
		t.Fatalf("expected 5m ttl, got %s", cfg.CacheTTL)
	}
}

func TestLoaderMissingFileUsesDefaults(t *testing.T) {
	loader := Loader{ConfigPath: filepath.Join(t.TempDir(), "absent.yml")}

	cfg, err := loader.Load(Overrides{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.ListenAddr != ":8080" || cfg.CacheTTL != time.Hour {
		t.Fatalf("unexpected defaults: %s / %s", cfg.ListenAddr, cfg.CacheTTL)
	}
	if !cfg.DomainAgeEnabled {
		t.Fatal("domain age should default to enabled")
	}
	if len(cfg.Brands) == 0 || len(cfg.HostedPlatforms) == 0 {
		t.Fatal("built-in tables must be populated")
	}
}

func TestLoaderMergesPlatforms(t *testing.T) {
	t.Setenv(envPlatforms, "surge.sh")

	loader := Loader{ConfigPath: filepath.Join(t.TempDir(), "absent.yml")}
	cfg, err := loader.Load(Overrides{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if !contains(cfg.HostedPlatforms, "surge.sh") {
		t.Fatalf("expected env platform addition, got %v", cfg.HostedPlatforms)
	}
	if !contains(cfg.HostedPlatforms, "vercel.app") {
		t.Fatal("built-in platforms must survive merging")
	}
}

func TestLoaderRejectsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(configPath, []byte("cacheTTL: [nope"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loader := Loader{ConfigPath: configPath}
	if _, err := loader.Load(Overrides{}); err == nil {
		t.Fatal("expected an error for invalid yaml")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	cfg.CacheTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for zero cache ttl")
	}

	cfg = DefaultRuntimeConfig()
	cfg.Brands = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for empty brand list")
	}
}

func TestParseList(t *testing.T) {
	got := ParseList(" Alpha, beta\ngamma ,\n")
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %v", got)
	}
	if got[0] != "alpha" || got[1] != "beta" || got[2] != "gamma" {
		t.Fatalf("expected lowercased trimmed entries, got %v", got)
	}

	if ParseList("  ") != nil {
		t.Fatal("blank input should yield nil")
	}
}

func TestAppendUniqueSkipsDuplicates(t *testing.T) {
	got := appendUnique([]string{"a", "b"}, []string{"b", "c", "c"})
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("unexpected merge result: %v", got)
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
