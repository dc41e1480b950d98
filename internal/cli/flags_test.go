package cli

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestToOverridesOnlyIncludesChangedFlags(t *testing.T) {
	flags := &runtimeFlagSet{}
	cmd := &cobra.Command{Use: "test"}
	bindRuntimeFlags(cmd, flags)

	if err := cmd.Flags().Set("listen", ":9999"); err != nil {
		t.Fatalf("set listen: %v", err)
	}
	if err := cmd.Flags().Set("brands", "acme, globex"); err != nil {
		t.Fatalf("set brands: %v", err)
	}

	ov := flags.toOverrides(cmd)

	if ov.ListenAddr != ":9999" {
		t.Fatalf("expected listen override, got %q", ov.ListenAddr)
	}
	if len(ov.ExtraBrands) != 2 || ov.ExtraBrands[0] != "acme" {
		t.Fatalf("unexpected brand overrides: %v", ov.ExtraBrands)
	}
	if ov.CacheTTL != nil {
		t.Fatal("untouched cache-ttl flag must not produce an override")
	}
	if ov.EventsLog != "" {
		t.Fatal("untouched events-log flag must not produce an override")
	}
}

func TestToOverridesCacheTTL(t *testing.T) {
	flags := &runtimeFlagSet{}
	cmd := &cobra.Command{Use: "test"}
	bindRuntimeFlags(cmd, flags)

	if err := cmd.Flags().Set("cache-ttl", "45m"); err != nil {
		t.Fatalf("set cache-ttl: %v", err)
	}

	ov := flags.toOverrides(cmd)
	if ov.CacheTTL == nil || *ov.CacheTTL != 45*time.Minute {
		t.Fatalf("expected 45m ttl override, got %v", ov.CacheTTL)
	}
}
