package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/phishcheck/internal/config"
)

func bindRuntimeFlags(cmd *cobra.Command, flags *runtimeFlagSet) {
	cmd.Flags().StringVar(&flags.listenAddr, "listen", "", "Listen address for the HTTP API (overrides config)")
	cmd.Flags().DurationVar(&flags.cacheTTL, "cache-ttl", 0, "Verdict cache TTL, e.g. 30m")
	cmd.Flags().StringVar(&flags.brands, "brands", "", "Comma-separated extra brands to protect")
	cmd.Flags().StringVar(&flags.eventsLog, "events-log", "", "Path to an NDJSON evaluation audit log")
}

func (f runtimeFlagSet) toOverrides(cmd *cobra.Command) config.Overrides {
	ov := config.Overrides{}
	if cmd.Flags().Changed("listen") {
		ov.ListenAddr = f.listenAddr
	}
	if cmd.Flags().Changed("cache-ttl") {
		ttl := f.cacheTTL
		ov.CacheTTL = &ttl
	}
	if cmd.Flags().Changed("brands") {
		ov.ExtraBrands = config.ParseList(f.brands)
	}
	if cmd.Flags().Changed("events-log") {
		ov.EventsLog = f.eventsLog
	}
	return ov
}
