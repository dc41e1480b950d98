package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/phishcheck/internal/config"
	"github.com/example/phishcheck/internal/events"
	"github.com/example/phishcheck/internal/verdict"
)

func newCheckCmd(loader *config.Loader) *cobra.Command {
	flags := &runtimeFlagSet{}
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check <url> [url...]",
		Short: "Evaluate one or more URLs and print their phishing-risk verdicts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := flags.toOverrides(cmd)
			cfg, err := loader.Load(overrides)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			eng, _ := buildEngine(cfg)

			var emitter *events.Emitter
			if cfg.EventsLog != "" {
				f, err := openEventsLog(cfg.EventsLog)
				if err != nil {
					return err
				}
				defer f.Close()
				emitter = events.NewEmitter(f)
			}

			var firstErr error
			for _, raw := range args {
				res, err := eng.Check(cmd.Context(), raw)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", raw, err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}

				if emitter != nil {
					if err := emitter.Emit(events.Evaluation(raw, res.Verdict, res.Cached)); err != nil {
						return err
					}
				}

				if jsonOutput {
					data, err := json.MarshalIndent(res.Verdict, "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
					continue
				}

				printVerdict(cmd, res.Verdict)
			}
			return firstErr
		},
	}

	bindRuntimeFlags(cmd, flags)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print full verdicts as JSON")

	return cmd
}

func printVerdict(cmd *cobra.Command, v verdict.Verdict) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", v.URL)
	fmt.Fprintf(out, "  verdict: %s (score %d/100)\n", bandColor(v.Band)(string(v.Band)), v.RiskScore)
	fmt.Fprintf(out, "  %s\n", v.Summary)
	if len(v.Flags) > 0 {
		fmt.Fprintf(out, "  flags: %v\n", v.Flags)
	}
	fmt.Fprintf(out, "  %s\n", v.Recommendation)
}

func bandColor(band verdict.Band) func(a ...interface{}) string {
	switch band {
	case verdict.BandHighRisk:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case verdict.BandSuspicious:
		return color.New(color.FgYellow).SprintFunc()
	case verdict.BandLowRisk:
		return color.New(color.FgCyan).SprintFunc()
	default:
		return color.New(color.FgGreen).SprintFunc()
	}
}
