package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/phishcheck/internal/config"
)

const version = "1.0.0"

// Execute builds the root command tree and runs the CLI.
func Execute() error {
	loader := &config.Loader{ConfigPath: config.DefaultConfigPath}
	rootOpts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "phishcheck",
		Short:         "Phishing-risk evaluation engine and API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	rootCmd.SetVersionTemplate("phishcheck version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&rootOpts.ConfigPath, "config", config.DefaultConfigPath, "Path to phishcheck.config.yml (optional)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if rootOpts.ConfigPath != "" {
			loader.ConfigPath = rootOpts.ConfigPath
		}
	}

	rootCmd.AddCommand(
		newCheckCmd(loader),
		newServeCmd(loader),
	)

	return rootCmd.Execute()
}

type rootOptions struct {
	ConfigPath string
}
