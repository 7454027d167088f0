// Package cli provides the command-line interface for hubcheck.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/metricslab/hubcheck/internal/cli/commands"
	"github.com/metricslab/hubcheck/internal/cli/config"
	"github.com/metricslab/hubcheck/internal/cli/output"
	"github.com/metricslab/hubcheck/pkg/check"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hubcheck",
		Short: "hubcheck - Forecast submission validator",
		Long: `hubcheck validates forecast submission files against a fixed schema and a
set of consistency rules: naming convention, column set, enumerated value
domains, date arithmetic, duplicate targets and quantile completeness.

It is the validation core of an automated contribution-review workflow:
a changeset of files goes in, per-file error lists and review labels come
out.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			checkCfg, err := cfg.CheckerConfig()
			if err != nil {
				return err
			}

			logger := slog.New(slog.DiscardHandler)
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
				if used := config.GetConfigFileUsed(); used != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", used)
				}
			}

			commands.SetRuntime(&commands.Runtime{
				Cfg:      cfg,
				Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
				Checker:  check.New(checkCfg),
				Logger:   logger,
			})
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Forecast submission validator
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./hubcheck.yaml)")
	rootCmd.PersistentFlags().String("submissions-dir", "", "Path to the submissions directory")
	rootCmd.PersistentFlags().String("timezone", "", "Timezone for the freshness check")
	rootCmd.PersistentFlags().Int("freshness-days", 0, "Maximum age of a non-retrospective submission in days")
	rootCmd.PersistentFlags().Int("workers", 0, "Concurrent file validations in changeset mode")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewChangesetCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
