// Package commands implements the hubcheck subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/metricslab/hubcheck/internal/cli/config"
	"github.com/metricslab/hubcheck/internal/cli/output"
	"github.com/metricslab/hubcheck/pkg/check"
)

// Runtime carries the shared command dependencies, assembled by the root
// command after config loading.
type Runtime struct {
	Cfg      *config.Config
	Renderer *output.Renderer
	Checker  *check.Checker
	Logger   *slog.Logger
}

var runtime *Runtime

// SetRuntime installs the shared runtime. Called by the root command's
// PersistentPreRunE.
func SetRuntime(rt *Runtime) {
	runtime = rt
}

// getRuntime returns the installed runtime, or a default one so commands
// stay usable in tests without the root command.
func getRuntime() *Runtime {
	if runtime != nil {
		return runtime
	}
	return &Runtime{
		Cfg: &config.Config{
			SubmissionsDir: config.DefaultSubmissionsDir,
			Timezone:       config.DefaultTimezone,
			FreshnessDays:  config.DefaultFreshnessDays,
			OutputFormat:   config.DefaultOutput,
			Workers:        config.DefaultWorkers,
		},
		Renderer: output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto),
		Checker:  check.New(nil),
		Logger:   slog.New(slog.DiscardHandler),
	}
}
