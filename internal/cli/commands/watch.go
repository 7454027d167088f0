package commands

import (
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/metricslab/hubcheck/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-validate submissions on change",
		Long: `Watch the submissions directory and validate every csv file as it is
created or written. Useful while preparing a submission locally.

Stops on interrupt.`,
		Example: `  # Watch the configured submissions directory
  hubcheck watch

  # Watch a specific directory
  hubcheck watch ./forecasts/submissions/deaths`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := getRuntime().Cfg.SubmissionsDir
			if len(args) > 0 {
				dir = args[0]
			}
			return runWatch(cmd, dir)
		},
	}
}

func runWatch(cmd *cobra.Command, dir string) error {
	rt := getRuntime()
	r := rt.Renderer

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the whole tree; fsnotify does not recurse by itself.
	addTree := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
	}
	if err := addTree(dir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.Muted("Watching " + dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			rt.Logger.Warn("watch error", "err", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(ev.Name); err != nil {
						rt.Logger.Warn("watch error", "err", err)
					}
					continue
				}
			}
			if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
				continue
			}
			if !strings.HasSuffix(ev.Name, ".csv") {
				continue
			}
			validateChangedFile(rt, r, ev.Name)
		}
	}
}

func validateChangedFile(rt *Runtime, r *output.Renderer, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		rt.Logger.Warn("read failed", "path", path, "err", err)
		return
	}
	diags, err := rt.Checker.Forecast(path, content)
	if err != nil {
		r.Println("✗ " + path + ": " + err.Error())
		return
	}
	if len(diags) == 0 {
		r.Println("✓ " + path)
		return
	}
	r.Println("✗ " + path)
	for _, d := range diags {
		r.Println("- " + d.Message)
	}
}
