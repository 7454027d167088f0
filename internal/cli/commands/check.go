package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/metricslab/hubcheck/internal/cli/output"
	"github.com/metricslab/hubcheck/pkg/check"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format string // Output format override
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Validate forecast submission files",
		Long: `Validate forecast submission files against the schema and the
consistency rules.

Paths may be single csv files or directories, which are walked recursively.
Without arguments, the configured submissions directory is checked. The
command exits non-zero when any file has validation errors.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Validate the submissions directory
  hubcheck check

  # Validate one file
  hubcheck check forecasts/submissions/deaths/a/b/c/2023-11-09-a-b-c.csv

  # Machine-readable output
  hubcheck check --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	return cmd
}

// fileResult is the outcome for one file, in command order.
type fileResult struct {
	Path   string   `json:"path"`
	Errors []string `json:"errors,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	rt := getRuntime()
	r := rt.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	if len(args) == 0 {
		args = []string{rt.Cfg.SubmissionsDir}
	}
	files, err := collectSubmissionFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.Muted("No submission files found.")
		return nil
	}

	var results []fileResult
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		rt.Logger.Debug("checking submission", "path", path)
		diags, err := rt.Checker.Forecast(path, content)
		if err != nil {
			// Unparseable table: fatal for the whole run.
			return err
		}
		results = append(results, fileResult{Path: path, Errors: check.Messages(diags)})
	}

	return renderCheckResults(r, results)
}

// collectSubmissionFiles expands files and directories into the csv files
// to validate, in sorted order.
func collectSubmissionFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ".csv") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func renderCheckResults(r *output.Renderer, results []fileResult) error {
	withErrors := 0
	for _, res := range results {
		if len(res.Errors) > 0 {
			withErrors++
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(struct {
			Files []fileResult `json:"files"`
			Valid bool         `json:"valid"`
		}{Files: results, Valid: withErrors == 0}); err != nil {
			return err
		}
		if withErrors > 0 {
			return fmt.Errorf("errors found in %d %s", withErrors, pluralFiles(withErrors))
		}
		return nil
	}

	for _, res := range results {
		if len(res.Errors) == 0 {
			continue
		}
		label := "ERROR"
		if len(res.Errors) > 1 {
			label = "ERRORS"
		}
		r.Println(r.Styles().FilePath.Render(fmt.Sprintf("%s IN %s", label, res.Path)))
		for _, e := range res.Errors {
			r.Println("- " + e)
		}
		r.Println("")
	}

	if withErrors > 0 {
		r.Error(fmt.Sprintf("✗ Errors found in %d %s.", withErrors, pluralFiles(withErrors)))
		return fmt.Errorf("errors found in %d %s", withErrors, pluralFiles(withErrors))
	}
	r.Success(fmt.Sprintf("✓ No errors in %d %s.", len(results), pluralFiles(len(results))))
	return nil
}

func pluralFiles(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}
