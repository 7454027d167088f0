package commands

import (
	"fmt"
	"strings"

	"github.com/metricslab/hubcheck/internal/cli/output"
	"github.com/metricslab/hubcheck/pkg/changeset"
	"github.com/spf13/cobra"
)

// ChangesetOptions holds options for the changeset command.
type ChangesetOptions struct {
	Format string // Output format override
}

// NewChangesetCommand creates the changeset command.
func NewChangesetCommand() *cobra.Command {
	opts := &ChangesetOptions{}
	cmd := &cobra.Command{
		Use:   "changeset <manifest>",
		Short: "Validate a changeset of submitted files",
		Long: `Validate a changeset manifest describing the files changed in a review
request.

The manifest is a JSON array of {path, status, content|content_path}
records, as supplied by the review platform. Files whose path matches the
submission convention are validated; all other files are reported with a
fixed foreign-file error. The report also carries the labels and the review
comment derived from the file statuses, ready for the annotation step.

The command exits non-zero when any file has validation errors.`,
		Example: `  # Validate a changeset manifest
  hubcheck changeset changes.json

  # Emit the full report as JSON
  hubcheck changeset changes.json --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangeset(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	return cmd
}

func runChangeset(cmd *cobra.Command, manifest string, opts *ChangesetOptions) error {
	rt := getRuntime()
	r := rt.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	cs, err := changeset.Load(manifest)
	if err != nil {
		return err
	}

	v := changeset.NewValidator(rt.Checker, rt.Logger, rt.Cfg.Workers)
	report, err := v.Validate(cmd.Context(), cs)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(report); err != nil {
			return err
		}
		return changesetExitErr(report)
	}

	r.Header(1, "Changeset report "+report.ID)
	r.Println("")
	r.Println("Labels: " + strings.Join(report.LabelNames(), ", "))
	if report.Comment != "" {
		r.Println("")
		r.Println(report.Comment)
	}
	r.Println("")

	for _, name := range report.Filenames() {
		errs := report.Errors[name]
		label := "ERROR"
		if len(errs) > 1 {
			label = "ERRORS"
		}
		r.Println(r.Styles().FilePath.Render(fmt.Sprintf("%s IN %s", label, name)))
		for _, e := range errs {
			r.Println("- " + e)
		}
		r.Println("")
	}

	if !report.Valid() {
		n := len(report.Errors)
		r.Error(fmt.Sprintf("✗ Errors found in %d %s.", n, pluralFiles(n)))
	} else {
		r.Success("✓ No errors.")
	}
	return changesetExitErr(report)
}

func changesetExitErr(report *changeset.Report) error {
	if report.Valid() {
		return nil
	}
	n := len(report.Errors)
	return fmt.Errorf("errors found in %d %s", n, pluralFiles(n))
}
