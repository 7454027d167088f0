package changeset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/metricslab/hubcheck/pkg/check"
	"golang.org/x/sync/errgroup"
)

// ForeignFileError is assigned to every changed file that is not a
// forecast submission, without content inspection.
const ForeignFileError = "File is not a valid submission."

// Report is the outcome of validating one changeset.
type Report struct {
	ID      string              `json:"id"`
	Errors  map[string][]string `json:"errors"`
	Labels  Labels              `json:"labels"`
	Comment string              `json:"comment,omitempty"`
}

// Valid reports whether no file accumulated errors.
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

// LabelNames returns the status-derived label names plus automerge when
// the changeset validated cleanly.
func (r *Report) LabelNames() []string {
	names := r.Labels.Names()
	if r.Valid() {
		names = append(names, "automerge")
	}
	return names
}

// Filenames returns the keys of Errors in sorted order, for deterministic
// rendering.
func (r *Report) Filenames() []string {
	names := make([]string, 0, len(r.Errors))
	for name := range r.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validator validates changesets file by file. Files are independent, so
// they are checked concurrently up to Workers at a time.
type Validator struct {
	checker *check.Checker
	log     *slog.Logger
	workers int
}

// NewValidator returns a Validator. A nil logger discards logs; workers
// below one means one.
func NewValidator(checker *check.Checker, log *slog.Logger, workers int) *Validator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if workers < 1 {
		workers = 1
	}
	return &Validator{checker: checker, log: log, workers: workers}
}

// Validate checks every file in the changeset. Foreign files get the fixed
// foreign-file error; removed forecasts are skipped (there is nothing to
// parse). A file whose table cannot be parsed at all aborts the batch.
func (v *Validator) Validate(ctx context.Context, cs *Changeset) (*Report, error) {
	forecasts, others := cs.Split()

	report := &Report{
		ID:     uuid.NewString(),
		Errors: make(map[string][]string),
		Labels: cs.DeriveLabels(),
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)

	for _, f := range forecasts {
		if f.Status == StatusRemoved {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := f.Bytes()
			if err != nil {
				return err
			}
			v.log.Debug("checking submission", "path", f.Path)
			diags, err := v.checker.Forecast(f.Path, content)
			if err != nil {
				return err
			}
			if len(diags) > 0 {
				mu.Lock()
				report.Errors[filepath.Base(f.Path)] = check.Messages(diags)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validating changeset: %w", err)
	}

	for _, f := range others {
		report.Errors[f.Path] = []string{ForeignFileError}
	}

	report.Comment = buildComment(report)
	return report, nil
}

// buildComment composes the review comment the annotation collaborator
// would post.
func buildComment(r *Report) string {
	var b strings.Builder
	if r.Labels.DeletedForecasts {
		b.WriteString("Your submission seems to have deleted some forecasts. Could you provide a reason for the update/deletion? Thank you!\n\n")
	}
	if r.Labels.ChangedForecasts {
		b.WriteString("Your submission seems to have updated/renamed some forecasts. Could you provide a reason for the update/deletion? Thank you!\n\n")
	}
	if !r.Valid() {
		b.WriteString("Your submission has some validation errors. Please check the build logs to get more details.\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
