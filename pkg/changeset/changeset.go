// Package changeset models the batch of changed files handed over by the
// review platform: classification into forecast submissions and foreign
// files, the labels derived from file statuses, and batch validation.
package changeset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/metricslab/hubcheck/pkg/check"
)

// Status of a changed file within the changeset.
type Status string

// File statuses as reported by the change source.
const (
	StatusAdded    Status = "added"
	StatusRemoved  Status = "removed"
	StatusModified Status = "modified"
	StatusRenamed  Status = "renamed"
)

// File is one changed file. Content may be carried inline or referenced by
// a local path; removed files carry neither.
type File struct {
	Path        string `json:"path"`
	Status      Status `json:"status"`
	Content     []byte `json:"content,omitempty"`
	ContentPath string `json:"content_path,omitempty"`
}

// Bytes returns the file content, reading from ContentPath when the
// content is not inline.
func (f *File) Bytes() ([]byte, error) {
	if f.Content != nil {
		return f.Content, nil
	}
	if f.ContentPath == "" {
		return nil, fmt.Errorf("no content for %s", f.Path)
	}
	data, err := os.ReadFile(f.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("reading content of %s: %w", f.Path, err)
	}
	return data, nil
}

// Changeset is the full set of changed files under review.
type Changeset struct {
	Files []File `json:"files"`
}

// Load reads a changeset manifest from a JSON file. The manifest may be a
// bare array of files or an object with a "files" key.
func Load(path string) (*Changeset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var cs Changeset
	if err := json.Unmarshal(data, &cs.Files); err == nil {
		return &cs, nil
	}
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &cs, nil
}

// Split classifies the changeset into forecast submissions and foreign
// files, by path only.
func (cs *Changeset) Split() (forecasts, others []File) {
	for _, f := range cs.Files {
		if check.IsSubmissionPath(f.Path) {
			forecasts = append(forecasts, f)
		} else {
			others = append(others, f)
		}
	}
	return forecasts, others
}

// Labels are the review annotations derived from file statuses. They are
// pure derivations; applying them to a review request is the platform
// glue's job.
type Labels struct {
	DataSubmission   bool `json:"data_submission"`
	DeletedForecasts bool `json:"deleted_forecasts"`
	ChangedForecasts bool `json:"changed_forecasts"`
	OtherFiles       bool `json:"other_files"`
}

// DeriveLabels computes the status-driven labels for the changeset.
// OtherFiles only fires when the changeset also contains forecasts, so a
// documentation-only change is not labeled.
func (cs *Changeset) DeriveLabels() Labels {
	forecasts, others := cs.Split()

	l := Labels{
		DataSubmission: len(forecasts) > 0,
		OtherFiles:     len(others) > 0 && len(forecasts) > 0,
	}
	for _, f := range forecasts {
		switch f.Status {
		case StatusRemoved:
			l.DeletedForecasts = true
		case StatusAdded:
		default:
			l.ChangedForecasts = true
		}
	}
	return l
}

// Names returns the label names to apply, in a fixed order.
func (l Labels) Names() []string {
	var names []string
	if l.DataSubmission {
		names = append(names, "data-submission")
	}
	if l.DeletedForecasts {
		names = append(names, "forecast-deleted")
	}
	if l.ChangedForecasts {
		names = append(names, "forecast-updated")
	}
	if l.OtherFiles {
		names = append(names, "other-files-updated")
	}
	return names
}
