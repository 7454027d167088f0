package check

import (
	"path"
	"regexp"
	"strings"
)

// Submission paths look like
// .../submissions.../<a>/<b>/<c>/yyyy-mm-dd-<a>-<b>-<c>.csv.
// Go regexps have no backreferences, so the structure is matched first and
// the repeated segments are compared afterwards.
var submissionPathRe = regexp.MustCompile(
	`submissions[^/]*/(?:.+/)?([^/]+)/([^/]+)/([^/]+)/\d{4}-\d{2}-\d{2}-(.+)\.csv$`)

// The classification pattern is deliberately looser: anything under a
// submissions directory whose date-named file ends with the innermost
// directory segment counts as a submission, so near-miss files still get a
// detailed filepath finding instead of the generic foreign-file error.
var classifyPathRe = regexp.MustCompile(
	`submissions/.*/([^/]+)/\d{4}-\d{2}-\d{2}-(.*)\.csv$`)

// IsSubmissionPath classifies a changed file as forecast submission or
// foreign file, without inspecting content.
func IsSubmissionPath(p string) bool {
	m := classifyPathRe.FindStringSubmatch(p)
	return m != nil && strings.HasSuffix(m[2], m[1])
}

// IsRetrospectivePath reports whether the path marks a backfilled
// submission, which is exempt from the freshness check.
func IsRetrospectivePath(p string) bool {
	return strings.Contains(p, "retrospective")
}

// Filepath checks the naming and location convention. The three directory
// segments must reappear in the filename, in order, joined by hyphens after
// the date.
func (c *Checker) Filepath(p string) *Diagnostic {
	m := submissionPathRe.FindStringSubmatch(path.Clean(p))
	if m == nil || m[4] != m[1]+"-"+m[2]+"-"+m[3] {
		return &Diagnostic{
			Check:   "filepath",
			Message: "The file does not follow the naming convention for submissions or is located in the wrong directory.",
		}
	}
	return nil
}
