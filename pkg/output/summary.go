package output

import (
	"path/filepath"

	"github.com/arthur-debert/kiln/pkg/materialize"
	"github.com/arthur-debert/kiln/pkg/operations"
)

// Line is one executed operation as shown to the user
type Line struct {
	Action  string
	Path    string
	Message string
}

// Problem is one entry that could not be materialized
type Problem struct {
	Path    string
	Message string
}

// Counts tallies results by action
type Counts struct {
	Created     int
	Overwritten int
	Skipped     int
	Ignored     int
	Failed      int
}

// Summary is the view model rendered after a generation run
type Summary struct {
	OutputDir string
	DryRun    bool
	Verbose   bool
	Lines     []Line
	Problems  []Problem
	Counts    Counts
}

// NewSummary builds the view of a pipeline report. Paths are shown relative
// to the output root when possible.
func NewSummary(outputDir string, dryRun bool, report *materialize.Report) *Summary {
	s := &Summary{OutputDir: outputDir, DryRun: dryRun}
	if report == nil {
		return s
	}

	for _, res := range report.Results {
		switch res.Action {
		case operations.ActionCreating:
			s.Counts.Created++
		case operations.ActionOverwriting:
			s.Counts.Overwritten++
		case operations.ActionSkipping:
			s.Counts.Skipped++
		case operations.ActionIgnoring:
			s.Counts.Ignored++
		case operations.ActionFailed:
			s.Counts.Failed++
		}

		path := res.Operation.Target
		if res.Operation.Type == operations.Ignore {
			path = res.Operation.Source
		} else if rel, err := filepath.Rel(outputDir, path); err == nil {
			path = rel
		}
		s.Lines = append(s.Lines, Line{
			Action:  string(res.Action),
			Path:    path,
			Message: res.Message,
		})
	}

	for _, e := range report.Errors {
		msg := ""
		if e.Err != nil {
			msg = e.Err.Error()
		}
		s.Problems = append(s.Problems, Problem{Path: e.Path, Message: msg})
	}
	return s
}

// Changed reports whether anything was or would be written
func (s *Summary) Changed() bool {
	return s.Counts.Created+s.Counts.Overwritten > 0
}
