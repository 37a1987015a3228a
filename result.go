package pointcsv

import (
	"errors"
	"fmt"
	"sort"

	"github.com/biotinker/pointcsv/record"
)

// Diagnostic is one recoverable failure. Line is set for import records,
// Statement (and Waypoint for paths) for export.
type Diagnostic struct {
	Line      int
	Statement int
	Waypoint  int
	Err       error
}

func (d Diagnostic) String() string {
	return d.Err.Error()
}

func lineDiagnostic(err error) Diagnostic {
	line, _ := record.LineOf(err)
	return Diagnostic{Line: line, Err: err}
}

func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Line < diags[j].Line
	})
}

func statementDiagnostic(err *StatementError) Diagnostic {
	return Diagnostic{Statement: err.Index, Waypoint: err.Waypoint, Err: err}
}

// ImportResult is the outcome of an import. Skipped counts records rejected
// before a statement was attempted, Failed counts statements the host
// refused. Err is the top-level diagnostic and is set when nothing was created.
type ImportResult struct {
	Routine     string
	Created     int
	Skipped     int
	Failed      int
	Diagnostics []Diagnostic
	Err         error
}

// OK reports whether at least one statement was created.
func (r *ImportResult) OK() bool {
	return r.Err == nil
}

func (r *ImportResult) String() string {
	return fmt.Sprintf("imported %d points into routine %q (%d skipped, %d failed)",
		r.Created, r.Routine, r.Skipped, r.Failed)
}

// ToMap renders the result for DoCommand style callers.
func (r *ImportResult) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"routine":     r.Routine,
		"created":     r.Created,
		"skipped":     r.Skipped,
		"failed":      r.Failed,
		"diagnostics": diagnosticStrings(r.Diagnostics),
	}
	if r.Err != nil {
		m["error"] = r.Err.Error()
	}
	return m
}

// ExportResult is the outcome of an export.
type ExportResult struct {
	Routine     string
	Format      record.Format
	Exported    int
	Failed      int
	Diagnostics []Diagnostic
	Err         error
}

// OK reports whether at least one point was exported.
func (r *ExportResult) OK() bool {
	return r.Err == nil
}

func (r *ExportResult) String() string {
	return fmt.Sprintf("exported %d %s points from routine %q (%d failed)",
		r.Exported, r.Format, r.Routine, r.Failed)
}

// ToMap renders the result for DoCommand style callers.
func (r *ExportResult) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"routine":     r.Routine,
		"format":      r.Format.String(),
		"exported":    r.Exported,
		"failed":      r.Failed,
		"diagnostics": diagnosticStrings(r.Diagnostics),
	}
	if r.Err != nil {
		m["error"] = r.Err.Error()
	}
	return m
}

func diagnosticStrings(diags []Diagnostic) []interface{} {
	out := make([]interface{}, len(diags))
	for i, d := range diags {
		out[i] = d.String()
	}
	return out
}

// IsSelectionError reports whether err means no robot or routine was selected.
func IsSelectionError(err error) bool {
	return errors.Is(err, ErrNoActiveRobot) || errors.Is(err, ErrNoActiveRoutine)
}
