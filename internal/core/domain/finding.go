package domain

import "fmt"

// Severity classifies a validation finding.
type Severity string

const (
	// SeverityError marks a finding that blocks record acceptance
	// on the import path.
	SeverityError Severity = "error"

	// SeverityWarning marks a finding that is recorded but never
	// blocks acceptance.
	SeverityWarning Severity = "warning"
)

// Finding is one validation outcome for one record field.
type Finding struct {
	// Row is the 1-based position of the record in its source.
	Row int

	// Severity is error or warning.
	Severity Severity

	// Field is the canonical field name the finding concerns.
	Field string

	// Value is the offending value.
	Value string

	// Message describes the problem.
	Message string
}

// String renders the finding in report form.
func (f Finding) String() string {
	return fmt.Sprintf("row %d [%s] %s: %s", f.Row, f.Severity, f.Field, f.Message)
}

// ValidationReport aggregates the findings for one record batch.
// A batch is valid iff it produced zero errors; warnings never block.
type ValidationReport struct {
	// Rows is the number of records examined.
	Rows int

	// Findings holds every finding in source order.
	Findings []Finding
}

// Add appends findings to the report.
func (r *ValidationReport) Add(findings ...Finding) {
	r.Findings = append(r.Findings, findings...)
}

// Errors returns the error-severity findings.
func (r *ValidationReport) Errors() []Finding {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity findings.
func (r *ValidationReport) Warnings() []Finding {
	return r.filter(SeverityWarning)
}

// ErrorRows returns the set of row numbers with at least one error.
func (r *ValidationReport) ErrorRows() map[int]bool {
	rows := make(map[int]bool)
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			rows[f.Row] = true
		}
	}
	return rows
}

// Valid reports whether the batch produced zero errors.
func (r *ValidationReport) Valid() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

func (r *ValidationReport) filter(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}
