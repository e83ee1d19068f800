package domain

import (
	"fmt"
	"strings"
)

// ValidationError aborts a report run because its input does not meet a
// requirement: a missing column, an unsupported file, or a filter that left
// no rows.
type ValidationError struct {
	Report  string
	Input   string
	Reason  string
	Missing []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Report)
	if e.Input != "" {
		b.WriteString(" (")
		b.WriteString(e.Input)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Missing, ", "))
	}
	return b.String()
}

func NewMissingColumnsError(report, input string, missing []string) *ValidationError {
	return &ValidationError{
		Report:  report,
		Input:   input,
		Reason:  "missing required columns",
		Missing: missing,
	}
}
