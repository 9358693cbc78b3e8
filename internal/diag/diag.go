// Package diag implements the runtime's closed error taxonomy (spec §7):
// construction, expression, model, and runtime errors. Diagnostics
// accumulate rather than panic; callers decide when an accumulation is
// fatal to the current iteration.
package diag

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Severity distinguishes diagnostics that abort the current operation from
// those that merely inform.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Category is the closed taxonomy from spec §7.
type Category int

const (
	// Construction errors: null graph, parameter not found, port index out
	// of range, duplicate port, missing runtime kernel, empty mappable-PE
	// set. Detected eagerly at API call.
	Construction Category = iota
	// ExpressionErr: parse failure, unresolved identifier, division by
	// zero. Surfaced at expression build or first evaluation.
	ExpressionErr
	// Model errors: inconsistent repetition vector, dynamic delay value,
	// self-loop without delay, mismatched interface count.
	Model
	// RuntimeErr: LRT delivery failure, FIFO allocation failure, kernel
	// panic. Aborts the current iteration; the platform shuts down
	// cleanly.
	RuntimeErr
)

func (c Category) String() string {
	switch c {
	case Construction:
		return "construction"
	case ExpressionErr:
		return "expression"
	case Model:
		return "model"
	case RuntimeErr:
		return "runtime"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem, carrying the offending name or
// substring so the host can point the user at it.
type Diagnostic struct {
	Severity Severity
	Category Category
	Summary  string
	Detail   string
	// Subject names the offending entity: a vertex name, a parameter name,
	// an expression substring, a firing id. Optional.
	Subject string
}

func (d *Diagnostic) Error() string {
	if d.Subject != "" {
		return fmt.Sprintf("%s: %s (%s): %s [%s]", d.Severity, d.Category, d.Subject, d.Summary, d.Detail)
	}
	return fmt.Sprintf("%s: %s: %s [%s]", d.Severity, d.Category, d.Summary, d.Detail)
}

func New(sev Severity, cat Category, subject, summary, detail string) *Diagnostic {
	return &Diagnostic{Severity: sev, Category: cat, Subject: subject, Summary: summary, Detail: detail}
}

func Errorf(cat Category, subject, summary string, args ...interface{}) *Diagnostic {
	return New(Error, cat, subject, summary, fmt.Sprintf(summary, args...))
}

// Diagnostics is an ordered accumulation of Diagnostic values.
type Diagnostics []*Diagnostic

func (ds Diagnostics) Append(d *Diagnostic) Diagnostics {
	if d == nil {
		return ds
	}
	return append(ds, d)
}

// HasErrors reports whether any diagnostic in the set is of Error severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Err collapses the set into a single Go error, or nil if empty. A single
// diagnostic is returned unwrapped so callers see a plain error message
// instead of go-multierror's "1 error occurred" framing; two or more are
// aggregated with multierror, matching how the coordinator reports
// multiple concurrent LRT shutdown failures as one error.
func (ds Diagnostics) Err() error {
	var errs []*Diagnostic
	for _, d := range ds {
		if d.Severity == Error {
			errs = append(errs, d)
		}
	}
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		merr := &multierror.Error{}
		for _, e := range errs {
			merr = multierror.Append(merr, e)
		}
		return merr
	}
}
