package main

import (
	"flag"
	"fmt"
	"strings"

	wordwrap "github.com/mitchellh/go-wordwrap"

	"github.com/mitchellh/cli"

	"github.com/preesm/spider2-sub000/internal/diag"
)

// Meta holds state shared by every subcommand, mirroring the teacher's
// own Meta embedding (Ui plus a flag-set constructor).
type Meta struct {
	Ui cli.Ui
}

// defaultFlagSet builds a ContinueOnError FlagSet whose Usage function
// prints nothing; parse errors are returned to the caller, and the flag
// package itself still writes the error message to stderr.
func (m *Meta) defaultFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

// diagnosticWidth is the terminal column at which a diagnostic's detail
// text wraps.
const diagnosticWidth = 78

// showDiagnostics prints every diagnostic in ds to the command's Ui,
// word-wrapping the detail text the way the teacher's
// internal/command/format.Diagnostic wraps long-form diagnostic bodies.
func (m *Meta) showDiagnostics(ds diag.Diagnostics) {
	for _, d := range ds {
		var buf strings.Builder
		if d.Severity == diag.Error {
			fmt.Fprintf(&buf, "Error: %s", d.Summary)
		} else {
			fmt.Fprintf(&buf, "Warning: %s", d.Summary)
		}
		if d.Subject != "" {
			fmt.Fprintf(&buf, " (%s)", d.Subject)
		}
		if d.Detail != "" {
			buf.WriteString("\n\n")
			buf.WriteString(wordwrap.WrapString(d.Detail, diagnosticWidth))
		}
		if d.Severity == diag.Error {
			m.Ui.Error(buf.String())
		} else {
			m.Ui.Warn(buf.String())
		}
	}
}
