package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"signature-resolver/internal/common"
)

// Sink receives diagnostics. Producers report through a Sink so callers can
// plug their own emitter; Diagnostics is the default collector.
type Sink interface {
	Report(severity DiagnosticSeverity, code, message string, loc Location)
}

var _ Sink = (*Diagnostics)(nil)

// Diagnostics holds all diagnostic information from a retrieval.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Location identifies the element a diagnostic is about.
type Location struct {
	// Declaration is the qualified declaration name.
	Declaration string
	// Method is the method name (if any).
	Method string
	// Parameter is the parameter name (if any).
	Parameter string
}

// IsZero reports whether no part of the location is set.
func (l Location) IsZero() bool {
	return l.Declaration == "" && l.Method == "" && l.Parameter == ""
}

// String renders "Decl.method(param)".
func (l Location) String() string {
	var b strings.Builder

	b.WriteString(l.Declaration)

	if l.Method != "" {
		if b.Len() > 0 {
			b.WriteByte('.')
		}

		b.WriteString(l.Method)
	}

	if l.Parameter != "" {
		b.WriteString("(" + l.Parameter + ")")
	}

	return b.String()
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Location identifies the declaration element this relates to (if any).
	Location Location
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Report implements Sink.
func (d *Diagnostics) Report(severity DiagnosticSeverity, code, message string, loc Location) {
	d.add(Diagnostic{Severity: severity, Code: code, Message: message, Location: loc})
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, loc Location, suggestions ...string) {
	d.add(Diagnostic{
		Severity:    DiagnosticError,
		Code:        code,
		Message:     message,
		Location:    loc,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, loc Location, suggestions ...string) {
	d.add(Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        code,
		Message:     message,
		Location:    loc,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, loc Location) {
	d.add(Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Location: loc,
	})
}

func (d *Diagnostics) add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// WithCode returns every diagnostic carrying code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if !d.Location.IsZero() {
		return d.Location.String() + ": " + msg
	}

	return msg
}
