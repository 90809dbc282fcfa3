package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"signature-resolver/internal/analyze"
	"signature-resolver/internal/diagnostic"
	"signature-resolver/internal/plan"
	"signature-resolver/internal/typemodel"
)

type printer struct {
	w io.Writer

	errorC   *color.Color
	warningC *color.Color
	infoC    *color.Color
	okC      *color.Color
	headC    *color.Color
	dimC     *color.Color
}

func newPrinter(w io.Writer, useColor bool) *printer {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}

		return c
	}

	return &printer{
		w:        w,
		errorC:   mk(color.FgRed, color.Bold),
		warningC: mk(color.FgYellow, color.Bold),
		infoC:    mk(color.FgCyan),
		okC:      mk(color.FgGreen, color.Bold),
		headC:    mk(color.Bold),
		dimC:     mk(color.Faint),
	}
}

func (p *printer) heading(format string, args ...any) {
	p.headC.Fprintf(p.w, format, args...)
	fmt.Fprintln(p.w)
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
	fmt.Fprintln(p.w)
}

func (p *printer) severity(s diagnostic.DiagnosticSeverity) *color.Color {
	switch s {
	case diagnostic.DiagnosticError:
		return p.errorC
	case diagnostic.DiagnosticWarning:
		return p.warningC
	default:
		return p.infoC
	}
}

// diagnostics prints every diagnostic, errors first, and a summary line.
func (p *printer) diagnostics(d *diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		p.severity(diag.Severity).Fprintf(p.w, "%s", diag.Severity)
		p.dimC.Fprintf(p.w, "[%s]", diag.Code)
		fmt.Fprint(p.w, " ")

		if !diag.Location.IsZero() {
			fmt.Fprintf(p.w, "%s: ", diag.Location)
		}

		fmt.Fprint(p.w, diag.Message)

		if len(diag.Suggestions) > 0 {
			p.dimC.Fprintf(p.w, " (did you mean %s?)", strings.Join(diag.Suggestions, ", "))
		}

		fmt.Fprintln(p.w)
	}
}

func (p *printer) summary(d *diagnostic.Diagnostics) {
	if d.HasErrors() {
		p.errorC.Fprintf(p.w, "%d error(s)", len(d.Errors))
	} else {
		p.okC.Fprint(p.w, "ok")
	}

	fmt.Fprintf(p.w, ", %d warning(s), %d info\n", len(d.Warnings), len(d.Infos))
}

func (p *printer) retrieval(a *typemodel.Arena, ret *plan.Retrieval) {
	p.heading("declaration %s", ret.Top.QualifiedName())

	order := make([]string, len(ret.BuildOrder))
	for i, d := range ret.BuildOrder {
		order[i] = d.QualifiedName()
	}

	p.line("  build order: %s", strings.Join(order, ", "))

	p.heading("to implement (%d)", len(ret.ToImplement))

	for _, m := range ret.ToImplement {
		p.line("  %s", m.Signature(a))
	}

	p.heading("candidates (%d)", ret.Pool.Len())

	for _, c := range ret.Pool.Candidates() {
		p.candidate(a, c)
	}
}

func (p *printer) candidate(a *typemodel.Arena, c *plan.Candidate) {
	fmt.Fprintf(p.w, "  %-9s %s", roleName(c.Role), c.Method.Signature(a))

	if len(c.Method.Throws) > 0 {
		names := make([]string, len(c.Method.Throws))
		for i, t := range c.Method.Throws {
			names[i] = a.String(t)
		}

		fmt.Fprintf(p.w, " throws %s", strings.Join(names, ", "))
	}

	if c.Origin != nil {
		p.dimC.Fprintf(p.w, "  from %s", c.Origin.QualifiedName())
	}

	fmt.Fprintln(p.w)
}

func (p *printer) resolution(a *typemodel.Arena, r *plan.Resolution) {
	name := fmt.Sprintf("%s %s", r.Call.Name, r.Call.Shape.String(a))

	switch {
	case r.Resolved():
		p.okC.Fprint(p.w, "resolved  ")
	case r.Ambiguous():
		p.warningC.Fprint(p.w, "ambiguous ")
	default:
		p.errorC.Fprint(p.w, "no match  ")
	}

	p.line("%s", name)

	selected := make(map[*plan.Candidate]plan.Match, len(r.Selected))
	for _, m := range r.Selected {
		selected[m.Candidate] = m
	}

	for _, m := range r.Matches {
		mark := " "

		s, ok := selected[m.Candidate]
		if ok {
			mark = "*"
		}

		fmt.Fprintf(p.w, "  %s %s", mark, m.Candidate.Key())

		if b := m.Bindings.String(a); b != "" {
			p.dimC.Fprintf(p.w, " [%s]", b)
		}

		if ok && s.Distance >= 0 {
			p.dimC.Fprintf(p.w, " distance %d", s.Distance)
		}

		fmt.Fprintln(p.w)
	}
}

func (p *printer) class(a *typemodel.Arena, c *typemodel.Class) {
	name := c.Name

	if len(c.Params) > 0 {
		params := make([]string, len(c.Params))
		for i, v := range c.Params {
			params[i] = a.String(v)
		}

		name += "<" + strings.Join(params, ", ") + ">"
	}

	fmt.Fprintf(p.w, "  %s", name)

	if len(c.Supers) > 0 {
		supers := make([]string, len(c.Supers))
		for i, s := range c.Supers {
			supers[i] = a.String(s)
		}

		p.dimC.Fprintf(p.w, " : %s", strings.Join(supers, ", "))
	}

	var flags []string
	if c.Iterable {
		flags = append(flags, "iterable")
	}

	if c.Enum {
		flags = append(flags, "enum")
	}

	if len(flags) > 0 {
		p.infoC.Fprintf(p.w, " (%s)", strings.Join(flags, ", "))
	}

	fmt.Fprintln(p.w)
}

// roleName is the lowercase role label used in listings.
func roleName(r analyze.Role) string {
	return strings.ToLower(r.String())
}
