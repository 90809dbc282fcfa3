package plan

import (
	"fmt"

	"signature-resolver/internal/analyze"
	"signature-resolver/internal/diagnostic"
	"signature-resolver/internal/typemodel"
)

// ShapeHost is the part of the host type system the validator needs.
type ShapeHost interface {
	IsAssignable(a, b typemodel.TypeID) bool
	typemodel.Classifier
}

// Validator classifies methods by role and checks role-specific shapes.
type Validator struct {
	arena *typemodel.Arena
	host  ShapeHost
}

// NewValidator creates a Validator.
func NewValidator(a *typemodel.Arena, host ShapeHost) *Validator {
	return &Validator{arena: a, host: host}
}

// Classify returns the role of m. top reports whether m is declared on the
// top-level declaration: only there do abstract methods require an
// implementation, and elsewhere they are RoleNone. An implemented method is
// a candidate when it has the shape of a reference (one source) or a
// factory (no source), and RoleNone otherwise.
func (v *Validator) Classify(m *analyze.Method, top bool) analyze.Role {
	switch {
	case top && m.Abstract:
		return analyze.RoleRequiresImplementation
	case m.Abstract:
		return analyze.RoleNone
	case isReferenceOrFactory(m, 1):
		return analyze.RoleReference
	case isReferenceOrFactory(m, 0):
		return analyze.RoleFactory
	default:
		return analyze.RoleNone
	}
}

// isReferenceOrFactory reports whether m has exactly sources source
// parameters, no target parameter, at most one target-type hint and nothing else.
func isReferenceOrFactory(m *analyze.Method, sources int) bool {
	var src, targets, hints int

	for _, p := range m.Params {
		if p.Target {
			targets++
		}

		if p.TargetType {
			hints++
		}

		if p.IsSource() {
			src++
		}
	}

	return src == sources && targets == 0 && hints <= 1 && len(m.Params) == src+targets+hints
}

// ResultType is the type a method produces: its target parameter's type, or
// its return type when it has no target parameter.
func ResultType(m *analyze.Method) typemodel.TypeID {
	if targets := m.TargetParameters(); len(targets) > 0 {
		return targets[0].Type
	}

	return m.Return
}

// ValidateImplementation checks a method requiring implementation. The first
// violated rule is reported to sink as an error and false is returned.
func (v *Validator) ValidateImplementation(decl *analyze.Declaration, m *analyze.Method, sink diagnostic.Sink) bool {
	loc := diagnostic.Location{Declaration: decl.QualifiedName(), Method: m.Name}
	reject := func(code, format string, args ...any) bool {
		sink.Report(diagnostic.DiagnosticError, code, fmt.Sprintf(format, args...), loc)
		return false
	}

	// every non-target parameter counts as input here, hints included
	var inputs []analyze.Parameter

	for _, p := range m.Params {
		if !p.Target {
			inputs = append(inputs, p)
		}
	}

	targets := m.TargetParameters()
	result := ResultType(m)

	if len(inputs) == 0 {
		return reject(diagnostic.CodeNoInputArguments, "can't generate mapping method with no input arguments")
	}

	if len(targets) > 0 && len(inputs)+1 != len(m.Params) {
		return reject(diagnostic.CodeMultipleTargetParameters,
			"can't generate mapping method with more than one target parameter")
	}

	if v.arena.IsVoid(result) {
		return reject(diagnostic.CodeVoidResult, "can't generate mapping method with return type void")
	}

	if !v.arena.IsVoid(m.Return) && !v.host.IsAssignable(result, m.Return) {
		return reject(diagnostic.CodeResultNotAssignable,
			"result type %s is not assignable to return type %s", v.arena.String(result), v.arena.String(m.Return))
	}

	source := inputs[0].Type

	if v.host.IsIterable(source) && !v.host.IsIterable(result) {
		return reject(diagnostic.CodeIterableToNonIterable,
			"can't generate mapping method from iterable type %s to non-iterable type %s",
			v.arena.String(source), v.arena.String(result))
	}

	if len(m.TargetTypeParameters()) > 0 {
		return reject(diagnostic.CodeTargetTypeOnImplementation,
			"can't generate mapping method that has a target-type parameter")
	}

	if !v.host.IsIterable(source) && v.host.IsIterable(result) {
		return reject(diagnostic.CodeNonIterableToIterable,
			"can't generate mapping method from non-iterable type %s to iterable type %s",
			v.arena.String(source), v.arena.String(result))
	}

	if v.arena.IsPrimitive(source) {
		return reject(diagnostic.CodePrimitiveParameter,
			"can't generate mapping method with primitive parameter type %s", v.arena.String(source))
	}

	if v.arena.IsPrimitive(result) {
		return reject(diagnostic.CodePrimitiveResult,
			"can't generate mapping method with primitive return type %s", v.arena.String(result))
	}

	if v.host.IsEnum(source) && !v.host.IsEnum(result) {
		return reject(diagnostic.CodeEnumToNonEnum,
			"can't generate mapping method from enum type %s to non-enum type %s",
			v.arena.String(source), v.arena.String(result))
	}

	if !v.host.IsEnum(source) && v.host.IsEnum(result) {
		return reject(diagnostic.CodeNonEnumToEnum,
			"can't generate mapping method from non-enum type %s to enum type %s",
			v.arena.String(source), v.arena.String(result))
	}

	return true
}
