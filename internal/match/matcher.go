package match

import (
	"signature-resolver/internal/typemodel"
)

// direction selects how raw declared types are compared.
type direction int

const (
	// towardsParam: the supplied type must be assignable to the candidate.
	towardsParam direction = iota
	// towardsTarget: the candidate type must be assignable to the target.
	towardsTarget
)

// Matcher unifies candidate signatures with call shapes. It keeps no state
// between calls and is safe for concurrent use when its oracle is.
type Matcher struct {
	arena  *typemodel.Arena
	oracle typemodel.Oracle
}

// NewMatcher creates a Matcher over an arena and the host oracle.
func NewMatcher(a *typemodel.Arena, o typemodel.Oracle) *Matcher {
	return &Matcher{arena: a, oracle: o}
}

// Match reports whether sig can serve call. On success it returns the
// variable bindings; every declared type variable is bound and within bounds.
func (m *Matcher) Match(sig Signature, call CallShape) (*Bindings, bool) {
	if len(sig.Params) != len(call.Sources) {
		return nil, false
	}

	b := NewBindings()

	for i, p := range sig.Params {
		if !m.MatchParam(sig, p, call.Sources[i], b) {
			return nil, false
		}
	}

	if !m.MatchReturn(sig, sig.Return, call.Target, b) {
		return nil, false
	}

	if !m.CheckBindings(sig, b) {
		return nil, false
	}

	return b, true
}

// MatchParam matches one candidate parameter against a supplied source type.
// A primitive source that does not match is retried boxed. Bindings made by
// a failed attempt are rolled back.
func (m *Matcher) MatchParam(sig Signature, candidate, supplied typemodel.TypeID, b *Bindings) bool {
	mark := b.mark()

	if m.visit(sig, candidate, supplied, b, towardsParam) {
		return true
	}

	b.rollback(mark)

	if !m.arena.IsPrimitive(supplied) {
		return false
	}

	boxed, ok := m.oracle.Boxed(supplied)
	if !ok {
		return false
	}

	if m.visit(sig, candidate, boxed, b, towardsParam) {
		return true
	}

	b.rollback(mark)

	return false
}

// MatchReturn matches the candidate return type against the call target.
// A primitive target that does not match is retried boxed; otherwise a
// primitive candidate return is retried boxed.
func (m *Matcher) MatchReturn(sig Signature, candidate, target typemodel.TypeID, b *Bindings) bool {
	mark := b.mark()

	if m.visit(sig, candidate, target, b, towardsTarget) {
		return true
	}

	b.rollback(mark)

	var ok bool

	switch {
	case m.arena.IsPrimitive(target):
		var boxed typemodel.TypeID
		if boxed, ok = m.oracle.Boxed(target); ok {
			ok = m.visit(sig, candidate, boxed, b, towardsTarget)
		}

	case m.arena.IsPrimitive(candidate):
		var boxed typemodel.TypeID
		if boxed, ok = m.oracle.Boxed(candidate); ok {
			ok = m.visit(sig, boxed, target, b, towardsTarget)
		}
	}

	if !ok {
		b.rollback(mark)
	}

	return ok
}

// CheckBindings verifies that every declared type variable is bound and that
// each binding is a subtype of every bound of its variable.
func (m *Matcher) CheckBindings(sig Signature, b *Bindings) bool {
	if b.Len() != len(sig.TypeParams) {
		return false
	}

	for _, v := range sig.TypeParams {
		t, ok := b.Get(v)
		if !ok || !m.withinBounds(sig, v, t, b) {
			return false
		}
	}

	return true
}

func (m *Matcher) visit(sig Signature, candidate, supplied typemodel.TypeID, b *Bindings, dir direction) bool {
	tc, ok := m.arena.Lookup(candidate)
	if !ok {
		return false
	}

	ts, ok := m.arena.Lookup(supplied)
	if !ok {
		return false
	}

	switch tc.Kind {
	case typemodel.KindVoid:
		return ts.Kind == typemodel.KindVoid

	case typemodel.KindPrimitive:
		return ts.Kind == typemodel.KindPrimitive && m.oracle.IsSameType(candidate, supplied)

	case typemodel.KindArray:
		return ts.Kind == typemodel.KindArray && m.visit(sig, tc.Elem, ts.Elem, b, dir)

	case typemodel.KindDeclared:
		return m.visitDeclared(sig, tc, ts, candidate, supplied, b, dir)

	case typemodel.KindTypeVar:
		return m.visitTypeVar(sig, candidate, supplied, ts, b)

	case typemodel.KindWildcard:
		return m.visitWildcard(sig, tc, supplied, b)

	default:
		return false
	}
}

func (m *Matcher) visitDeclared(
	sig Signature,
	tc, ts typemodel.Type,
	candidate, supplied typemodel.TypeID,
	b *Bindings,
	dir direction,
) bool {
	if ts.Kind != typemodel.KindDeclared || len(tc.Args) != len(ts.Args) {
		return false
	}

	rawC, rawS := m.arena.Raw(candidate), m.arena.Raw(supplied)

	switch dir {
	case towardsParam:
		if !m.oracle.IsAssignable(rawS, rawC) {
			return false
		}
	case towardsTarget:
		if !m.oracle.IsAssignable(rawC, rawS) {
			return false
		}
	}

	for i := range tc.Args {
		if !m.visit(sig, tc.Args[i], ts.Args[i], b, dir) {
			return false
		}
	}

	return true
}

// visitTypeVar binds an unbound variable or checks a bound one. Bounds are
// left to CheckBindings. Primitives and void never bind.
func (m *Matcher) visitTypeVar(sig Signature, v, supplied typemodel.TypeID, ts typemodel.Type, b *Bindings) bool {
	if !sig.Declares(v) {
		return false
	}

	switch ts.Kind {
	case typemodel.KindPrimitive, typemodel.KindVoid, typemodel.KindWildcard:
		return false
	}

	if bound, ok := b.Get(v); ok {
		return m.oracle.IsSameType(bound, supplied)
	}

	b.bind(v, supplied)

	return true
}

func (m *Matcher) visitWildcard(sig Signature, tc typemodel.Type, supplied typemodel.TypeID, b *Bindings) bool {
	switch {
	case tc.Extends != typemodel.NoTypeID:
		switch m.arena.Kind(tc.Extends) {
		case typemodel.KindDeclared:
			return m.oracle.IsSubtype(supplied, tc.Extends)
		case typemodel.KindTypeVar:
			return m.withinBounds(sig, tc.Extends, supplied, b)
		default:
			return false
		}

	case tc.Super != typemodel.NoTypeID:
		switch m.arena.Kind(tc.Super) {
		case typemodel.KindDeclared:
			return m.oracle.IsSubtype(tc.Super, supplied) || m.oracle.IsSameType(supplied, tc.Super)
		case typemodel.KindTypeVar:
			if !m.withinBounds(sig, tc.Super, supplied, b) {
				return false
			}

			first, ok := m.firstBound(tc.Super, b)
			if !ok {
				return false
			}

			return m.oracle.IsSubtype(first, supplied) || m.oracle.IsSameType(supplied, first)
		default:
			return false
		}

	default:
		return true
	}
}

// firstBound returns the first declared bound of v substituted with the
// current bindings, or the host root when v is unbounded.
func (m *Matcher) firstBound(v typemodel.TypeID, b *Bindings) (typemodel.TypeID, bool) {
	bounds := m.arena.Bounds(v)
	if len(bounds) == 0 {
		return m.oracle.Root()
	}

	return m.arena.Substitute(bounds[0], b.Env()), true
}

// withinBounds reports whether t satisfies every bound of the declared
// variable v. Bounds are substituted with the current bindings first; a
// bound that is not a declared type afterwards fails.
func (m *Matcher) withinBounds(sig Signature, v, t typemodel.TypeID, b *Bindings) bool {
	if !sig.Declares(v) {
		return false
	}

	switch m.arena.Kind(t) {
	case typemodel.KindPrimitive, typemodel.KindVoid, typemodel.KindInvalid:
		return false
	}

	env := b.Env()

	for _, bound := range m.arena.Bounds(v) {
		sb := m.arena.Substitute(bound, env)
		if m.arena.Kind(sb) != typemodel.KindDeclared || !m.oracle.IsSubtype(t, sb) {
			return false
		}
	}

	return true
}
