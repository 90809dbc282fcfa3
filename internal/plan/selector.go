package plan

import (
	"math"

	"signature-resolver/internal/match"
	"signature-resolver/internal/typemodel"
)

// Match is a candidate accepted by the matcher for one call shape.
type Match struct {
	Candidate *Candidate
	Bindings  *match.Bindings
	// Distance is the inheritance distance computed by InheritanceSelector;
	// -1 when no selector measured it.
	Distance int
}

// Selector narrows a list of matches for a call shape. Selectors never add
// matches and keep the input order.
type Selector interface {
	Select(call match.CallShape, matches []Match) []Match
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(call match.CallShape, matches []Match) []Match

// Select implements Selector.
func (f SelectorFunc) Select(call match.CallShape, matches []Match) []Match {
	return f(call, matches)
}

// Chain applies selectors in order while more than one match remains.
type Chain []Selector

// Select implements Selector.
func (c Chain) Select(call match.CallShape, matches []Match) []Match {
	for _, s := range c {
		if len(matches) <= 1 {
			break
		}

		matches = s.Select(call, matches)
	}

	return matches
}

// InheritanceSelector keeps the matches whose source parameter is closest to
// the call's first source type. All matches at the minimal distance are
// returned; an unreachable distance ranks after every reachable one.
type InheritanceSelector struct {
	distancer typemodel.Distancer
}

// NewInheritanceSelector creates an InheritanceSelector.
func NewInheritanceSelector(d typemodel.Distancer) *InheritanceSelector {
	return &InheritanceSelector{distancer: d}
}

// Select implements Selector.
func (s *InheritanceSelector) Select(call match.CallShape, matches []Match) []Match {
	if len(call.Sources) == 0 {
		return matches
	}

	source := call.Sources[0]
	best := math.MaxInt

	var out []Match

	for _, m := range matches {
		param, ok := m.Candidate.SourceType()
		if !ok {
			continue
		}

		m.Distance = s.distancer.Distance(source, param)

		rank := m.Distance
		if rank < 0 {
			rank = math.MaxInt
		}

		switch {
		case rank == best:
			out = append(out, m)
		case rank < best:
			best = rank
			out = append(out[:0], m)
		}
	}

	return out
}
