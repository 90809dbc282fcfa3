package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signature-resolver/internal/analyze"
	"signature-resolver/internal/match"
	"signature-resolver/internal/typemodel"
)

func (f *fixture) matches(params ...string) []Match {
	f.t.Helper()

	top := &analyze.Declaration{Name: "Top"}
	out := make([]Match, 0, len(params))

	for i, p := range params {
		decl := &analyze.Declaration{Name: "M" + string(rune('A'+i))}
		m := f.method("convert", nil, "CarDto", p)
		out = append(out, Match{Candidate: NewCandidate(f.arena, decl, top, m, analyze.RoleReference), Distance: -1})
	}

	return out
}

func origins(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Candidate.Declaring.Name
	}

	return out
}

func distances(ms []Match) []int {
	out := make([]int, len(ms))
	for i, m := range ms {
		out[i] = m.Distance
	}

	return out
}

func TestInheritanceSelector_Select(t *testing.T) {
	f := newFixture(t)
	s := NewInheritanceSelector(f.lattice)

	tests := []struct {
		name      string
		source    string
		params    []string
		selected  []string
		distances []int
	}{
		{
			name:      "closest wins",
			source:    "Truck",
			params:    []string{"Truck", "Car", "Car"},
			selected:  []string{"MA"},
			distances: []int{0},
		},
		{
			name:      "closest wins regardless of order",
			source:    "Truck",
			params:    []string{"Vehicle", "Car", "Truck"},
			selected:  []string{"MC"},
			distances: []int{0},
		},
		{
			name:      "ties are all kept in order",
			source:    "Truck",
			params:    []string{"Vehicle", "Car", "Car"},
			selected:  []string{"MB", "MC"},
			distances: []int{1, 1},
		},
		{
			name:      "unreachable ranks last",
			source:    "Truck",
			params:    []string{"String", "Vehicle"},
			selected:  []string{"MB"},
			distances: []int{2},
		},
		{
			name:      "all unreachable are kept",
			source:    "Truck",
			params:    []string{"String", "Date"},
			selected:  []string{"MA", "MB"},
			distances: []int{-1, -1},
		},
		{
			name:      "boxing counts as a step",
			source:    "int",
			params:    []string{"Number", "Integer"},
			selected:  []string{"MB"},
			distances: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := match.CallShape{Sources: []typemodel.TypeID{f.typ(tt.source)}, Target: f.typ("CarDto")}

			got := s.Select(call, f.matches(tt.params...))
			assert.Equal(t, tt.selected, origins(got))
			assert.Equal(t, tt.distances, distances(got))
		})
	}
}

func TestInheritanceSelector_FactoryCallIsUnchanged(t *testing.T) {
	f := newFixture(t)
	s := NewInheritanceSelector(f.lattice)

	in := f.matches("Car", "Truck")
	got := s.Select(match.CallShape{Target: f.typ("CarDto")}, in)

	assert.Equal(t, in, got)
}

func TestInheritanceSelector_DoesNotMutateInput(t *testing.T) {
	f := newFixture(t)
	s := NewInheritanceSelector(f.lattice)

	in := f.matches("Car", "Truck")
	call := match.CallShape{Sources: []typemodel.TypeID{f.typ("Truck")}, Target: f.typ("CarDto")}

	_ = s.Select(call, in)
	assert.Equal(t, []int{-1, -1}, distances(in))
}

func TestChain_Select(t *testing.T) {
	f := newFixture(t)

	calls := 0
	first := SelectorFunc(func(_ match.CallShape, ms []Match) []Match {
		calls++
		return ms[:1]
	})

	call := match.CallShape{Sources: []typemodel.TypeID{f.typ("Truck")}, Target: f.typ("CarDto")}

	t.Run("tie broken by the next selector", func(t *testing.T) {
		calls = 0
		chain := Chain{NewInheritanceSelector(f.lattice), first}

		got := chain.Select(call, f.matches("Car", "Car"))
		require.Len(t, got, 1)
		assert.Equal(t, "MA", got[0].Candidate.Declaring.Name)
		assert.Equal(t, 1, got[0].Distance)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops once a single match remains", func(t *testing.T) {
		calls = 0
		chain := Chain{NewInheritanceSelector(f.lattice), first}

		got := chain.Select(call, f.matches("Truck", "Car"))
		require.Len(t, got, 1)
		assert.Equal(t, "MA", got[0].Candidate.Declaring.Name)
		assert.Zero(t, calls)
	})
}
