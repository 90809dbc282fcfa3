package typemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	a := NewJavaLattice().Arena()

	tests := []string{
		"int",
		"void",
		"Integer",
		"int[]",
		"String[][]",
		"List<String>",
		"Map<String, List<Integer>>",
		"List<?>",
		"List<? extends Number>",
		"Comparable<? super Integer>",
		"java.util.UUID",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			id, err := a.Parse(expr, Env{})
			require.NoError(t, err)
			assert.Equal(t, expr, a.String(id))
		})
	}
}

func TestParse_Kinds(t *testing.T) {
	a := NewJavaLattice().Arena()
	v := a.NewTypeVar("m", "T")

	tests := []struct {
		expr string
		kind Kind
	}{
		{"int", KindPrimitive},
		{"void", KindVoid},
		{"Integer", KindDeclared},
		{"T", KindTypeVar},
		{"T[]", KindArray},
		{"?", KindWildcard},
		{"? extends T", KindWildcard},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			id, err := a.Parse(tt.expr, Env{Vars: map[string]TypeID{"T": v}})
			require.NoError(t, err)
			assert.Equal(t, tt.kind, a.Kind(id))
		})
	}
}

func TestParse_IsInterned(t *testing.T) {
	a := NewJavaLattice().Arena()

	first, err := a.Parse("Map<String, List<Integer>>", Env{})
	require.NoError(t, err)

	second, err := a.Parse("Map< String ,List<Integer> >", Env{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParse_VariablesShadowDeclaredNames(t *testing.T) {
	a := NewJavaLattice().Arena()
	v := a.NewTypeVar("m", "Integer")

	id, err := a.Parse("List<Integer>", Env{Vars: map[string]TypeID{"Integer": v}})
	require.NoError(t, err)

	tt, ok := a.Lookup(id)
	require.True(t, ok)
	require.Len(t, tt.Args, 1)
	assert.Equal(t, v, tt.Args[0])
}

func TestParse_Errors(t *testing.T) {
	a := NewJavaLattice().Arena()

	tests := []string{
		"",
		"List<",
		"List<String",
		"List<String,>",
		"Map<String; Integer>",
		"List<String>>",
		"1abc",
		"? extends",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := a.Parse(expr, Env{})
			assert.Error(t, err)
		})
	}
}

func TestSplitTypeParam(t *testing.T) {
	tests := []struct {
		decl   string
		name   string
		bounds []string
	}{
		{"T", "T", nil},
		{"T extends Number", "T", []string{"Number"}},
		{"T extends Comparable<T>", "T", []string{"Comparable<T>"}},
		{"T extends Number & Comparable<? super T>", "T", []string{"Number", "Comparable<? super T>"}},
		{"  E  ", "E", nil},
	}

	for _, tt := range tests {
		t.Run(tt.decl, func(t *testing.T) {
			name, bounds, err := SplitTypeParam(tt.decl)
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.bounds, bounds)
		})
	}

	for _, bad := range []string{"", "1T", "T extends ", "T extends A &"} {
		_, _, err := SplitTypeParam(bad)
		assert.Error(t, err, bad)
	}
}
