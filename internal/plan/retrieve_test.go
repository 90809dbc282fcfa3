package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signature-resolver/internal/analyze"
	"signature-resolver/internal/diagnostic"
)

func newTestRetriever(f *fixture) *Retriever {
	return NewRetriever(f.graph, f.arena, NewValidator(f.arena, f.lattice), nil, 3)
}

func qualifiedNames(decls []*analyze.Declaration) []string {
	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = d.QualifiedName()
	}

	return out
}

func TestRetriever_Retrieve(t *testing.T) {
	f := newFixture(t)
	f.mapperGraph()

	ret, err := newTestRetriever(f).Retrieve("CarMapper")
	require.NoError(t, err)

	assert.Equal(t, "app.CarMapper", ret.Top.QualifiedName())
	assert.Equal(t, []string{"app.CarMapper", "app.DateMapper", "lib.CommonMapper"}, qualifiedNames(ret.Closure))
	assert.Equal(t, []string{"lib.CommonMapper", "app.DateMapper", "app.CarMapper"}, qualifiedNames(ret.BuildOrder))

	require.Len(t, ret.ToImplement, 2)
	assert.Equal(t, "toDto", ret.ToImplement[0].Name)
	assert.Equal(t, "fromDto", ret.ToImplement[1].Name)

	var keys []string
	for _, c := range ret.Pool.Candidates() {
		keys = append(keys, c.Key())
	}

	assert.Equal(t, []string{
		"app.CarMapper#label(Car): String",
		"app.DateMapper#format(Date): String",
		"app.DateMapper#newDto(): CarDto",
		"lib.CommonMapper#toLong(Integer): Long",
	}, keys)
}

func TestRetriever_CandidateOrigin(t *testing.T) {
	f := newFixture(t)
	f.mapperGraph()

	ret, err := newTestRetriever(f).Retrieve("app.CarMapper")
	require.NoError(t, err)

	own, ok := ret.Pool.Lookup("app.CarMapper#label(Car): String")
	require.True(t, ok)
	assert.Nil(t, own.Origin, "methods of the top-level declaration have no origin")
	assert.Equal(t, analyze.RoleReference, own.Role)

	used, ok := ret.Pool.Lookup("lib.CommonMapper#toLong(Integer): Long")
	require.True(t, ok)
	require.NotNil(t, used.Origin)
	assert.Equal(t, "lib.CommonMapper", used.Origin.QualifiedName())

	factories := ret.Pool.WithRole(analyze.RoleFactory)
	require.Len(t, factories, 1)
	assert.Equal(t, "newDto", factories[0].Method.Name)
}

func TestRetriever_Diagnostics(t *testing.T) {
	f := newFixture(t)
	f.mapperGraph()

	ret, err := newTestRetriever(f).Retrieve("CarMapper")
	require.NoError(t, err)

	invalid := ret.Diagnostics.WithCode(diagnostic.CodeVoidResult)
	require.Len(t, invalid, 1)
	assert.Equal(t, "broken", invalid[0].Location.Method)
	assert.True(t, ret.Diagnostics.HasErrors())

	dup := ret.Diagnostics.WithCode(diagnostic.CodeDuplicateOrigin)
	require.Len(t, dup, 1)
	assert.Equal(t, diagnostic.DiagnosticInfo, dup[0].Severity)
	assert.Equal(t, "app.CarMapper", dup[0].Location.Declaration)
	assert.Contains(t, dup[0].Message, "lib.CommonMapper")

	hidden := ret.Diagnostics.WithCode(diagnostic.CodeInaccessibleCandidate)
	require.Len(t, hidden, 2)
	assert.Equal(t, "parse", hidden[0].Location.Method)
	assert.Equal(t, "toInt", hidden[1].Location.Method)
}

func TestRetriever_AbstractMethodsOfUsedDeclarations(t *testing.T) {
	f := newFixture(t)
	f.declare("app", "Top", []string{"Used"})
	f.declare("app", "Used", nil,
		f.abstract(f.method("toDto", nil, "CarDto", "Car")),
		f.abstract(f.method("newDto", nil, "CarDto")),
		f.method("label", nil, "String", "Car"),
	)

	ret, err := newTestRetriever(f).Retrieve("Top")
	require.NoError(t, err)

	assert.Empty(t, ret.ToImplement)
	assert.False(t, ret.Diagnostics.HasErrors())

	require.Equal(t, 1, ret.Pool.Len())
	assert.Equal(t, "app.Used#label(Car): String", ret.Pool.Candidates()[0].Key())
}

func TestRetriever_CustomAccess(t *testing.T) {
	f := newFixture(t)
	f.mapperGraph()

	everything := func(_, _ *analyze.Declaration, _ *analyze.Method) bool { return true }

	ret, err := NewRetriever(f.graph, f.arena, NewValidator(f.arena, f.lattice), everything, 3).Retrieve("CarMapper")
	require.NoError(t, err)

	assert.Equal(t, 6, ret.Pool.Len())
	assert.Empty(t, ret.Diagnostics.WithCode(diagnostic.CodeInaccessibleCandidate))
}

func TestRetriever_UnknownTopLevel(t *testing.T) {
	f := newFixture(t)
	f.mapperGraph()

	ret, err := newTestRetriever(f).Retrieve("CarMaper")
	require.Error(t, err)
	assert.Nil(t, ret)

	var fault *ConfigurationFault
	require.ErrorAs(t, err, &fault)
	assert.ErrorIs(t, err, ErrUnknownDeclaration)
	assert.Contains(t, fault.Suggestions, "CarMapper")
	assert.Contains(t, err.Error(), "did you mean")
}

func TestRetriever_UnresolvableUses(t *testing.T) {
	f := newFixture(t)
	f.declare("app", "CarMapper", []string{"DateMaper"})
	f.declare("app", "DateMapper", nil)

	_, err := newTestRetriever(f).Retrieve("CarMapper")

	var fault *ConfigurationFault
	require.ErrorAs(t, err, &fault)
	assert.ErrorIs(t, err, ErrUnknownDeclaration)
	assert.Equal(t, "app.CarMapper", fault.Declaration)
	assert.Contains(t, fault.Reason, `"DateMaper"`)
	assert.Contains(t, fault.Suggestions, "DateMapper")
}

func TestRetriever_CyclicUses(t *testing.T) {
	f := newFixture(t)
	f.declare("app", "A", []string{"B"})
	f.declare("app", "B", []string{"C"})
	f.declare("app", "C", []string{"B"})

	_, err := newTestRetriever(f).Retrieve("A")
	require.Error(t, err)

	var fault *ConfigurationFault
	require.ErrorAs(t, err, &fault)
	assert.True(t, errors.Is(err, ErrCyclicUses))
	assert.Equal(t, "cyclic uses among app.A, app.B, app.C", fault.Reason)
}

func TestRetriever_SelfUse(t *testing.T) {
	f := newFixture(t)
	f.declare("app", "A", []string{"A"})

	_, err := newTestRetriever(f).Retrieve("A")
	assert.ErrorIs(t, err, ErrCyclicUses)
}

func TestDefaultAccess(t *testing.T) {
	app := &analyze.Declaration{Name: "A", Package: "app"}
	sibling := &analyze.Declaration{Name: "B", Package: "app"}
	other := &analyze.Declaration{Name: "C", Package: "lib"}

	tests := []struct {
		visibility analyze.Visibility
		owner      *analyze.Declaration
		expected   bool
	}{
		{analyze.VisibilityPublic, other, true},
		{analyze.VisibilityProtected, sibling, true},
		{analyze.VisibilityProtected, other, false},
		{analyze.VisibilityPackage, sibling, true},
		{analyze.VisibilityPackage, other, false},
		{analyze.VisibilityPrivate, sibling, false},
		{analyze.VisibilityPrivate, app, true},
	}

	for _, tt := range tests {
		t.Run(tt.visibility.String()+" on "+tt.owner.QualifiedName(), func(t *testing.T) {
			m := &analyze.Method{Name: "m", Visibility: tt.visibility}
			assert.Equal(t, tt.expected, DefaultAccess(app, tt.owner, m))
		})
	}
}
