package plan

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"signature-resolver/internal/analyze"
	"signature-resolver/internal/typemodel"
)

type fixture struct {
	t       *testing.T
	lattice *typemodel.Lattice
	arena   *typemodel.Arena
	graph   *analyze.Graph
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	l := typemodel.NewJavaLattice()

	for _, c := range []typemodel.ClassSpec{
		{Name: "Vehicle"},
		{Name: "Car", Supers: []string{"Vehicle"}},
		{Name: "Truck", Supers: []string{"Car"}},
		{Name: "CarDto"},
		{Name: "Color", Supers: []string{"Enum<Color>"}},
	} {
		require.NoError(t, l.Define(c))
	}

	return &fixture{t: t, lattice: l, arena: l.Arena(), graph: analyze.NewGraph()}
}

func (f *fixture) typ(expr string) typemodel.TypeID {
	f.t.Helper()

	id, err := f.arena.Parse(expr, typemodel.Env{})
	require.NoError(f.t, err, expr)

	return id
}

// method builds a method from textual types. A parameter prefixed with
// "@target " is the mapping target, one prefixed with "@hint " a
// target-type hint.
func (f *fixture) method(name string, typeParams []string, ret string, params ...string) *analyze.Method {
	f.t.Helper()

	vars, err := f.arena.DeclareTypeParams(name, typeParams, typemodel.Env{})
	require.NoError(f.t, err)

	env := typemodel.Env{Vars: make(map[string]typemodel.TypeID, len(vars))}
	for _, v := range vars {
		tv, _ := f.arena.Var(v)
		env.Vars[tv.Name] = v
	}

	parse := func(expr string) typemodel.TypeID {
		id, err := f.arena.Parse(expr, env)
		require.NoError(f.t, err, expr)

		return id
	}

	m := &analyze.Method{Name: name, Return: parse(ret), TypeParams: vars}

	for i, p := range params {
		param := analyze.Parameter{Name: fmt.Sprintf("p%d", i)}

		switch {
		case strings.HasPrefix(p, "@target "):
			param.Target = true
			p = strings.TrimPrefix(p, "@target ")
		case strings.HasPrefix(p, "@hint "):
			param.TargetType = true
			p = strings.TrimPrefix(p, "@hint ")
		}

		param.Type = parse(p)
		m.Params = append(m.Params, param)
	}

	return m
}

func (f *fixture) abstract(m *analyze.Method) *analyze.Method {
	m.Abstract = true
	return m
}

func (f *fixture) visibility(m *analyze.Method, v analyze.Visibility) *analyze.Method {
	m.Visibility = v
	return m
}

func (f *fixture) declare(pkg, name string, uses []string, methods ...*analyze.Method) *analyze.Declaration {
	f.t.Helper()

	d := &analyze.Declaration{Name: name, Package: pkg, Uses: uses, Methods: methods}
	require.NoError(f.t, f.graph.Add(d))

	return d
}

// mapperGraph declares a small graph:
//
//	app.CarMapper -> app.DateMapper -> lib.CommonMapper
//	app.CarMapper -> lib.CommonMapper
func (f *fixture) mapperGraph() {
	f.declare("app", "CarMapper", []string{"DateMapper", "CommonMapper"},
		f.abstract(f.method("toDto", nil, "CarDto", "Car")),
		f.abstract(f.method("fromDto", nil, "Car", "CarDto")),
		f.abstract(f.method("broken", nil, "void", "Car")),
		f.method("label", nil, "String", "Car"),
	)
	f.declare("app", "DateMapper", []string{"CommonMapper"},
		f.method("format", nil, "String", "Date"),
		f.visibility(f.method("parse", nil, "Date", "String"), analyze.VisibilityPrivate),
		f.method("newDto", nil, "CarDto"),
	)
	f.declare("lib", "CommonMapper", nil,
		f.method("toLong", nil, "Long", "Integer"),
		f.visibility(f.method("toInt", nil, "Integer", "Long"), analyze.VisibilityPackage),
	)
}
