package typemodel

import (
	"fmt"
)

// ClassSpec describes a class in textual form.
type ClassSpec struct {
	Name string
	// Params are type-parameter declarations, e.g. "E" or "T extends Comparable<T>".
	Params []string
	// Supers are type expressions that may mention Params.
	Supers   []string
	Iterable bool
	Enum     bool
}

// Define parses spec and registers the class.
func (l *Lattice) Define(spec ClassSpec) error {
	params, err := l.arena.DeclareTypeParams(spec.Name, spec.Params, Env{})
	if err != nil {
		return fmt.Errorf("class %s: %w", spec.Name, err)
	}

	env := Env{Vars: make(map[string]TypeID, len(params))}
	for _, p := range params {
		v, _ := l.arena.Var(p)
		env.Vars[v.Name] = p
	}

	supers := make([]TypeID, 0, len(spec.Supers))

	for _, s := range spec.Supers {
		id, err := l.arena.Parse(s, env)
		if err != nil {
			return fmt.Errorf("class %s: %w", spec.Name, err)
		}

		supers = append(supers, id)
	}

	return l.DefineClass(Class{
		Name:     spec.Name,
		Params:   params,
		Supers:   supers,
		Iterable: spec.Iterable,
		Enum:     spec.Enum,
	})
}

// DeclareTypeParams creates one fresh variable per declaration and then
// parses every bound with all of them in scope, so bounds may refer to any
// parameter of the same list. outer supplies variables of an enclosing scope.
func (a *Arena) DeclareTypeParams(owner string, decls []string, outer Env) ([]TypeID, error) {
	if len(decls) == 0 {
		return nil, nil
	}

	env := Env{Vars: make(map[string]TypeID, len(outer.Vars)+len(decls))}
	for k, v := range outer.Vars {
		env.Vars[k] = v
	}

	ids := make([]TypeID, len(decls))
	bounds := make([][]string, len(decls))

	for i, d := range decls {
		name, bs, err := SplitTypeParam(d)
		if err != nil {
			return nil, err
		}

		if prev, ok := env.Vars[name]; ok && containsID(ids[:i], prev) {
			return nil, fmt.Errorf("duplicate type parameter %q", name)
		}

		ids[i] = a.NewTypeVar(owner, name)
		env.Vars[name] = ids[i]
		bounds[i] = bs
	}

	for i, bs := range bounds {
		parsed := make([]TypeID, 0, len(bs))

		for _, b := range bs {
			id, err := a.Parse(b, env)
			if err != nil {
				return nil, err
			}

			parsed = append(parsed, id)
		}

		if err := a.SetBounds(ids[i], parsed...); err != nil {
			return nil, err
		}
	}

	return ids, nil
}

func containsID(ids []TypeID, id TypeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}

	return false
}

// PresetJava names the java.lang / java.util flavored preset.
const PresetJava = "java"

var javaPrimitives = []struct{ name, boxed string }{
	{"boolean", "Boolean"},
	{"byte", "Byte"},
	{"short", "Short"},
	{"char", "Character"},
	{"int", "Integer"},
	{"long", "Long"},
	{"float", "Float"},
	{"double", "Double"},
}

var javaClasses = []ClassSpec{
	{Name: "Object"},
	{Name: "Serializable"},
	{Name: "CharSequence"},
	{Name: "Comparable", Params: []string{"T"}},
	{Name: "Number", Supers: []string{"Object", "Serializable"}},
	{Name: "Integer", Supers: []string{"Number", "Comparable<Integer>"}},
	{Name: "Long", Supers: []string{"Number", "Comparable<Long>"}},
	{Name: "Short", Supers: []string{"Number", "Comparable<Short>"}},
	{Name: "Byte", Supers: []string{"Number", "Comparable<Byte>"}},
	{Name: "Float", Supers: []string{"Number", "Comparable<Float>"}},
	{Name: "Double", Supers: []string{"Number", "Comparable<Double>"}},
	{Name: "BigDecimal", Supers: []string{"Number", "Comparable<BigDecimal>"}},
	{Name: "Boolean", Supers: []string{"Serializable", "Comparable<Boolean>"}},
	{Name: "Character", Supers: []string{"Serializable", "Comparable<Character>"}},
	{Name: "String", Supers: []string{"Serializable", "Comparable<String>", "CharSequence"}},
	{Name: "Date", Supers: []string{"Serializable", "Comparable<Date>"}},
	{Name: "Iterable", Params: []string{"T"}, Iterable: true},
	{Name: "Collection", Params: []string{"E"}, Supers: []string{"Iterable<E>"}},
	{Name: "List", Params: []string{"E"}, Supers: []string{"Collection<E>"}},
	{Name: "ArrayList", Params: []string{"E"}, Supers: []string{"List<E>", "Serializable"}},
	{Name: "Set", Params: []string{"E"}, Supers: []string{"Collection<E>"}},
	{Name: "HashSet", Params: []string{"E"}, Supers: []string{"Set<E>", "Serializable"}},
	{Name: "Map", Params: []string{"K", "V"}},
	{Name: "HashMap", Params: []string{"K", "V"}, Supers: []string{"Map<K, V>", "Serializable"}},
	{Name: "Enum", Params: []string{"E extends Enum<E>"}, Supers: []string{"Comparable<E>", "Serializable"}, Enum: true},
	{Name: "Class", Params: []string{"T"}},
}

// ApplyPreset populates l with a named preset. Presets only add entries;
// further classes may be defined afterwards.
func ApplyPreset(l *Lattice, name string) error {
	switch name {
	case PresetJava:
		l.SetRoot("Object")

		for _, p := range javaPrimitives {
			l.DefinePrimitive(p.name, p.boxed)
		}

		for _, c := range javaClasses {
			if err := l.Define(c); err != nil {
				return fmt.Errorf("preset %s: %w", name, err)
			}
		}

		return nil

	default:
		return fmt.Errorf("unknown preset %q", name)
	}
}

// NewJavaLattice returns a fresh arena and lattice populated with the java preset.
func NewJavaLattice() *Lattice {
	l := NewLattice(NewArena())
	if err := ApplyPreset(l, PresetJava); err != nil {
		panic(err)
	}

	return l
}
