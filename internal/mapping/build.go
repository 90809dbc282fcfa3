package mapping

import (
	"fmt"

	"signature-resolver/internal/analyze"
	"signature-resolver/internal/diagnostic"
	"signature-resolver/internal/plan"
	"signature-resolver/internal/typemodel"
)

// maxSuggestions bounds the "did you mean" names attached to diagnostics.
const maxSuggestions = 3

// Model is the in-memory form of a declaration file.
type Model struct {
	Lattice *typemodel.Lattice
	Graph   *analyze.Graph
	calls   map[string][]plan.Call // by qualified declaration name
}

// Arena returns the arena every type of the model lives in.
func (m *Model) Arena() *typemodel.Arena {
	return m.Lattice.Arena()
}

// Calls returns the call shapes declared for a declaration, looked up by
// qualified or unambiguous simple name.
func (m *Model) Calls(name string) []plan.Call {
	d, ok := m.Graph.Lookup(name)
	if !ok {
		return nil
	}

	return m.calls[d.QualifiedName()]
}

// Validate checks f structurally and returns the diagnostics.
func Validate(f *File) *diagnostic.Diagnostics {
	_, diags := Build(f)
	return diags
}

// Build converts f into a Model. Problems are reported as diagnostics; the
// model is built on a best-effort basis and should not be used when the
// diagnostics hold errors.
func Build(f *File) (*Model, *diagnostic.Diagnostics) {
	b := &builder{
		file:  f,
		diags: &diagnostic.Diagnostics{},
		model: &Model{
			Lattice: typemodel.NewLattice(typemodel.NewArena()),
			Graph:   analyze.NewGraph(),
			calls:   make(map[string][]plan.Call),
		},
	}

	if f == nil {
		b.diags.AddError(diagnostic.CodeMissingName, "declaration file is nil", diagnostic.Location{})
		return b.model, b.diags
	}

	if f.Version != SupportedVersion {
		b.diags.AddError(diagnostic.CodeUnsupportedVersion,
			fmt.Sprintf("unsupported declaration file version %q (want %q)", f.Version, SupportedVersion),
			diagnostic.Location{})
	}

	b.buildTypes()
	b.buildDeclarations()
	b.checkUses()

	return b.model, b.diags
}

type builder struct {
	file  *File
	diags *diagnostic.Diagnostics
	model *Model
}

func (b *builder) lattice() *typemodel.Lattice {
	return b.model.Lattice
}

func (b *builder) arena() *typemodel.Arena {
	return b.model.Lattice.Arena()
}

func (b *builder) buildTypes() {
	ts := &b.file.Types
	l := b.lattice()

	if ts.Preset != "" {
		if err := typemodel.ApplyPreset(l, ts.Preset); err != nil {
			b.diags.AddError(diagnostic.CodeUnknownPreset, err.Error(), diagnostic.Location{},
				analyze.Suggest(ts.Preset, []string{typemodel.PresetJava}, maxSuggestions)...)
		}
	}

	if ts.Root != "" {
		l.SetRoot(ts.Root)
	}

	if len(ts.GoPackages) > 0 {
		im := analyze.NewImporter(l)
		im.Dir = b.file.BaseDir

		if err := im.LoadPackages(ts.GoPackages...); err != nil {
			b.diags.AddError(diagnostic.CodeImportFailed, err.Error(), diagnostic.Location{})
		}
	}

	for _, p := range ts.Primitives {
		if p.Name == "" {
			b.diags.AddError(diagnostic.CodeMissingName, "primitive without a name", diagnostic.Location{})
			continue
		}

		l.DefinePrimitive(p.Name, p.Boxed)
	}

	for _, c := range ts.Classes {
		if c.Name == "" {
			b.diags.AddError(diagnostic.CodeMissingName, "class without a name", diagnostic.Location{})
			continue
		}

		if _, exists := l.Class(c.Name); exists {
			b.diags.AddError(diagnostic.CodeDuplicateClass, fmt.Sprintf("duplicate class %q", c.Name),
				diagnostic.Location{Declaration: c.Name})

			continue
		}

		err := l.Define(typemodel.ClassSpec{
			Name:     c.Name,
			Params:   c.Params,
			Supers:   c.Supers,
			Iterable: c.Iterable,
			Enum:     c.Enum,
		})
		if err != nil {
			b.diags.AddError(diagnostic.CodeInvalidType, err.Error(), diagnostic.Location{Declaration: c.Name})
		}
	}

	for _, a := range ts.Aliases {
		if a.Name == "" || a.Target == "" {
			b.diags.AddError(diagnostic.CodeMissingName, "alias needs a name and a target", diagnostic.Location{})
			continue
		}

		if err := l.Alias(a.Name, a.Target); err != nil {
			b.diags.AddError(diagnostic.CodeDuplicateClass, err.Error(), diagnostic.Location{Declaration: a.Name})
		}
	}

	if root := l.RootName(); root != "" {
		if _, ok := l.Class(root); !ok {
			_ = l.DefineClass(typemodel.Class{Name: root})
		}
	}

	// every class is known now; check the names the classes refer to
	for _, p := range ts.Primitives {
		if p.Boxed != "" {
			b.checkName(p.Boxed, fmt.Sprintf("boxed class of %s", p.Name), diagnostic.Location{Declaration: p.Name})
		}
	}

	for _, c := range ts.Classes {
		cls, ok := l.Class(c.Name)
		if !ok {
			continue
		}

		loc := diagnostic.Location{Declaration: c.Name}

		for _, p := range cls.Params {
			for _, bound := range b.arena().Bounds(p) {
				b.checkType(bound, loc)
			}
		}

		for _, s := range cls.Supers {
			b.checkType(s, loc)
		}
	}

	for _, a := range ts.Aliases {
		if a.Name != "" && a.Target != "" {
			b.checkName(a.Target, "alias target", diagnostic.Location{Declaration: a.Name})
		}
	}
}

func (b *builder) buildDeclarations() {
	for i := range b.file.Declarations {
		dd := &b.file.Declarations[i]
		if dd.Name == "" {
			b.diags.AddError(diagnostic.CodeMissingName, fmt.Sprintf("declaration #%d has no name", i+1),
				diagnostic.Location{})

			continue
		}

		decl := &analyze.Declaration{
			Name:    dd.Name,
			Package: dd.Package,
			Uses:    dd.Uses,
		}

		for j := range dd.Methods {
			if m, ok := b.buildMethod(dd, &dd.Methods[j]); ok {
				decl.Methods = append(decl.Methods, m)
			}
		}

		if err := b.model.Graph.Add(decl); err != nil {
			b.diags.AddError(diagnostic.CodeDuplicateDeclaration, err.Error(),
				diagnostic.Location{Declaration: dd.QualifiedName()})

			continue
		}

		b.buildCalls(dd)
	}
}

func (b *builder) buildMethod(dd *DeclarationDef, md *MethodDef) (*analyze.Method, bool) {
	loc := diagnostic.Location{Declaration: dd.QualifiedName(), Method: md.Name}

	if md.Name == "" {
		b.diags.AddError(diagnostic.CodeMissingName, "method without a name", loc)
		return nil, false
	}

	vis, err := analyze.ParseVisibility(md.Visibility)
	if err != nil {
		b.diags.AddError(diagnostic.CodeInvalidVisibility, err.Error(), loc)
		return nil, false
	}

	m := &analyze.Method{Name: md.Name, Abstract: md.Abstract, Visibility: vis}
	ok := true

	m.TypeParams, err = b.arena().DeclareTypeParams(dd.QualifiedName()+"."+md.Name, md.TypeParams, typemodel.Env{})
	if err != nil {
		b.diags.AddError(diagnostic.CodeInvalidType, err.Error(), loc)
		return nil, false
	}

	env := typemodel.Env{Vars: make(map[string]typemodel.TypeID, len(m.TypeParams))}

	for _, v := range m.TypeParams {
		tv, _ := b.arena().Var(v)
		env.Vars[tv.Name] = v

		for _, bound := range tv.Bounds {
			b.checkType(bound, loc)
		}
	}

	for i, pd := range md.Params {
		name := pd.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}

		ploc := loc
		ploc.Parameter = name

		id, good := b.parse(pd.Type, env, ploc)
		ok = ok && good

		m.Params = append(m.Params, analyze.Parameter{
			Name:       name,
			Type:       id,
			Target:     pd.Target,
			TargetType: pd.TargetType,
		})
	}

	var good bool

	m.Return, good = b.parse(md.Returns, env, loc)
	ok = ok && good

	for _, t := range md.Throws {
		id, good := b.parse(t, env, loc)
		ok = ok && good

		m.Throws = append(m.Throws, id)
	}

	return m, ok
}

func (b *builder) buildCalls(dd *DeclarationDef) {
	qn := dd.QualifiedName()

	for _, cd := range dd.Calls {
		loc := diagnostic.Location{Declaration: qn, Method: cd.Name}
		call := plan.Call{Name: cd.Name}
		ok := true

		for _, s := range cd.Sources {
			id, good := b.parse(s, typemodel.Env{}, loc)
			ok = ok && good

			call.Shape.Sources = append(call.Shape.Sources, id)
		}

		var good bool

		call.Shape.Target, good = b.parse(cd.Target, typemodel.Env{}, loc)
		if ok && good {
			b.model.calls[qn] = append(b.model.calls[qn], call)
		}
	}
}

// checkUses warns about "uses" entries naming no declaration.
func (b *builder) checkUses() {
	for _, d := range b.model.Graph.Declarations() {
		for _, name := range d.Uses {
			if _, ok := b.model.Graph.Lookup(name); ok {
				continue
			}

			b.diags.AddWarning(diagnostic.CodeUnknownDeclaration,
				fmt.Sprintf("uses unknown declaration %q", name),
				diagnostic.Location{Declaration: d.QualifiedName()},
				b.model.Graph.Suggest(name, maxSuggestions)...)
		}
	}
}

// parse parses and checks a type expression.
func (b *builder) parse(expr string, env typemodel.Env, loc diagnostic.Location) (typemodel.TypeID, bool) {
	if expr == "" {
		b.diags.AddError(diagnostic.CodeInvalidType, "missing type", loc)
		return typemodel.NoTypeID, false
	}

	id, err := b.arena().Parse(expr, env)
	if err != nil {
		b.diags.AddError(diagnostic.CodeInvalidType, err.Error(), loc)
		return typemodel.NoTypeID, false
	}

	return id, b.checkType(id, loc)
}

// checkType reports every declared name in id that the lattice does not
// know and every argument list of the wrong length.
func (b *builder) checkType(id typemodel.TypeID, loc diagnostic.Location) bool {
	t, ok := b.arena().Lookup(id)
	if !ok {
		return false
	}

	good := true

	switch t.Kind {
	case typemodel.KindDeclared:
		cls, known := b.lattice().Class(t.Name)
		if !known {
			b.reportUnknown(t.Name, fmt.Sprintf("unknown type %q", t.Name), loc)
			good = false
		} else if len(t.Args) > 0 && len(t.Args) != len(cls.Params) {
			b.diags.AddError(diagnostic.CodeInvalidType,
				fmt.Sprintf("%s takes %d type arguments, got %d", t.Name, len(cls.Params), len(t.Args)), loc)

			good = false
		}

		for _, arg := range t.Args {
			good = b.checkType(arg, loc) && good
		}

	case typemodel.KindArray:
		good = b.checkType(t.Elem, loc)

	case typemodel.KindWildcard:
		if t.Extends != typemodel.NoTypeID {
			good = b.checkType(t.Extends, loc)
		}

		if t.Super != typemodel.NoTypeID {
			good = b.checkType(t.Super, loc)
		}
	}

	return good
}

func (b *builder) checkName(name, what string, loc diagnostic.Location) {
	if _, ok := b.lattice().Class(name); !ok {
		b.reportUnknown(name, fmt.Sprintf("unknown %s %q", what, name), loc)
	}
}

func (b *builder) reportUnknown(name, message string, loc diagnostic.Location) {
	b.diags.AddError(diagnostic.CodeUnknownType, message, loc,
		analyze.Suggest(name, b.lattice().ClassNames(), maxSuggestions)...)
}
