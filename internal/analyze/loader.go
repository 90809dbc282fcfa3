package analyze

import (
	"errors"
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"

	"signature-resolver/internal/common"
	"signature-resolver/internal/typemodel"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

const (
	// RootClass is the implicit supertype of imported Go types when the
	// lattice has no root yet.
	RootClass = "any"
	// MapClass is the iterable class standing for Go map types.
	MapClass = "map"
)

// Importer turns named Go types into classes of a typemodel.Lattice.
//
// Structs and non-interface named types become classes whose supertypes are
// their embedded named types and the non-empty interfaces of the same
// package they (or their pointer) implement. Interfaces become classes whose
// supertypes are their embedded interfaces. Slices, arrays, maps and
// channels are iterable; named basic types with declared constants are enums.
type Importer struct {
	// Dir is the directory packages are loaded from. Empty means the
	// current directory.
	Dir string

	lattice *typemodel.Lattice
	arena   *typemodel.Arena
	params  map[*types.TypeParam]typemodel.TypeID
	done    map[string]struct{}
}

// NewImporter creates an Importer writing into l.
func NewImporter(l *typemodel.Lattice) *Importer {
	return &Importer{
		lattice: l,
		arena:   l.Arena(),
		params:  make(map[*types.TypeParam]typemodel.TypeID),
		done:    make(map[string]struct{}),
	}
}

// LoadPackages loads the packages matching patterns and imports them.
// Patterns are standard Go package patterns (e.g., "./domain", "example.com/x/...").
func (im *Importer) LoadPackages(patterns ...string) error {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  im.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		if err := im.ImportPackage(pkg.Types); err != nil {
			return fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return nil
}

// ImportPackage imports the exported named types of a type-checked package.
// Importing the same package twice is a no-op.
func (im *Importer) ImportPackage(pkg *types.Package) error {
	im.ensureBuiltins()

	scope := pkg.Scope()

	var (
		named  []*types.Named
		ifaces []*types.Named
	)

	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() || tn.IsAlias() {
			continue
		}

		n, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}

		named = append(named, n)

		if it, ok := n.Underlying().(*types.Interface); ok && !it.Empty() && n.TypeParams().Len() == 0 {
			ifaces = append(ifaces, n)
		}
	}

	enums := enumTypes(scope)

	for _, n := range named {
		if err := im.importNamed(n, ifaces, enums); err != nil {
			return fmt.Errorf("package %s: %w", pkg.Path(), err)
		}
	}

	return nil
}

func (im *Importer) importNamed(n *types.Named, ifaces []*types.Named, enums map[*types.TypeName]bool) error {
	name := qualify(n.Obj())
	if _, ok := im.done[name]; ok {
		return nil
	}

	params, err := im.declareParams(name, n.TypeParams())
	if err != nil {
		return err
	}

	cls := typemodel.Class{
		Name:   name,
		Params: params,
		Enum:   enums[n.Obj()],
	}

	switch u := n.Underlying().(type) {
	case *types.Interface:
		for i := range u.NumEmbeddeds() {
			if e, ok := u.EmbeddedType(i).(*types.Named); ok {
				cls.Supers = append(cls.Supers, im.convert(e))
			}
		}

	case *types.Struct:
		for i := range u.NumFields() {
			f := u.Field(i)
			if !f.Embedded() {
				continue
			}

			if e, ok := deref(f.Type()).(*types.Named); ok {
				cls.Supers = append(cls.Supers, im.convert(e))
			}
		}

	case *types.Slice, *types.Array, *types.Map, *types.Chan:
		cls.Iterable = true
	}

	if _, isIface := n.Underlying().(*types.Interface); !isIface && n.TypeParams().Len() == 0 {
		for _, iface := range ifaces {
			it, _ := iface.Underlying().(*types.Interface)

			if types.Implements(n, it) || types.Implements(types.NewPointer(n), it) {
				cls.Supers = append(cls.Supers, im.convert(iface))
			}
		}
	}

	if err := im.lattice.DefineClass(cls); err != nil {
		return err
	}

	im.done[name] = struct{}{}

	return nil
}

// declareParams creates one variable per Go type parameter. A constraint
// that is a named non-empty interface becomes the variable's bound; other
// constraints (any, comparable, type sets) leave it unbounded.
func (im *Importer) declareParams(owner string, list *types.TypeParamList) ([]typemodel.TypeID, error) {
	if list.Len() == 0 {
		return nil, nil
	}

	ids := make([]typemodel.TypeID, list.Len())

	for i := range list.Len() {
		tp := list.At(i)
		ids[i] = im.arena.NewTypeVar(owner, tp.Obj().Name())
		im.params[tp] = ids[i]
	}

	for i := range list.Len() {
		c, ok := list.At(i).Constraint().(*types.Named)
		if !ok {
			continue
		}

		if it, ok := c.Underlying().(*types.Interface); !ok || it.Empty() || !it.IsMethodSet() {
			continue
		}

		if err := im.arena.SetBounds(ids[i], im.convert(c)); err != nil {
			return nil, err
		}
	}

	return ids, nil
}

// convert maps a Go type onto the arena. Pointers are transparent.
func (im *Importer) convert(t types.Type) typemodel.TypeID {
	switch tt := t.(type) {
	case *types.Alias:
		return im.convert(types.Unalias(tt))

	case *types.Basic:
		return im.lattice.DefinePrimitive(tt.Name(), "")

	case *types.Pointer:
		return im.convert(tt.Elem())

	case *types.Slice:
		return im.arena.Array(im.convert(tt.Elem()))

	case *types.Array:
		return im.arena.Array(im.convert(tt.Elem()))

	case *types.Map:
		return im.arena.Declared(MapClass, im.convert(tt.Key()), im.convert(tt.Elem()))

	case *types.TypeParam:
		if id, ok := im.params[tt]; ok {
			return id
		}

		return im.root()

	case *types.Named:
		args := tt.TypeArgs()
		ids := make([]typemodel.TypeID, args.Len())

		for i := range args.Len() {
			ids[i] = im.convert(args.At(i))
		}

		return im.arena.Declared(qualify(tt.Obj()), ids...)

	case *types.Interface:
		return im.root()

	default:
		return im.arena.Declared(t.String())
	}
}

func (im *Importer) root() typemodel.TypeID {
	if root, ok := im.lattice.Root(); ok {
		return root
	}

	return im.arena.Declared(RootClass)
}

// ensureBuiltins defines the root and map classes when the lattice lacks them.
func (im *Importer) ensureBuiltins() {
	if _, ok := im.lattice.Root(); !ok {
		if _, exists := im.lattice.Class(RootClass); !exists {
			_ = im.lattice.DefineClass(typemodel.Class{Name: RootClass})
		}

		im.lattice.SetRoot(RootClass)
	}

	if _, ok := im.lattice.Class(MapClass); !ok {
		k := im.arena.NewTypeVar(MapClass, "K")
		v := im.arena.NewTypeVar(MapClass, "V")
		_ = im.lattice.DefineClass(typemodel.Class{Name: MapClass, Params: []typemodel.TypeID{k, v}, Iterable: true})
	}
}

// enumTypes collects named basic types that have constants declared in scope.
func enumTypes(scope *types.Scope) map[*types.TypeName]bool {
	out := make(map[*types.TypeName]bool)

	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}

		n, ok := c.Type().(*types.Named)
		if !ok {
			continue
		}

		if _, basic := n.Underlying().(*types.Basic); basic {
			out[n.Obj()] = true
		}
	}

	return out
}

func qualify(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}

	return common.Qualify(obj.Pkg().Path(), obj.Name())
}

func deref(t types.Type) types.Type {
	if p, ok := t.(*types.Pointer); ok {
		return p.Elem()
	}

	return t
}
