package typemodel

import (
	"errors"
	"fmt"
	"sort"
)

// Class describes a declared type known to a Lattice.
type Class struct {
	Name string
	// Params are the class type variables, in declaration order.
	Params []TypeID
	// Supers are the direct supertypes. They may mention Params.
	Supers []TypeID
	// Iterable marks collection-like classes; subclasses inherit the flag.
	Iterable bool
	// Enum marks enumeration classes; subclasses inherit the flag.
	Enum bool
}

// Lattice is a synthetic host type system over a hand-built class hierarchy.
// It implements Host.
//
// A Lattice is populated once and then only read; concurrent reads are safe.
type Lattice struct {
	arena   *Arena
	classes map[string]*Class
	aliases map[string]string
	boxes   map[string]string // primitive name -> boxed class name
	unboxes map[string]string // boxed class name -> primitive name
	root    string
}

var _ Host = (*Lattice)(nil)

// NewLattice creates an empty lattice over the arena.
func NewLattice(a *Arena) *Lattice {
	return &Lattice{
		arena:   a,
		classes: make(map[string]*Class),
		aliases: make(map[string]string),
		boxes:   make(map[string]string),
		unboxes: make(map[string]string),
	}
}

// Arena returns the arena the lattice works on.
func (l *Lattice) Arena() *Arena {
	return l.arena
}

// SetRoot makes name the implicit supertype of every class without explicit
// supertypes, of every array and of every unbounded type variable.
func (l *Lattice) SetRoot(name string) {
	l.root = name
}

// RootName returns the name passed to SetRoot.
func (l *Lattice) RootName() string {
	return l.root
}

// Root returns the root type, if one was set.
func (l *Lattice) Root() (TypeID, bool) {
	if l.root == "" {
		return NoTypeID, false
	}

	return l.arena.Declared(l.canonicalName(l.root)), true
}

// DefineClass registers a class.
func (l *Lattice) DefineClass(c Class) error {
	if c.Name == "" {
		return errors.New("class name is empty")
	}

	if _, ok := l.classes[c.Name]; ok {
		return fmt.Errorf("duplicate class %q", c.Name)
	}

	if _, ok := l.aliases[c.Name]; ok {
		return fmt.Errorf("class %q is already an alias", c.Name)
	}

	cls := c
	l.classes[c.Name] = &cls

	return nil
}

// Alias makes name denote the same type as target.
func (l *Lattice) Alias(name, target string) error {
	if _, ok := l.classes[name]; ok {
		return fmt.Errorf("alias %q collides with a class", name)
	}

	if _, ok := l.aliases[name]; ok {
		return fmt.Errorf("duplicate alias %q", name)
	}

	l.aliases[name] = target

	return nil
}

// DefinePrimitive registers a primitive and, when boxed is not empty, its
// boxed class.
func (l *Lattice) DefinePrimitive(name, boxed string) TypeID {
	id := l.arena.Primitive(name)
	if boxed != "" {
		l.boxes[name] = boxed
		l.unboxes[boxed] = name
	}

	return id
}

// Class returns the class registered under name, following aliases.
func (l *Lattice) Class(name string) (*Class, bool) {
	c, ok := l.classes[l.canonicalName(name)]
	return c, ok
}

// ClassNames returns all registered class and alias names, sorted.
func (l *Lattice) ClassNames() []string {
	names := make([]string, 0, len(l.classes)+len(l.aliases))
	for n := range l.classes {
		names = append(names, n)
	}

	for n := range l.aliases {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// IsSameType implements Oracle.
func (l *Lattice) IsSameType(a, b TypeID) bool {
	return l.canonical(a) == l.canonical(b)
}

// IsSubtype implements Oracle.
func (l *Lattice) IsSubtype(a, b TypeID) bool {
	a, b = l.canonical(a), l.canonical(b)
	if a == b {
		return true
	}

	ta, ok := l.arena.Lookup(a)
	if !ok {
		return false
	}

	tb, ok := l.arena.Lookup(b)
	if !ok {
		return false
	}

	switch ta.Kind {
	case KindArray:
		if tb.Kind == KindArray {
			if l.arena.IsPrimitive(ta.Elem) || l.arena.IsPrimitive(tb.Elem) {
				return ta.Elem == tb.Elem
			}

			return l.IsSubtype(ta.Elem, tb.Elem)
		}

		root, ok := l.Root()

		return ok && root == b

	case KindDeclared, KindTypeVar:
		if tb.Kind != KindDeclared {
			return false
		}

		found := false

		l.walkSupertypes(a, func(_ TypeID, t Type, _ int) bool {
			if t.Kind != KindDeclared || t.Name != tb.Name {
				return false
			}

			if len(tb.Args) == 0 {
				found = true
				return true
			}

			if len(t.Args) != len(tb.Args) {
				return false
			}

			for i := range t.Args {
				if !l.contains(t.Args[i], tb.Args[i]) {
					return false
				}
			}

			found = true

			return true
		})

		return found

	default:
		return false
	}
}

// contains reports whether type argument x is contained by type argument y.
func (l *Lattice) contains(x, y TypeID) bool {
	if x == y {
		return true
	}

	ty, ok := l.arena.Lookup(y)
	if !ok || ty.Kind != KindWildcard {
		return false
	}

	if ty.IsUnbounded() {
		return true
	}

	tx, _ := l.arena.Lookup(x)

	if ty.Extends != NoTypeID {
		if tx.Kind == KindWildcard {
			if tx.Extends != NoTypeID {
				return l.IsSubtype(tx.Extends, ty.Extends)
			}

			root, ok := l.Root()

			return ok && l.canonical(ty.Extends) == root
		}

		return l.IsSubtype(x, ty.Extends)
	}

	if tx.Kind == KindWildcard {
		return tx.Super != NoTypeID && l.IsSubtype(ty.Super, tx.Super)
	}

	return l.IsSubtype(ty.Super, x)
}

// IsAssignable implements Oracle. Besides subtyping it allows boxing,
// unboxing and unchecked conversion from a raw type.
func (l *Lattice) IsAssignable(a, b TypeID) bool {
	a, b = l.canonical(a), l.canonical(b)
	if l.IsSubtype(a, b) {
		return true
	}

	ta, _ := l.arena.Lookup(a)
	tb, _ := l.arena.Lookup(b)

	switch {
	case ta.Kind == KindPrimitive:
		boxed, ok := l.Boxed(a)
		return ok && l.IsSubtype(boxed, b)

	case tb.Kind == KindPrimitive:
		return ta.IsRaw() && l.unboxes[ta.Name] == tb.Name

	case ta.IsRaw() && tb.Kind == KindDeclared:
		return l.IsSubtype(a, l.arena.Raw(b))

	default:
		return false
	}
}

// Boxed implements Oracle.
func (l *Lattice) Boxed(primitive TypeID) (TypeID, bool) {
	t, ok := l.arena.Lookup(primitive)
	if !ok || t.Kind != KindPrimitive {
		return NoTypeID, false
	}

	name, ok := l.boxes[t.Name]
	if !ok {
		return NoTypeID, false
	}

	return l.arena.Declared(l.canonicalName(name)), true
}

// Distance implements Distancer. It counts the supertype steps on the
// shortest chain from "from" to the erasure of "to". Boxing a primitive
// counts as one step. A type variable target is measured through its first
// bound, or the root when it has none.
func (l *Lattice) Distance(from, to TypeID) int {
	from, to = l.canonical(from), l.canonical(to)
	if from == to {
		return 0
	}

	tf, ok := l.arena.Lookup(from)
	if !ok {
		return -1
	}

	tt, ok := l.arena.Lookup(to)
	if !ok {
		return -1
	}

	if tf.Kind == KindPrimitive {
		boxed, ok := l.Boxed(from)
		if !ok {
			return -1
		}

		d := l.Distance(boxed, to)
		if d < 0 {
			return -1
		}

		return d + 1
	}

	if tt.Kind == KindTypeVar {
		bounds := l.arena.Bounds(to)
		if len(bounds) > 0 {
			return l.Distance(from, bounds[0])
		}

		root, ok := l.Root()
		if !ok {
			return -1
		}

		return l.Distance(from, root)
	}

	if tf.Kind == KindArray && tt.Kind == KindArray {
		if l.arena.IsPrimitive(tf.Elem) || l.arena.IsPrimitive(tt.Elem) {
			if tf.Elem == tt.Elem {
				return 0
			}

			return -1
		}

		return l.Distance(tf.Elem, tt.Elem)
	}

	if tt.Kind != KindDeclared {
		return -1
	}

	dist := -1

	l.walkSupertypes(from, func(_ TypeID, t Type, depth int) bool {
		if t.Kind == KindDeclared && t.Name == tt.Name {
			dist = depth
			return true
		}

		return false
	})

	return dist
}

// IsIterable implements Classifier. Arrays are iterable.
func (l *Lattice) IsIterable(t TypeID) bool {
	t = l.canonical(t)
	if l.arena.Kind(t) == KindArray {
		return true
	}

	return l.anyClass(t, func(c *Class) bool { return c.Iterable })
}

// IsEnum implements Classifier.
func (l *Lattice) IsEnum(t TypeID) bool {
	return l.anyClass(l.canonical(t), func(c *Class) bool { return c.Enum })
}

func (l *Lattice) anyClass(t TypeID, pred func(*Class) bool) bool {
	switch l.arena.Kind(t) {
	case KindDeclared, KindTypeVar:
	default:
		return false
	}

	found := false

	l.walkSupertypes(t, func(_ TypeID, tt Type, _ int) bool {
		if tt.Kind != KindDeclared {
			return false
		}

		if c, ok := l.classes[tt.Name]; ok && pred(c) {
			found = true
			return true
		}

		return false
	})

	return found
}

// Supertypes returns the direct supertypes of t with class parameters
// substituted by t's type arguments.
func (l *Lattice) Supertypes(t TypeID) []TypeID {
	t = l.canonical(t)

	tt, ok := l.arena.Lookup(t)
	if !ok {
		return nil
	}

	root, hasRoot := l.Root()

	var out []TypeID

	switch tt.Kind {
	case KindDeclared:
		c, ok := l.classes[tt.Name]
		if ok {
			env := make(map[TypeID]TypeID, len(c.Params))
			if len(tt.Args) == len(c.Params) {
				for i, p := range c.Params {
					env[p] = tt.Args[i]
				}
			}

			for _, s := range c.Supers {
				if len(tt.Args) == 0 && len(c.Params) > 0 {
					out = append(out, l.canonical(l.arena.Raw(s)))
					continue
				}

				out = append(out, l.canonical(l.arena.Substitute(s, env)))
			}
		}

		if len(out) == 0 && hasRoot && t != root {
			out = append(out, root)
		}

	case KindTypeVar:
		for _, b := range l.arena.Bounds(t) {
			out = append(out, l.canonical(b))
		}

		if len(out) == 0 && hasRoot {
			out = append(out, root)
		}

	case KindArray:
		if hasRoot {
			out = append(out, root)
		}
	}

	return out
}

// walkSupertypes visits t and its supertypes breadth-first. depth is the
// number of steps from t. visit returns true to stop the walk.
func (l *Lattice) walkSupertypes(t TypeID, visit func(id TypeID, tt Type, depth int) bool) {
	type item struct {
		id    TypeID
		depth int
	}

	seen := map[TypeID]struct{}{t: {}}
	queue := []item{{id: t}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		tt, ok := l.arena.Lookup(cur.id)
		if !ok {
			continue
		}

		if visit(cur.id, tt, cur.depth) {
			return
		}

		for _, s := range l.Supertypes(cur.id) {
			if _, ok := seen[s]; ok {
				continue
			}

			seen[s] = struct{}{}
			queue = append(queue, item{id: s, depth: cur.depth + 1})
		}
	}
}

// canonicalName resolves aliases.
func (l *Lattice) canonicalName(name string) string {
	seen := map[string]struct{}{}

	for {
		target, ok := l.aliases[name]
		if !ok {
			return name
		}

		if _, loop := seen[name]; loop {
			return name
		}

		seen[name] = struct{}{}
		name = target
	}
}

// canonical rewrites every alias in t to the class it denotes.
func (l *Lattice) canonical(t TypeID) TypeID {
	if len(l.aliases) == 0 {
		return t
	}

	tt, ok := l.arena.Lookup(t)
	if !ok {
		return t
	}

	switch tt.Kind {
	case KindDeclared:
		args := make([]TypeID, len(tt.Args))
		for i, arg := range tt.Args {
			args[i] = l.canonical(arg)
		}

		return l.arena.Declared(l.canonicalName(tt.Name), args...)

	case KindArray:
		return l.arena.Array(l.canonical(tt.Elem))

	case KindWildcard:
		switch {
		case tt.Extends != NoTypeID:
			return l.arena.WildcardExtends(l.canonical(tt.Extends))
		case tt.Super != NoTypeID:
			return l.arena.WildcardSuper(l.canonical(tt.Super))
		}
	}

	return t
}
