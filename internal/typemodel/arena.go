package typemodel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fortio.org/safecast"
)

// Arena stores type nodes and hands out stable TypeIDs.
//
// Structural nodes are interned. Type variables are not: NewTypeVar always
// returns a fresh identity. An Arena is safe for concurrent use; substitution
// may intern new nodes while resolutions run in parallel.
type Arena struct {
	mu         sync.RWMutex
	types      []Type
	index      map[string]TypeID
	vars       []Var
	primitives map[string]struct{}
	void       TypeID
}

// NewArena constructs an arena with the invalid sentinel and void reserved.
func NewArena() *Arena {
	a := &Arena{
		index:      make(map[string]TypeID, 64),
		primitives: make(map[string]struct{}),
	}
	a.types = append(a.types, Type{Kind: KindInvalid})
	a.void = a.intern(Type{Kind: KindVoid})

	return a
}

// Void returns the void type.
func (a *Arena) Void() TypeID {
	return a.void
}

// Primitive returns the primitive type with the given name and records the
// name so the parser recognizes it.
func (a *Arena) Primitive(name string) TypeID {
	a.mu.Lock()
	a.primitives[name] = struct{}{}
	a.mu.Unlock()

	return a.intern(Type{Kind: KindPrimitive, Name: name})
}

// IsPrimitiveName reports whether name was registered as a primitive.
func (a *Arena) IsPrimitiveName(name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	_, ok := a.primitives[name]

	return ok
}

// Array returns the array type with the given component.
func (a *Arena) Array(elem TypeID) TypeID {
	return a.intern(Type{Kind: KindArray, Elem: elem})
}

// Declared returns the declared type name<args...>.
func (a *Arena) Declared(name string, args ...TypeID) TypeID {
	return a.intern(Type{Kind: KindDeclared, Name: name, Args: append([]TypeID(nil), args...)})
}

// Wildcard returns the unbounded wildcard.
func (a *Arena) Wildcard() TypeID {
	return a.intern(Type{Kind: KindWildcard})
}

// WildcardExtends returns "? extends bound".
func (a *Arena) WildcardExtends(bound TypeID) TypeID {
	return a.intern(Type{Kind: KindWildcard, Extends: bound})
}

// WildcardSuper returns "? super bound".
func (a *Arena) WildcardSuper(bound TypeID) TypeID {
	return a.intern(Type{Kind: KindWildcard, Super: bound})
}

// NewTypeVar creates a fresh type variable without bounds.
func (a *Arena) NewTypeVar(owner, name string) TypeID {
	a.mu.Lock()
	defer a.mu.Unlock()

	slot, err := safecast.Conv[uint32](len(a.vars))
	if err != nil {
		panic(fmt.Errorf("len(vars) overflow: %w", err))
	}

	id := a.appendLocked(Type{Kind: KindTypeVar, Name: name, Slot: slot})
	a.vars = append(a.vars, Var{ID: id, Name: name, Owner: owner})

	return id
}

// SetBounds attaches bounds to a type variable created by NewTypeVar.
func (a *Arena) SetBounds(v TypeID, bounds ...TypeID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, ok := a.lookupLocked(v)
	if !ok || t.Kind != KindTypeVar {
		return fmt.Errorf("type %d is not a type variable", v)
	}

	for _, b := range bounds {
		if b == NoTypeID || int(b) >= len(a.types) {
			return errors.New("bound refers to an unknown type")
		}
	}

	a.vars[t.Slot].Bounds = append([]TypeID(nil), bounds...)

	return nil
}

// Var returns the variable record for a type variable.
func (a *Arena) Var(v TypeID) (Var, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	t, ok := a.lookupLocked(v)
	if !ok || t.Kind != KindTypeVar {
		return Var{}, false
	}

	return a.vars[t.Slot], true
}

// Bounds returns the declared bounds of a type variable.
func (a *Arena) Bounds(v TypeID) []TypeID {
	tv, ok := a.Var(v)
	if !ok {
		return nil
	}

	return tv.Bounds
}

// Lookup returns the descriptor for a TypeID.
func (a *Arena) Lookup(id TypeID) (Type, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.lookupLocked(id)
}

// Kind returns the kind of id, or KindInvalid.
func (a *Arena) Kind(id TypeID) Kind {
	t, _ := a.Lookup(id)
	return t.Kind
}

// IsPrimitive reports whether id is a primitive type.
func (a *Arena) IsPrimitive(id TypeID) bool {
	return a.Kind(id) == KindPrimitive
}

// IsVoid reports whether id is void.
func (a *Arena) IsVoid(id TypeID) bool {
	return id == a.void
}

// Raw returns the erasure of a declared type (its name without arguments).
// Other kinds are returned unchanged.
func (a *Arena) Raw(id TypeID) TypeID {
	t, ok := a.Lookup(id)
	if !ok || t.Kind != KindDeclared || len(t.Args) == 0 {
		return id
	}

	return a.Declared(t.Name)
}

// Substitute replaces type variables according to env.
func (a *Arena) Substitute(id TypeID, env map[TypeID]TypeID) TypeID {
	if len(env) == 0 {
		return id
	}

	t, ok := a.Lookup(id)
	if !ok {
		return id
	}

	switch t.Kind {
	case KindTypeVar:
		if r, ok := env[id]; ok {
			return r
		}

		return id

	case KindArray:
		return a.Array(a.Substitute(t.Elem, env))

	case KindDeclared:
		if len(t.Args) == 0 {
			return id
		}

		args := make([]TypeID, len(t.Args))
		for i, arg := range t.Args {
			args[i] = a.Substitute(arg, env)
		}

		return a.Declared(t.Name, args...)

	case KindWildcard:
		switch {
		case t.Extends != NoTypeID:
			return a.WildcardExtends(a.Substitute(t.Extends, env))
		case t.Super != NoTypeID:
			return a.WildcardSuper(a.Substitute(t.Super, env))
		default:
			return id
		}

	default:
		return id
	}
}

// String formats a type the way it would be written in a declaration.
func (a *Arena) String(id TypeID) string {
	var b strings.Builder
	a.format(&b, id)

	return b.String()
}

func (a *Arena) format(b *strings.Builder, id TypeID) {
	t, ok := a.Lookup(id)
	if !ok {
		b.WriteString("<invalid>")
		return
	}

	switch t.Kind {
	case KindVoid:
		b.WriteString("void")

	case KindPrimitive, KindTypeVar:
		b.WriteString(t.Name)

	case KindArray:
		a.format(b, t.Elem)
		b.WriteString("[]")

	case KindDeclared:
		b.WriteString(t.Name)

		if len(t.Args) > 0 {
			b.WriteByte('<')

			for i, arg := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}

				a.format(b, arg)
			}

			b.WriteByte('>')
		}

	case KindWildcard:
		b.WriteByte('?')

		switch {
		case t.Extends != NoTypeID:
			b.WriteString(" extends ")
			a.format(b, t.Extends)
		case t.Super != NoTypeID:
			b.WriteString(" super ")
			a.format(b, t.Super)
		}

	default:
		b.WriteString("<invalid>")
	}
}

// intern returns the existing ID for t or stores it.
func (a *Arena) intern(t Type) TypeID {
	key := typeKey(t)

	a.mu.RLock()
	id, ok := a.index[key]
	a.mu.RUnlock()

	if ok {
		return id
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if id, ok := a.index[key]; ok {
		return id
	}

	id = a.appendLocked(t)
	a.index[key] = id

	return id
}

func (a *Arena) appendLocked(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(a.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}

	a.types = append(a.types, t)

	return TypeID(n)
}

func (a *Arena) lookupLocked(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(a.types) {
		return Type{}, false
	}

	return a.types[id], true
}

func typeKey(t Type) string {
	var b strings.Builder

	b.WriteString(strconv.Itoa(int(t.Kind)))
	b.WriteByte('|')
	b.WriteString(t.Name)
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(uint64(t.Elem), 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(uint64(t.Extends), 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(uint64(t.Super), 10))

	for _, arg := range t.Args {
		b.WriteByte(',')
		b.WriteString(strconv.FormatUint(uint64(arg), 10))
	}

	return b.String()
}
