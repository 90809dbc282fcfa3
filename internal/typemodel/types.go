package typemodel

import (
	"fmt"
)

// TypeID uniquely identifies a type node inside an Arena.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the supported kinds of type nodes.
type Kind uint8

const (
	KindInvalid   Kind = iota
	KindVoid           // absent result
	KindPrimitive      // int, boolean, ...
	KindArray          // component[]
	KindDeclared       // Name<Args...>
	KindTypeVar        // declared type variable
	KindWildcard       // ?, ? extends B, ? super B
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindDeclared:
		return "declared"
	case KindTypeVar:
		return "typevar"
	case KindWildcard:
		return "wildcard"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is an immutable node descriptor.
type Type struct {
	Kind Kind
	// Name is set for primitives, declared types and type variables.
	Name string
	// Elem is the array component.
	Elem TypeID
	// Args are the declared type arguments, in order.
	Args []TypeID
	// Extends is the upper bound of a wildcard.
	Extends TypeID
	// Super is the lower bound of a wildcard.
	Super TypeID
	// Slot is the index of a type variable in the arena's variable table.
	Slot uint32
}

// IsRaw reports whether t is a declared type without type arguments.
func (t Type) IsRaw() bool {
	return t.Kind == KindDeclared && len(t.Args) == 0
}

// IsUnbounded reports whether t is the unbounded wildcard "?".
func (t Type) IsUnbounded() bool {
	return t.Kind == KindWildcard && t.Extends == NoTypeID && t.Super == NoTypeID
}

// Var describes a declared type variable.
type Var struct {
	ID    TypeID
	Name  string
	Owner string // declaring method or class, for diagnostics
	// Bounds form an intersection; only the first may be class-shaped.
	Bounds []TypeID
}
