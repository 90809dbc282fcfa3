package typemodel

// Oracle answers type-system questions about concrete types. It is supplied
// by the host environment; the matcher never reimplements these relations.
type Oracle interface {
	// IsSameType reports whether a and b denote the same type.
	IsSameType(a, b TypeID) bool
	// IsSubtype reports whether a is a subtype of b (reflexive).
	IsSubtype(a, b TypeID) bool
	// IsAssignable reports whether a value of type a can be assigned to b.
	IsAssignable(a, b TypeID) bool
	// Boxed returns the declared equivalent of a primitive type.
	Boxed(primitive TypeID) (TypeID, bool)
	// Root returns the implicit upper bound of every declared type, if the
	// host has one. It stands in for the bound of an unbounded variable.
	Root() (TypeID, bool)
}

// Distancer measures how many generalization steps separate two types.
// A negative distance means "to" is not reachable from "from".
type Distancer interface {
	Distance(from, to TypeID) int
}

// Classifier answers the shape questions used when validating candidates.
type Classifier interface {
	IsIterable(t TypeID) bool
	IsEnum(t TypeID) bool
}

// Host bundles every question the resolver asks of the host type system.
type Host interface {
	Oracle
	Distancer
	Classifier
}
