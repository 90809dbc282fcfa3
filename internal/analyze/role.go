package analyze

//go:generate go tool stringer -type=Role -trimprefix=Role -output=role_string.go

// Role is the structural role a method plays for the resolver.
type Role int

const (
	// RoleNone marks a method that fits no role and is dropped.
	RoleNone Role = iota
	// RoleRequiresImplementation marks an abstract method of the top-level
	// declaration that the resolver must provide an implementation for.
	RoleRequiresImplementation
	// RoleReference marks an implemented method with exactly one source.
	RoleReference
	// RoleFactory marks an implemented method with no source.
	RoleFactory
)

// IsCandidate reports whether methods of this role may enter a pool.
func (r Role) IsCandidate() bool {
	return r == RoleReference || r == RoleFactory
}
