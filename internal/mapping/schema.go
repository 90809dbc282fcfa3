package mapping

// File is the root of a declaration file.
type File struct {
	// Version is the schema version (currently "1").
	Version string `yaml:"version"`

	// Types describes the type system the declarations refer to.
	Types TypeSection `yaml:"types,omitempty"`

	// Declarations are the mapper declarations.
	Declarations []DeclarationDef `yaml:"declarations"`

	// BaseDir is the directory GoPackages patterns are relative to.
	BaseDir string `yaml:"-"`
}

// TypeSection populates the type lattice.
type TypeSection struct {
	// Preset pre-populates the lattice before the classes below are added.
	Preset string `yaml:"preset,omitempty"`

	// Root is the implicit supertype of every class without supertypes.
	Root string `yaml:"root,omitempty"`

	// GoPackages are Go package patterns whose exported named types are
	// imported as classes.
	GoPackages StringOrArray `yaml:"go_packages,omitempty"`

	Primitives []PrimitiveDef `yaml:"primitives,omitempty"`
	Classes    []ClassDef     `yaml:"classes,omitempty"`
	Aliases    []AliasDef     `yaml:"aliases,omitempty"`
}

// PrimitiveDef declares a primitive type and its boxed class.
type PrimitiveDef struct {
	Name  string `yaml:"name"`
	Boxed string `yaml:"boxed,omitempty"`
}

// ClassDef declares a class of the lattice.
type ClassDef struct {
	Name string `yaml:"name"`

	// Params are type parameter declarations, e.g. "E" or "T extends Comparable<T>".
	Params StringOrArray `yaml:"params,omitempty"`

	// Supers are the direct supertypes; they may mention Params.
	Supers StringOrArray `yaml:"supers,omitempty"`

	Iterable bool `yaml:"iterable,omitempty"`
	Enum     bool `yaml:"enum,omitempty"`
}

// AliasDef makes Name denote the same type as Target.
type AliasDef struct {
	Name   string `yaml:"name"`
	Target string `yaml:"target"`
}

// DeclarationDef describes a mapper declaration.
type DeclarationDef struct {
	Name    string `yaml:"name"`
	Package string `yaml:"package,omitempty"`

	// Uses names the declarations whose methods are offered as candidates.
	Uses StringOrArray `yaml:"uses,omitempty"`

	Methods []MethodDef `yaml:"methods,omitempty"`

	// Calls are the call shapes to resolve against this declaration's pool.
	Calls []CallDef `yaml:"calls,omitempty"`
}

// QualifiedName returns "package.Name", or Name without a package.
func (d *DeclarationDef) QualifiedName() string {
	if d.Package == "" {
		return d.Name
	}

	return d.Package + "." + d.Name
}

// MethodDef describes a method of a declaration.
type MethodDef struct {
	Name     string `yaml:"name"`
	Abstract bool   `yaml:"abstract,omitempty"`

	// TypeParams are type parameter declarations with optional bounds.
	TypeParams StringOrArray `yaml:"type_params,omitempty"`

	Params []ParamDef `yaml:"params,omitempty"`

	// Returns is the return type expression; empty means void.
	Returns string `yaml:"returns,omitempty"`

	Throws StringOrArray `yaml:"throws,omitempty"`

	// Visibility is public, protected, package or private.
	Visibility string `yaml:"visibility,omitempty"`
}

// ParamDef describes a method parameter. Besides the full mapping form it
// accepts the shorthand "name: Type" and a bare type expression.
type ParamDef struct {
	Name string `yaml:"name,omitempty"`
	Type string `yaml:"type"`

	// Target marks the parameter receiving the mapping result.
	Target bool `yaml:"target,omitempty"`

	// TargetType marks a hint parameter carrying the requested result class.
	TargetType bool `yaml:"target_type,omitempty"`
}

// CallDef is a call shape to resolve.
type CallDef struct {
	Name    string        `yaml:"name"`
	Sources StringOrArray `yaml:"sources,omitempty"`
	Target  string        `yaml:"target"`
}
