package analyze

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"signature-resolver/internal/common"
	"signature-resolver/internal/typemodel"
)

// Visibility is the declared access level of a method.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityProtected
	VisibilityPackage
	VisibilityPrivate
)

// String returns the lowercase keyword for the visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityPackage:
		return "package"
	case VisibilityPrivate:
		return "private"
	default:
		return common.UnknownStr
	}
}

// ParseVisibility parses a visibility keyword. The empty string is public.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "public":
		return VisibilityPublic, nil
	case "protected":
		return VisibilityProtected, nil
	case "package", "package-private":
		return VisibilityPackage, nil
	case "private":
		return VisibilityPrivate, nil
	default:
		return VisibilityPublic, fmt.Errorf("unknown visibility %q", s)
	}
}

// Parameter is a typed method parameter.
type Parameter struct {
	Name string
	Type typemodel.TypeID
	// Target marks the parameter that receives the mapping result.
	Target bool
	// TargetType marks a hint parameter carrying the requested result class.
	TargetType bool
}

// IsSource reports whether p is an ordinary source parameter.
func (p Parameter) IsSource() bool {
	return !p.Target && !p.TargetType
}

// Method is a method of a declaration.
type Method struct {
	Name       string
	Params     []Parameter
	Return     typemodel.TypeID
	Throws     []typemodel.TypeID
	TypeParams []typemodel.TypeID
	Abstract   bool
	Visibility Visibility
}

// SourceParameters returns the source parameters in declaration order.
func (m *Method) SourceParameters() []Parameter {
	return m.filter(Parameter.IsSource)
}

// TargetParameters returns the parameters flagged as mapping target.
func (m *Method) TargetParameters() []Parameter {
	return m.filter(func(p Parameter) bool { return p.Target })
}

// TargetTypeParameters returns the target-type hint parameters.
func (m *Method) TargetTypeParameters() []Parameter {
	return m.filter(func(p Parameter) bool { return p.TargetType && !p.Target })
}

func (m *Method) filter(keep func(Parameter) bool) []Parameter {
	var out []Parameter

	for _, p := range m.Params {
		if keep(p) {
			out = append(out, p)
		}
	}

	return out
}

// Signature renders "name(T1, T2): R" for identities and messages.
func (m *Method) Signature(a *typemodel.Arena) string {
	var b strings.Builder

	b.WriteString(m.Name)
	b.WriteByte('(')

	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(a.String(p.Type))
	}

	b.WriteString("): ")
	b.WriteString(a.String(m.Return))

	return b.String()
}

// Declaration is a named provider of methods.
type Declaration struct {
	Name    string
	Package string
	Methods []*Method
	// Uses names the declarations whose implemented methods are offered as
	// candidates to this one.
	Uses []string
}

// QualifiedName returns "package.Name", or Name without a package.
func (d *Declaration) QualifiedName() string {
	if d.Package == "" {
		return d.Name
	}

	return d.Package + "." + d.Name
}

// Graph indexes declarations by simple and qualified name.
type Graph struct {
	decls map[string]*Declaration
	names map[string]string // simple or qualified name -> qualified name
	order []string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		decls: make(map[string]*Declaration),
		names: make(map[string]string),
	}
}

// Add registers a declaration.
func (g *Graph) Add(d *Declaration) error {
	if d.Name == "" {
		return errors.New("declaration name is empty")
	}

	qn := d.QualifiedName()
	if _, ok := g.decls[qn]; ok {
		return fmt.Errorf("duplicate declaration %q", qn)
	}

	g.decls[qn] = d
	g.order = append(g.order, qn)
	g.names[qn] = qn

	// A simple name shared by two packages is only reachable qualified.
	if prev, ok := g.names[d.Name]; ok && prev != qn {
		g.names[d.Name] = ""
	} else if !ok {
		g.names[d.Name] = qn
	}

	return nil
}

// Lookup finds a declaration by qualified or unambiguous simple name.
func (g *Graph) Lookup(name string) (*Declaration, bool) {
	qn, ok := g.names[name]
	if !ok || qn == "" {
		return nil, false
	}

	d, ok := g.decls[qn]

	return d, ok
}

// Declarations returns all declarations in insertion order.
func (g *Graph) Declarations() []*Declaration {
	out := make([]*Declaration, 0, len(g.order))
	for _, qn := range g.order {
		out = append(out, g.decls[qn])
	}

	return out
}

// Names returns every name Lookup accepts, sorted.
func (g *Graph) Names() []string {
	out := make([]string, 0, len(g.names))

	for n, qn := range g.names {
		if qn != "" {
			out = append(out, n)
		}
	}

	sort.Strings(out)

	return out
}

// Suggest returns up to limit known names close to name.
func (g *Graph) Suggest(name string, limit int) []string {
	return Suggest(name, g.Names(), limit)
}
