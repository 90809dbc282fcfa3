package plan

import (
	"fmt"
	"strings"

	"signature-resolver/internal/analyze"
	"signature-resolver/internal/diagnostic"
	"signature-resolver/internal/typemodel"
)

// AccessPredicate reports whether code generated for from may call method
// m declared on owner.
type AccessPredicate func(from, owner *analyze.Declaration, m *analyze.Method) bool

// DefaultAccess allows public methods everywhere, protected and
// package-private methods inside the same package, and private methods only
// inside their own declaration.
func DefaultAccess(from, owner *analyze.Declaration, m *analyze.Method) bool {
	switch m.Visibility {
	case analyze.VisibilityPublic:
		return true
	case analyze.VisibilityProtected, analyze.VisibilityPackage:
		return from.Package == owner.Package
	default:
		return from == owner
	}
}

// Retrieval is the outcome of walking a top-level declaration.
type Retrieval struct {
	Top *analyze.Declaration
	// Closure lists the top-level declaration and every declaration reachable
	// through "uses", in depth-first discovery order.
	Closure []*analyze.Declaration
	// BuildOrder lists the closure with used declarations before their users.
	BuildOrder []*analyze.Declaration
	// ToImplement holds the validated methods requiring implementation.
	ToImplement []*analyze.Method
	Pool        *Pool
	Diagnostics diagnostic.Diagnostics
}

// Retriever collects candidate methods from a declaration graph.
type Retriever struct {
	graph          *analyze.Graph
	arena          *typemodel.Arena
	validator      *Validator
	access         AccessPredicate
	maxSuggestions int
}

// NewRetriever creates a Retriever. A nil access predicate means DefaultAccess.
func NewRetriever(
	graph *analyze.Graph,
	arena *typemodel.Arena,
	validator *Validator,
	access AccessPredicate,
	maxSuggestions int,
) *Retriever {
	if access == nil {
		access = DefaultAccess
	}

	return &Retriever{
		graph:          graph,
		arena:          arena,
		validator:      validator,
		access:         access,
		maxSuggestions: maxSuggestions,
	}
}

// Retrieve walks top and its transitive "uses" closure. Structural problems
// are collected in Retrieval.Diagnostics; an unknown declaration or a cyclic
// "uses" graph aborts with a *ConfigurationFault.
func (r *Retriever) Retrieve(top string) (*Retrieval, error) {
	decl, ok := r.graph.Lookup(top)
	if !ok {
		return nil, &ConfigurationFault{
			Declaration: top,
			Reason:      "unknown top-level declaration",
			Suggestions: r.graph.Suggest(top, r.maxSuggestions),
			Err:         ErrUnknownDeclaration,
		}
	}

	ret := &Retrieval{Top: decl, Pool: NewPool()}

	if err := r.walk(ret); err != nil {
		return nil, err
	}

	if err := r.order(ret); err != nil {
		return nil, err
	}

	for _, d := range ret.Closure {
		r.collect(ret, d)
	}

	return ret, nil
}

// walk fills Closure depth-first. A declaration reached a second time is
// reported once as a duplicate origin and not walked again.
func (r *Retriever) walk(ret *Retrieval) error {
	seen := make(map[*analyze.Declaration]bool)

	var visit func(d *analyze.Declaration) error

	visit = func(d *analyze.Declaration) error {
		seen[d] = true
		ret.Closure = append(ret.Closure, d)

		for _, name := range d.Uses {
			used, ok := r.graph.Lookup(name)
			if !ok {
				return &ConfigurationFault{
					Declaration: d.QualifiedName(),
					Reason:      fmt.Sprintf("unresolvable uses reference %q", name),
					Suggestions: r.graph.Suggest(name, r.maxSuggestions),
					Err:         ErrUnknownDeclaration,
				}
			}

			if seen[used] {
				ret.Diagnostics.AddInfo(diagnostic.CodeDuplicateOrigin,
					fmt.Sprintf("%s is reachable along more than one path", used.QualifiedName()),
					diagnostic.Location{Declaration: d.QualifiedName()})

				continue
			}

			if err := visit(used); err != nil {
				return err
			}
		}

		return nil
	}

	return visit(ret.Top)
}

// order computes BuildOrder and rejects cyclic "uses" graphs.
func (r *Retriever) order(ret *Retrieval) error {
	idx := make(map[*analyze.Declaration]int, len(ret.Closure))
	for i, d := range ret.Closure {
		idx[d] = i
	}

	order, stuck, err := topoSort(len(ret.Closure), func(i int) []int {
		var deps []int

		for _, name := range ret.Closure[i].Uses {
			if used, ok := r.graph.Lookup(name); ok {
				deps = append(deps, idx[used])
			}
		}

		return deps
	})
	if err != nil {
		names := make([]string, len(stuck))
		for i, s := range stuck {
			names[i] = ret.Closure[s].QualifiedName()
		}

		return &ConfigurationFault{
			Declaration: ret.Top.QualifiedName(),
			Reason:      "cyclic uses among " + strings.Join(names, ", "),
			Err:         fmt.Errorf("%w: %w", ErrCyclicUses, err),
		}
	}

	for _, i := range order {
		ret.BuildOrder = append(ret.BuildOrder, ret.Closure[i])
	}

	return nil
}

func (r *Retriever) collect(ret *Retrieval, d *analyze.Declaration) {
	isTop := d == ret.Top

	for _, m := range d.Methods {
		role := r.validator.Classify(m, isTop)

		switch {
		case role == analyze.RoleRequiresImplementation:
			if r.validator.ValidateImplementation(d, m, &ret.Diagnostics) {
				ret.ToImplement = append(ret.ToImplement, m)
			}

		case role.IsCandidate():
			if !r.access(ret.Top, d, m) {
				ret.Diagnostics.AddInfo(diagnostic.CodeInaccessibleCandidate,
					fmt.Sprintf("%s is %s and not accessible from %s",
						m.Signature(r.arena), m.Visibility, ret.Top.QualifiedName()),
					diagnostic.Location{Declaration: d.QualifiedName(), Method: m.Name})

				continue
			}

			ret.Pool.Add(NewCandidate(r.arena, d, ret.Top, m, role))

		default:
			// fits no role; dropped silently
		}
	}
}
