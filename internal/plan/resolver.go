package plan

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"signature-resolver/internal/analyze"
	"signature-resolver/internal/match"
	"signature-resolver/internal/typemodel"
)

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// Workers bounds the number of call shapes resolved concurrently
	// (0 = GOMAXPROCS).
	Workers int
	// StrictMode fails a retrieval that produced error diagnostics.
	StrictMode bool
	// MaxSuggestions is the maximum number of "did you mean" names in a fault.
	MaxSuggestions int
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		Workers:        0,
		StrictMode:     false,
		MaxSuggestions: 3,
	}
}

// ErrStrictMode is returned in strict mode when retrieval reported errors.
var ErrStrictMode = errors.New("strict mode: retrieval failed with errors")

// Call is a named call shape to resolve.
type Call struct {
	Name  string
	Shape match.CallShape
}

// Resolution is the outcome of resolving one call.
type Resolution struct {
	Call Call
	// Matches are all pool candidates the matcher accepted, in pool order.
	Matches []Match
	// Selected is the subset kept by the selector; ties are all kept.
	Selected []Match
}

// Resolved reports whether exactly one candidate was selected.
func (r *Resolution) Resolved() bool {
	return len(r.Selected) == 1
}

// Ambiguous reports whether several candidates tie.
func (r *Resolution) Ambiguous() bool {
	return len(r.Selected) > 1
}

// ResolvedPlan bundles a retrieval with the resolutions computed on its pool.
type ResolvedPlan struct {
	Retrieval   *Retrieval
	Resolutions []Resolution
}

// Resolver performs the resolution pipeline.
type Resolver struct {
	arena     *typemodel.Arena
	graph     *analyze.Graph
	config    ResolutionConfig
	matcher   *match.Matcher
	retriever *Retriever
	selector  Selector
}

// NewResolver creates a Resolver over a host type system and a declaration
// graph, with the inheritance selector and the default access predicate.
func NewResolver(
	arena *typemodel.Arena,
	host typemodel.Host,
	graph *analyze.Graph,
	config ResolutionConfig,
) *Resolver {
	return &Resolver{
		arena:     arena,
		graph:     graph,
		config:    config,
		matcher:   match.NewMatcher(arena, host),
		retriever: NewRetriever(graph, arena, NewValidator(arena, host), nil, config.MaxSuggestions),
		selector:  NewInheritanceSelector(host),
	}
}

// WithSelector replaces the selector, e.g. with a Chain ending in a
// qualifier-based tie-break.
func (r *Resolver) WithSelector(s Selector) *Resolver {
	r.selector = s
	return r
}

// WithAccess replaces the access predicate.
func (r *Resolver) WithAccess(p AccessPredicate) *Resolver {
	r.retriever.access = p
	if p == nil {
		r.retriever.access = DefaultAccess
	}

	return r
}

// Retrieve builds the candidate pool of a top-level declaration.
func (r *Resolver) Retrieve(top string) (*Retrieval, error) {
	ret, err := r.retriever.Retrieve(top)
	if err != nil {
		return nil, err
	}

	if r.config.StrictMode && ret.Diagnostics.HasErrors() {
		return ret, ErrStrictMode
	}

	return ret, nil
}

// ResolveCall matches every pool candidate against the call and selects
// among the survivors.
func (r *Resolver) ResolveCall(pool *Pool, call Call) Resolution {
	res := Resolution{Call: call}

	for _, c := range pool.Candidates() {
		b, ok := r.matcher.Match(c.Signature, call.Shape)
		if !ok {
			continue
		}

		res.Matches = append(res.Matches, Match{Candidate: c, Bindings: b, Distance: -1})
	}

	res.Selected = res.Matches
	if r.selector != nil && len(res.Matches) > 0 {
		res.Selected = r.selector.Select(call.Shape, res.Matches)
	}

	return res
}

// ResolveAll resolves independent calls concurrently. Results keep the order
// of calls. Cancelling ctx stops scheduling further calls.
func (r *Resolver) ResolveAll(ctx context.Context, pool *Pool, calls []Call) ([]Resolution, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	workers := r.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// indices are unique per goroutine, no mutex needed
	results := make([]Resolution, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(calls)))

	for i, call := range calls {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = r.ResolveCall(pool, call)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// Resolve retrieves the pool of top and resolves calls against it.
func (r *Resolver) Resolve(ctx context.Context, top string, calls []Call) (*ResolvedPlan, error) {
	ret, err := r.Retrieve(top)
	if err != nil {
		return &ResolvedPlan{Retrieval: ret}, err
	}

	resolutions, err := r.ResolveAll(ctx, ret.Pool, calls)
	if err != nil {
		return &ResolvedPlan{Retrieval: ret}, err
	}

	return &ResolvedPlan{Retrieval: ret, Resolutions: resolutions}, nil
}
