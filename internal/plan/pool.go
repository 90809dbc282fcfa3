package plan

import (
	"signature-resolver/internal/analyze"
	"signature-resolver/internal/match"
	"signature-resolver/internal/typemodel"
)

// Candidate is a validated Reference or Factory method offered to callers.
type Candidate struct {
	Method *analyze.Method
	// Declaring is the declaration the method belongs to.
	Declaring *analyze.Declaration
	// Origin is the used declaration the candidate comes from; nil when it is
	// declared by the top-level declaration itself.
	Origin    *analyze.Declaration
	Role      analyze.Role
	Signature match.Signature
}

// NewCandidate builds the candidate descriptor of m. Target-type hint
// parameters are not part of the positional signature.
func NewCandidate(a *typemodel.Arena, decl, top *analyze.Declaration, m *analyze.Method, role analyze.Role) *Candidate {
	params := make([]typemodel.TypeID, 0, len(m.Params))
	for _, p := range m.SourceParameters() {
		params = append(params, p.Type)
	}

	c := &Candidate{
		Method:    m,
		Declaring: decl,
		Role:      role,
		Signature: match.NewSignature(decl.QualifiedName()+"#"+m.Signature(a), params, m.Return, m.TypeParams),
	}

	if decl != top {
		c.Origin = decl
	}

	return c
}

// Key identifies the candidate inside a pool.
func (c *Candidate) Key() string {
	return c.Signature.ID
}

// SourceType returns the type of the single source parameter of a reference.
func (c *Candidate) SourceType() (typemodel.TypeID, bool) {
	if len(c.Signature.Params) != 1 {
		return typemodel.NoTypeID, false
	}

	return c.Signature.Params[0], true
}

// Pool is an insertion-ordered set of candidates keyed by origin and method.
type Pool struct {
	items []*Candidate
	index map[string]int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{index: make(map[string]int)}
}

// Add inserts c unless a candidate with the same key exists. It reports
// whether c was added.
func (p *Pool) Add(c *Candidate) bool {
	if _, ok := p.index[c.Key()]; ok {
		return false
	}

	p.index[c.Key()] = len(p.items)
	p.items = append(p.items, c)

	return true
}

// Lookup returns the candidate with the given key.
func (p *Pool) Lookup(key string) (*Candidate, bool) {
	i, ok := p.index[key]
	if !ok {
		return nil, false
	}

	return p.items[i], true
}

// Len returns the number of candidates.
func (p *Pool) Len() int {
	return len(p.items)
}

// Candidates returns the candidates in insertion order.
func (p *Pool) Candidates() []*Candidate {
	return append([]*Candidate(nil), p.items...)
}

// WithRole returns the candidates of one role in insertion order.
func (p *Pool) WithRole(role analyze.Role) []*Candidate {
	var out []*Candidate

	for _, c := range p.items {
		if c.Role == role {
			out = append(out, c)
		}
	}

	return out
}
