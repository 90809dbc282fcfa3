package match

import (
	"strings"

	"signature-resolver/internal/typemodel"
)

// Bindings maps type variables to the concrete types a match assigned them.
// Insertion order is kept so results print deterministically.
type Bindings struct {
	vars []typemodel.TypeID
	vals map[typemodel.TypeID]typemodel.TypeID
}

// NewBindings returns an empty binding map.
func NewBindings() *Bindings {
	return &Bindings{vals: make(map[typemodel.TypeID]typemodel.TypeID)}
}

// Get returns the binding of v.
func (b *Bindings) Get(v typemodel.TypeID) (typemodel.TypeID, bool) {
	t, ok := b.vals[v]
	return t, ok
}

// Len returns the number of bound variables.
func (b *Bindings) Len() int {
	return len(b.vars)
}

// Vars returns the bound variables in binding order.
func (b *Bindings) Vars() []typemodel.TypeID {
	return append([]typemodel.TypeID(nil), b.vars...)
}

// Env returns a copy usable with Arena.Substitute.
func (b *Bindings) Env() map[typemodel.TypeID]typemodel.TypeID {
	out := make(map[typemodel.TypeID]typemodel.TypeID, len(b.vals))
	for k, v := range b.vals {
		out[k] = v
	}

	return out
}

// String renders "T=Integer, U=String".
func (b *Bindings) String(a *typemodel.Arena) string {
	parts := make([]string, 0, len(b.vars))
	for _, v := range b.vars {
		parts = append(parts, a.String(v)+"="+a.String(b.vals[v]))
	}

	return strings.Join(parts, ", ")
}

func (b *Bindings) bind(v, t typemodel.TypeID) {
	b.vars = append(b.vars, v)
	b.vals[v] = t
}

func (b *Bindings) mark() int {
	return len(b.vars)
}

// rollback forgets every binding made after mark.
func (b *Bindings) rollback(mark int) {
	for _, v := range b.vars[mark:] {
		delete(b.vals, v)
	}

	b.vars = b.vars[:mark]
}
