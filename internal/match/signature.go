package match

import (
	"strings"

	"signature-resolver/internal/typemodel"
)

// Signature is an immutable candidate signature.
type Signature struct {
	// ID identifies the candidate in messages and pools.
	ID         string
	Params     []typemodel.TypeID
	Return     typemodel.TypeID
	TypeParams []typemodel.TypeID
}

// NewSignature copies its inputs into a Signature.
func NewSignature(id string, params []typemodel.TypeID, ret typemodel.TypeID, typeParams []typemodel.TypeID) Signature {
	return Signature{
		ID:         id,
		Params:     append([]typemodel.TypeID(nil), params...),
		Return:     ret,
		TypeParams: append([]typemodel.TypeID(nil), typeParams...),
	}
}

// Declares reports whether v is one of the signature's type variables.
func (s Signature) Declares(v typemodel.TypeID) bool {
	for _, p := range s.TypeParams {
		if p == v {
			return true
		}
	}

	return false
}

// CallShape is what a caller needs: ordered source types and one target.
type CallShape struct {
	Sources []typemodel.TypeID
	Target  typemodel.TypeID
}

// String renders "(A, B) -> T".
func (c CallShape) String(a *typemodel.Arena) string {
	var b strings.Builder

	b.WriteByte('(')

	for i, s := range c.Sources {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(a.String(s))
	}

	b.WriteString(") -> ")
	b.WriteString(a.String(c.Target))

	return b.String()
}
