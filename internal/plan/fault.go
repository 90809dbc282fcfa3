package plan

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownDeclaration is the cause of a fault naming a declaration
	// that is not in the graph.
	ErrUnknownDeclaration = errors.New("unknown declaration")
	// ErrCyclicUses is the cause of a fault raised for a cyclic "uses" graph.
	ErrCyclicUses = errors.New("cyclic uses")
)

// ConfigurationFault aborts a retrieval: the declaration graph itself is
// unusable for the request.
type ConfigurationFault struct {
	// Declaration is the declaration whose configuration is broken.
	Declaration string
	// Reason describes the problem.
	Reason string
	// Suggestions are known names close to an unresolved one.
	Suggestions []string
	// Err is the underlying cause.
	Err error
}

func (f *ConfigurationFault) Error() string {
	var b strings.Builder

	b.WriteString("configuration fault")

	if f.Declaration != "" {
		b.WriteString(" in " + f.Declaration)
	}

	b.WriteString(": " + f.Reason)

	if len(f.Suggestions) > 0 {
		b.WriteString(" (did you mean " + strings.Join(f.Suggestions, ", ") + "?)")
	}

	return b.String()
}

func (f *ConfigurationFault) Unwrap() error {
	return f.Err
}
