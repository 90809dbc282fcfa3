// Package typemodel provides the type trees the resolver works on and the
// host type-system oracle that answers questions about them.
//
// Types live in an Arena and are referred to by TypeID. Structural nodes
// (primitives, arrays, declared types, wildcards) are interned, so two equal
// trees share one ID. Type variables are identities: every declaration creates
// a fresh variable and attaches its bounds afterwards, which lets a bound refer
// back to its own variable (T extends Comparable<T>).
//
// Key types:
//   - Arena: node storage, interning, substitution and formatting
//   - Oracle: sameness, subtyping, assignability and boxing questions
//   - Distancer, Classifier: auxiliary host questions (distance, iterable, enum)
//   - Lattice: a synthetic host over a hand-built class hierarchy
//   - Parse: textual type expressions such as "Map<K, List<? extends V>>"
package typemodel
