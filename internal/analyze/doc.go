// Package analyze provides the declaration model consumed by the resolver
// and imports Go packages into a type lattice.
//
// It uses golang.org/x/tools/go/packages with go/types to turn named Go
// types into classes of a typemodel.Lattice.
//
// Key types:
//   - Declaration: a named provider of methods with its "uses" list
//   - Method: parameters, return, thrown types and type parameters
//   - Parameter: a typed slot flagged as source, target or target-type hint
//   - Graph: name lookup over declarations with "did you mean" suggestions
//   - Role: the structural role a method plays for the resolver
package analyze
