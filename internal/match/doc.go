// Package match decides whether a candidate signature can serve a call shape.
//
// The matcher walks the candidate's parameter and return types alongside the
// caller's concrete types, solving the candidate's type variables as it goes.
// Type relations are delegated to a typemodel.Oracle.
//
// Key types:
//   - Signature: parameter types, return type and declared type variables
//   - CallShape: concrete source types plus one target type
//   - Bindings: the variable assignment found by a successful match
//   - Matcher: parameter and return unification with the bounds post-check
package match
