// Package plan provides the resolution pipeline that turns a declaration
// graph and a set of call shapes into selected candidate methods.
//
// Resolution pipeline:
//  1. Walk the top-level declaration and its transitive "uses" closure
//  2. Classify every method by role and validate its shape
//  3. Collect Reference/Factory candidates into an ordered Pool
//  4. For each call shape, keep the candidates the matcher accepts
//  5. Narrow the matches with a Selector (minimal inheritance distance)
//
// Structural problems are reported as diagnostics and never abort a
// request; configuration faults (unknown or cyclic "uses") do.
package plan
