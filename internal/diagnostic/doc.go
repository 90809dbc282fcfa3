// Package diagnostic provides structured errors, warnings and notes produced
// while retrieving and validating candidate signatures.
//
// Key capabilities:
//   - Structural rejection reports with stable codes
//   - Location of the offending declaration, method and parameter
//   - "did you mean" suggestions
//   - A Sink interface so producers do not depend on the collector
package diagnostic
