// Package diagnostic provides structured warnings, errors, and
// explanations produced while mapping queries and validating entity schemas.
//
// Key capabilities:
//   - Unresolved property path warnings with "did you mean" suggestions
//   - Schema validation errors (duplicate entities, unknown types)
//   - Explanation of pass-through decisions
package diagnostic
