// Package match provides name normalization, Levenshtein distance calculation
// and ranking of property names for "did you mean" suggestions.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known property names against an unresolved one
package match
