// Package match finds declared parameter names that resemble a misspelled
// keyword, for "did you mean" hints on invalid keyword errors.
//
// Key functions:
//   - NormalizeName: folds case and separators before comparison
//   - Distance: computes the edit distance between two names
//   - Closest: ranks the declared names nearest to a keyword
package match
