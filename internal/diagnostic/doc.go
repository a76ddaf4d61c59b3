// Package diagnostic provides the error taxonomy and message rendering for
// argument binding, plus structured diagnostics for contract validation.
//
// Key capabilities:
//   - BindingError: a parameter-addressed failure with a nesting path
//   - Kind: SystemError (contract defects) versus TypeError (caller errors)
//   - Formatter: renders arity, keyword and conversion failures
//   - Diagnostics: coded errors and warnings collected while validating contracts
package diagnostic
