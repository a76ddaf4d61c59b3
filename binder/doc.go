// Package binder matches a call's positional and keyword values against a
// compiled argument specification, converts each supplied value and returns
// the bound result or a single error describing the first failure.
//
// A specification is compiled once from a format string and a parallel list
// of parameter names:
//
//	s, err := binder.Compile("O|i$p:open", []string{"path", "mode", "closefd"})
//	res, err := binder.New(s).Bind(args, kwargs)
//
// Format codes select the conversion of each parameter; the markers "|", "$"
// and "@" open the optional, keyword-only and required keyword-only regions;
// a leading "%" enables the catch-all collectors; leading empty names mark
// positional-only parameters.
//
// Errors are *Error values classified as ErrTypeError (the caller passed
// something wrong) or ErrSystemError (the contract itself is broken).
// Resources acquired by conversions, such as buffer views, are released
// before Bind returns an error; on success the Result owns them until
// Result.Release.
package binder
