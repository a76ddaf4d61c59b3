// Package gen renders typed argument structs for contract functions.
//
// Every function in a contract file becomes one Go file holding a struct
// whose fields mirror the declared parameters, tagged for binder's
// Result.Decode, plus the format constants and a Bind method that compiles,
// binds and decodes in one step.
//
// Field types follow the conversion code: "i" gives int64, "s" gives string,
// "y*" gives *value.Buffer and so on. Optional parameters become pointers
// unless their type already has a nil value.
//
// Generation uses text/template + go/format.
package gen
