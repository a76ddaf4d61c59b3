// Package spec compiles the argument format mini-language into an immutable
// Specification.
//
// A format string holds one conversion code per declared parameter,
// interleaved with structural markers:
//
//	%        leading: the call accepts catch-all collectors
//	|        start of the optional region
//	$        start of the keyword-only region
//	@        start of the required keyword-only region
//	( ... )  a tuple parameter destructured recursively
//	:name    function name used in messages
//	;text    custom message for conversion failures
//
// A leading run of empty names in the parallel name list declares that many
// positional-only parameters.
//
// Compile scans a format once; the result is read-only and may be shared by
// concurrent binders. Cache memoizes compilation by content.
package spec
