// Package contract loads, validates and serves YAML files that declare named
// call contracts: a format string, the parallel parameter names, the
// catch-all collectors and the values for each hook slot.
//
// # Schema Overview
//
//	version: "1"
//	functions:
//	  - name: open
//	    format: "s|si$p@O&"
//	    params: [path, mode, buffering, closefd, opener]
//	    collect: []              # positional, keyword or all; needs "%"
//	    hooks:                   # one entry per hook slot, in format order
//	      - converter: opener    # "O&": name resolved by the registry
//	    description: Opens a file.
//
// Hook entries carry a type name for "O!", a converter name for "O&" and an
// encoding for "es"/"et" codes (utf-8 when omitted).
//
// Params also accept a comma-separated string; empty entries declare
// positional-only parameters:
//
//	params: ", , dst"
//
// # Defaults
//
// A format without a ":" or ";" suffix gets ":<name>" appended so error
// messages name the function.
package contract
