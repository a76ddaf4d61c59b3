package diagnostic

import (
	"fmt"
	"slices"
	"strings"

	"argbind/internal/common"
)

// maxPathLevels bounds how many "item" qualifiers are rendered.
const maxPathLevels = 32

// Formatter renders binding failures for one contract.
type Formatter struct {
	// FuncName is the function name from a ":name" format suffix.
	FuncName string
	// CustomMessage replaces conversion messages when HasCustomMessage is set
	// (";message" format suffix).
	CustomMessage    string
	HasCustomMessage bool
}

func (f Formatter) callee() string {
	return common.CallName(f.FuncName, "function")
}

// Argument reports a failed conversion of parameter param (1-based).
// A detail starting with "(" denotes an internal converter defect and is
// reported as a SystemError.
func (f Formatter) Argument(param int, name string, path []int, detail string) *BindingError {
	e := &BindingError{
		Kind:   KindTypeError,
		Param:  param,
		Name:   name,
		Path:   slices.Clone(path),
		Detail: detail,
	}

	if strings.HasPrefix(detail, "(") {
		e.Kind = KindSystemError
	}

	if f.HasCustomMessage {
		e.Message = f.CustomMessage
		return e
	}

	var b strings.Builder
	if f.FuncName != "" {
		b.WriteString(f.FuncName)
		b.WriteString("() ")
	}

	if param != 0 {
		fmt.Fprintf(&b, "argument %d", param)

		for i, level := range path {
			if i >= maxPathLevels {
				break
			}

			fmt.Fprintf(&b, ", item %d", level-1)
		}
	} else {
		b.WriteString("argument")
	}

	b.WriteString(" ")
	b.WriteString(detail)
	e.Message = b.String()

	return e
}

// TooManyArguments reports more positional plus keyword values than parameters.
func (f Formatter) TooManyArguments(maxArgs, given int, noPositional bool) *BindingError {
	keyword := ""
	if noPositional {
		keyword = "keyword "
	}

	return TypeError(fmt.Sprintf("%s takes at most %d %sargument%s (%d given)",
		f.callee(), maxArgs, keyword, common.Plural(maxArgs), given))
}

// NoPositional reports positional values given to a keyword-only contract.
func (f Formatter) NoPositional() *BindingError {
	return TypeError(fmt.Sprintf("%s takes no positional arguments", f.callee()))
}

// TooManyPositional reports positional values beyond the positional cutoff.
func (f Formatter) TooManyPositional(maxPositional, given int, exact bool) *BindingError {
	if maxPositional == 0 {
		return f.NoPositional()
	}

	bound := "at most"
	if exact {
		bound = "exactly"
	}

	return TypeError(fmt.Sprintf("%s takes %s %d positional argument%s (%d given)",
		f.callee(), bound, maxPositional, common.Plural(maxPositional), given))
}

// TooFewPositional reports a missing positional-only value.
func (f Formatter) TooFewPositional(minPositional, given int, exact bool) *BindingError {
	bound := "at least"
	if exact {
		bound = "exactly"
	}

	return TypeError(fmt.Sprintf("%s takes %s %d positional argument%s (%d given)",
		f.callee(), bound, minPositional, common.Plural(minPositional), given))
}

// MissingRequired reports an absent mandatory positional-or-keyword parameter.
func (f Formatter) MissingRequired(name string, param int) *BindingError {
	e := TypeError(fmt.Sprintf("%s missing required argument '%s' (pos %d)", f.callee(), name, param))
	e.Param = param
	e.Name = name

	return e
}

// MissingKeywordOnly reports an absent mandatory keyword-only parameter.
func (f Formatter) MissingKeywordOnly(name string, param int) *BindingError {
	e := TypeError(fmt.Sprintf("%s missing required keyword-only argument '%s'", f.callee(), name))
	e.Param = param
	e.Name = name

	return e
}

// Duplicate reports a parameter supplied both positionally and by keyword.
func (f Formatter) Duplicate(name string, param int) *BindingError {
	e := TypeError(fmt.Sprintf("argument for %s given by name ('%s') and position (%d)", f.callee(), name, param))
	e.Param = param
	e.Name = name

	return e
}

// InvalidKeyword reports a keyword that matches no declared parameter.
func (f Formatter) InvalidKeyword(key string, suggestions []string) *BindingError {
	e := TypeError(fmt.Sprintf("'%s' is an invalid keyword argument for %s",
		key, common.CallName(f.FuncName, "this function")))
	e.Name = key
	e.Suggestions = suggestions

	return e
}

// KeywordsMustBeStrings reports a non-string keyword name.
func (f Formatter) KeywordsMustBeStrings() *BindingError {
	return TypeError("keywords must be strings")
}
