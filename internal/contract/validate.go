package contract

import (
	"errors"
	"fmt"
	"slices"

	"argbind/internal/convert"
	"argbind/internal/diagnostic"
	"argbind/internal/match"
	"argbind/internal/spec"
)

// Validate checks every function contract in f. Formats are compiled with
// opts, so strictness follows the caller's configuration.
func Validate(f *File, opts ...spec.Option) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("contract_is_nil", "contract file is nil", "", "")
		return res
	}

	if len(f.Functions) == 0 {
		res.AddWarning("no_functions", "contract file declares no functions", "", "")
	}

	seen := map[string]struct{}{}

	for i := range f.Functions {
		fn := &f.Functions[i]

		if fn.Name == "" {
			res.AddError("empty_function_name", fmt.Sprintf("function #%d has no name", i+1), "", "")
		} else if _, ok := seen[fn.Name]; ok {
			res.AddError("duplicate_function", fmt.Sprintf("duplicate function %q", fn.Name), fn.Name, "")
			continue
		}

		seen[fn.Name] = struct{}{}

		validateFunction(res, fn, opts)
	}

	return res
}

func validateFunction(res *diagnostic.Diagnostics, fn *Function, opts []spec.Option) {
	validateParams(res, fn)
	validateCollectors(res, fn)

	s, err := fn.Compile(opts...)
	if err != nil {
		res.AddError("invalid_format", fmt.Sprintf("format %q: %v", fn.Format, err), fn.Name, "")
		return
	}

	validateHooks(res, fn, s)
}

func validateParams(res *diagnostic.Diagnostics, fn *Function) {
	seen := map[string]struct{}{}

	for _, name := range fn.Params {
		if name == "" {
			continue
		}

		if _, ok := seen[name]; ok {
			res.AddError("duplicate_param",
				fmt.Sprintf("parameter %q is declared twice and the second can never be passed by keyword", name),
				fn.Name, name)

			continue
		}

		seen[name] = struct{}{}
	}
}

func validateCollectors(res *diagnostic.Diagnostics, fn *Function) {
	for _, c := range fn.Collect {
		if !slices.Contains(collectorNames, c) {
			res.AddErrorWithSuggestions("unknown_collector",
				fmt.Sprintf("unknown collector %q", c), fn.Name, c, match.Closest(c, collectorNames))
		}
	}

	if len(fn.Collect) > 0 && !fn.HasPercent() {
		res.AddWarning("unused_collectors_without_percent",
			"collect has no effect unless the format starts with '%'", fn.Name, "")
	}
}

func validateHooks(res *diagnostic.Diagnostics, fn *Function, s *spec.Specification) {
	codes := s.HookCodes()

	if len(fn.Hooks) != len(codes) {
		res.AddError("hook_count_mismatch",
			fmt.Sprintf("format %q consumes %d hook slot(s), %d hook(s) declared", fn.Format, len(codes), len(fn.Hooks)),
			fn.Name, "")
	}

	for slot, code := range codes[:min(len(codes), len(fn.Hooks))] {
		h := fn.Hooks[slot]
		param := fmt.Sprintf("hook %d", slot)

		switch code {
		case "O!":
			if h.Type == "" {
				res.AddError("invalid_hook", fmt.Sprintf("hook for %q needs a type", code), fn.Name, param)
			}
		case "O&":
			if h.Converter == "" {
				res.AddError("invalid_hook", fmt.Sprintf("hook for %q needs a converter", code), fn.Name, param)
			}
		default:
			_, err := convert.LookupEncoding(h.Encoding)
			if errors.Is(err, convert.ErrUnknownEncoding) {
				res.AddError("invalid_encoding", fmt.Sprintf("unknown encoding %q for %q", h.Encoding, code), fn.Name, param)
			}
		}
	}
}

// Compile builds the specification of fn. Collectors are only requested
// when the format can provide them.
func (fn *Function) Compile(opts ...spec.Option) (*spec.Specification, error) {
	if mask, ok := fn.Collectors(); ok && fn.HasPercent() {
		opts = append(opts[:len(opts):len(opts)], spec.WithCollectors(mask))
	}

	return spec.Compile(fn.Format, fn.Params, opts...)
}
