package contract

import (
	"strings"

	"argbind/internal/spec"
)

// File represents the root of a YAML contract file.
type File struct {
	// Version of the contract schema.
	Version string `yaml:"version,omitempty"`

	// Functions is the list of declared call contracts.
	Functions []Function `yaml:"functions"`
}

// Function declares the arguments one callable accepts.
type Function struct {
	// Name identifies the contract; it also becomes the ":name" suffix.
	Name string `yaml:"name"`

	// Format is the specification format string.
	Format string `yaml:"format"`

	// Params are the parameter names, parallel to the format's items.
	// Empty names mark positional-only parameters.
	Params NameList `yaml:"params,omitempty"`

	// Collect restricts the catch-alls a "%" format provides.
	Collect NameList `yaml:"collect,omitempty"`

	// Hooks fill the hook slots in format order.
	Hooks []HookDef `yaml:"hooks,omitempty"`

	// Description is free text carried into generated code.
	Description string `yaml:"description,omitempty"`
}

// HookDef fills one hook slot.
type HookDef struct {
	// Type is the required type name for "O!".
	Type string `yaml:"type,omitempty"`
	// Converter names the converter function for "O&".
	Converter string `yaml:"converter,omitempty"`
	// Encoding is the target encoding for "es"/"et" codes.
	Encoding string `yaml:"encoding,omitempty"`
}

// NameList is a list of names that also accepts a comma-separated string.
type NameList []string

// Collector names accepted in Function.Collect.
const (
	CollectorPositional = "positional"
	CollectorKeyword    = "keyword"
	CollectorAll        = "all"
)

var collectorNames = []string{CollectorPositional, CollectorKeyword, CollectorAll}

// HasPercent reports whether the format starts with the "%" collector marker.
func (f *Function) HasPercent() bool {
	return strings.HasPrefix(f.Format, "%")
}

// Collectors converts Collect into a mask. ok is false when Collect is empty;
// unknown names are skipped.
func (f *Function) Collectors() (mask spec.CollectorEnum, ok bool) {
	for _, c := range f.Collect {
		switch c {
		case CollectorPositional:
			mask |= spec.CollectPositional
		case CollectorKeyword:
			mask |= spec.CollectKeyword
		case CollectorAll:
			mask |= spec.CollectAll
		}
	}

	return mask, len(f.Collect) > 0
}

// FindFunction finds a function contract by name.
func (f *File) FindFunction(name string) (*Function, bool) {
	for i := range f.Functions {
		if f.Functions[i].Name == name {
			return &f.Functions[i], true
		}
	}

	return nil, false
}

// Names returns the function names in declaration order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Functions))
	for _, fn := range f.Functions {
		names = append(names, fn.Name)
	}

	return names
}
