package spec

// Descriptor declares one parameter.
type Descriptor struct {
	// Name is the keyword name; empty for positional-only and tuple elements.
	Name string
	// Code selects the conversion.
	Code Code
	// Nested is set for tuple parameters.
	Nested *Specification
	// Hook is the hook slot consumed by the code, or -1.
	Hook int
}

// Specification is the compiled, immutable form of a format string.
type Specification struct {
	// Format is the source format string.
	Format string
	// Params are the declared parameters in order.
	Params []Descriptor

	// PositionalOnly is the number of leading parameters that cannot be
	// supplied by keyword.
	PositionalOnly int
	// OptionalStart is the index from which parameters may be absent.
	OptionalStart int
	// KeywordOnlyStart is the index from which parameters are never filled
	// positionally.
	KeywordOnlyStart int
	// RequiredKeywordOnlyStart is the index from which keyword-only
	// parameters are mandatory again.
	RequiredKeywordOnlyStart int

	// Collectors selects the catch-all outputs.
	Collectors CollectorEnum

	// FuncName comes from a ":name" suffix.
	FuncName string
	// CustomMessage comes from a ";message" suffix.
	CustomMessage    string
	HasCustomMessage bool

	// Hooks is the number of hook slots consumed by the whole format.
	Hooks int

	hasOptionalMarker bool
	index             map[string]int
}

// Len returns the number of declared parameters.
func (s *Specification) Len() int {
	return len(s.Params)
}

// Names returns the declared parameter names.
func (s *Specification) Names() []string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}

	return names
}

// Index returns the position of the keyword-capable parameter called name.
func (s *Specification) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// KeywordNames returns the names that may be supplied by keyword, in order.
func (s *Specification) KeywordNames() []string {
	names := make([]string, 0, len(s.Params)-s.PositionalOnly)
	for _, p := range s.Params[s.PositionalOnly:] {
		names = append(names, p.Name)
	}

	return names
}

// AcceptsExtraPositional reports whether surplus positional values are collected.
func (s *Specification) AcceptsExtraPositional() bool {
	return s.Collectors&CollectPositional != 0
}

// AcceptsExtraKeyword reports whether unknown keywords are collected.
func (s *Specification) AcceptsExtraKeyword() bool {
	return s.Collectors&CollectKeyword != 0
}

// HasRequiredKeywordOnly reports whether an "@" region holds any parameter.
func (s *Specification) HasRequiredKeywordOnly() bool {
	return s.RequiredKeywordOnlyStart < len(s.Params)
}

// HasOptionalMarker reports whether the format declared an optional region.
func (s *Specification) HasOptionalMarker() bool {
	return s.hasOptionalMarker
}

// IsRequired reports whether parameter i must be supplied.
func (s *Specification) IsRequired(i int) bool {
	return i < s.OptionalStart || i >= s.RequiredKeywordOnlyStart
}

// AcceptsPositional reports whether parameter i may be filled positionally.
func (s *Specification) AcceptsPositional(i int) bool {
	return i < s.KeywordOnlyStart
}

// AcceptsKeyword reports whether parameter i may be filled by keyword.
func (s *Specification) AcceptsKeyword(i int) bool {
	return i >= s.PositionalOnly
}

// MaxPositional returns how many positional values the parameters can absorb.
func (s *Specification) MaxPositional() int {
	return min(s.KeywordOnlyStart, len(s.Params))
}

// Region returns the region parameter i belongs to.
func (s *Specification) Region(i int) Region {
	switch {
	case i >= s.RequiredKeywordOnlyStart:
		return RegionRequiredKeywordOnly
	case i >= s.KeywordOnlyStart:
		return RegionKeywordOnly
	case i >= s.OptionalStart:
		return RegionOptional
	case i < s.PositionalOnly:
		return RegionPositionalOnly
	default:
		return RegionPositionalOrKeyword
	}
}

// HookCodes returns the code consuming each hook slot, indexed by slot.
func (s *Specification) HookCodes() []Code {
	codes := make([]Code, s.Hooks)
	s.hookCodes(codes)

	return codes
}

func (s *Specification) hookCodes(codes []Code) {
	for _, d := range s.Params {
		switch {
		case d.Code.IsTuple():
			d.Nested.hookCodes(codes)
		case d.Hook >= 0 && d.Hook < len(codes):
			codes[d.Hook] = d.Code
		}
	}
}
