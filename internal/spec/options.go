package spec

// CollectorEnum selects which catch-all outputs a "%" format provides.
type CollectorEnum int

const (
	CollectPositional CollectorEnum = 1 << iota // surplus positional values
	CollectKeyword                              // unknown keyword values

	CollectAll  = (1 << iota) - 1 // both collectors
	CollectNone = 0               // no collectors
)

// Option configures compilation.
type Option func(*options)

type options struct {
	strict        bool
	collectors    CollectorEnum
	collectorsSet bool
}

func defaultOptions() options {
	return options{strict: strictChecks}
}

// WithStrict enables or disables the marker-order and trailing-specifier
// consistency checks. They are on by default unless built with the
// argbind_nocheck tag.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithCollectors restricts which catch-alls a "%" format provides.
func WithCollectors(mask CollectorEnum) Option {
	return func(o *options) {
		o.collectors = mask & CollectAll
		o.collectorsSet = true
	}
}
