package derive

import "github.com/viant/tagly/format/text"

// Option mutates registration options.
type Option interface{ apply(*Options) }

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

// Options defines how a struct's field plan is compiled.
type Options struct {
	CaseFormat text.CaseFormat
	StrictKeys bool
	Renames    map[string]string
	Optional   map[string]bool
	Defaults   map[string]any
}

// WithCaseFormat applies a global rename convention to every field without
// an explicit override, e.g. text.CaseFormatLowerCamel maps UserName to
// userName.
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return optionFn(func(o *Options) { o.CaseFormat = caseFormat })
}

// WithStrictKeys rejects object keys that bind to no field. The default
// tolerates and discards unknown keys.
func WithStrictKeys() Option {
	return optionFn(func(o *Options) { o.StrictKeys = true })
}

// WithRename overrides the effective name of one field. It takes precedence
// over both the json tag and the global case convention.
func WithRename(field, name string) Option {
	return optionFn(func(o *Options) {
		if o.Renames == nil {
			o.Renames = map[string]string{}
		}
		o.Renames[field] = name
	})
}

// WithOptional marks a field as not required. Pointer, slice and map fields
// are optional implicitly.
func WithOptional(field string) Option {
	return optionFn(func(o *Options) {
		if o.Optional == nil {
			o.Optional = map[string]bool{}
		}
		o.Optional[field] = true
	})
}

// WithDefault supplies the value assigned when the field is absent; a field
// with a default is never reported missing.
func WithDefault(field string, value any) Option {
	return optionFn(func(o *Options) {
		if o.Defaults == nil {
			o.Defaults = map[string]any{}
		}
		o.Defaults[field] = value
	})
}

func resolveOptions(opts []Option) Options {
	var result Options
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&result)
	}
	return result
}

func (o *Options) perField() bool {
	return len(o.Renames) > 0 || len(o.Optional) > 0 || len(o.Defaults) > 0
}
