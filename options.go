package dejson

// DefaultMaxDepth bounds recursive descent when no override is supplied.
const DefaultMaxDepth = 1024

// Option mutates runtime options.
type Option interface{ apply(*Options) }

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

// Options defines runtime behavior of one parse call.
type Options struct {
	MaxDepth int
}

// WithMaxDepth bounds nesting depth; values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return optionFn(func(o *Options) {
		if depth > 0 {
			o.MaxDepth = depth
		}
	})
}

func defaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

func resolveOptions(opts []Option) Options {
	result := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&result)
	}
	return result
}
