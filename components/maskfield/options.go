package maskfield

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-textmask/pkg/pipe"
	"github.com/goliatone/go-textmask/pkg/presets"
)

const (
	defaultRoutePath    = "/api/textmask"
	defaultMaxBodyBytes = 64 << 10
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string
	Guard     GuardFunc
	// Store resolves preset names. Defaults to the built-in presets.
	Store *presets.Store
	// Pipes resolves pipe names referenced by presets.
	Pipes *pipe.Registry
	// AllowInlineMask accepts a pattern in the request instead of a preset.
	AllowInlineMask bool
	MaxBodyBytes    int64
	Logger          *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       defaultRoutePath,
		AllowInlineMask: true,
		MaxBodyBytes:    defaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Store == nil {
		opts.Store = presets.Builtins()
	}
	if opts.Pipes == nil {
		opts.Pipes = pipe.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithStore(store *presets.Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Store = store
	}
}

func WithPipes(reg *pipe.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Pipes = reg
	}
}

func WithInlineMask(allow bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AllowInlineMask = allow
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
