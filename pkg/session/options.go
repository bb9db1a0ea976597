package session

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-textmask/pkg/mask"
	"github.com/goliatone/go-textmask/pkg/pipe"
)

// Config holds the per-update settings of a controller.
type Config struct {
	// Mask is a fixed mask, a dynamic mask.Func, or a Bundle carrying its
	// own pipe.
	Mask mask.Provider
	Pipe pipe.Pipe
	// Guide shows placeholder filler for unfilled slots.
	Guide           bool
	PlaceholderChar rune
	// KeepCharPositions preserves positions of untouched characters during
	// interior edits.
	KeepCharPositions bool
	// ShowMask displays the full placeholder when the field is logically
	// empty instead of a blank value.
	ShowMask bool
	Logger   *zap.Logger
}

// DefaultConfig returns guide on, '_' placeholder, no pipe and a no-op logger.
func DefaultConfig() Config {
	return Config{
		Guide:           true,
		PlaceholderChar: mask.DefaultPlaceholderChar,
		Logger:          zap.NewNop(),
	}
}

// Option configures a controller or overrides settings for one update.
type Option func(*Config)

// WithMask sets the mask provider.
func WithMask(provider mask.Provider) Option {
	return func(cfg *Config) {
		cfg.Mask = provider
	}
}

// WithPipe sets the post-processing pipe.
func WithPipe(p pipe.Pipe) Option {
	return func(cfg *Config) {
		cfg.Pipe = p
	}
}

// WithGuide toggles placeholder filler for unfilled slots.
func WithGuide(guide bool) Option {
	return func(cfg *Config) {
		cfg.Guide = guide
	}
}

// WithPlaceholderChar overrides the rune shown in unfilled slots. The zero
// rune is ignored.
func WithPlaceholderChar(r rune) Option {
	return func(cfg *Config) {
		if r != 0 {
			cfg.PlaceholderChar = r
		}
	}
}

// WithKeepCharPositions toggles position-preserving edits.
func WithKeepCharPositions(keep bool) Option {
	return func(cfg *Config) {
		cfg.KeepCharPositions = keep
	}
}

// WithShowMask toggles displaying the placeholder for empty fields.
func WithShowMask(show bool) Option {
	return func(cfg *Config) {
		cfg.ShowMask = show
	}
}

// WithLogger sets the logger used for update tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

func applyOptions(cfg Config, opts []Option) Config {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.PlaceholderChar == 0 {
		cfg.PlaceholderChar = mask.DefaultPlaceholderChar
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}
