package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// config is read from the environment; command flags win when set.
type config struct {
	Addr            string        `env:"TEXTMASK_ADDR" envDefault:":8080"`
	BasePath        string        `env:"TEXTMASK_BASE_PATH" envDefault:"/"`
	Presets         string        `env:"TEXTMASK_PRESETS"`
	Debug           bool          `env:"TEXTMASK_DEBUG"`
	InlineMasks     bool          `env:"TEXTMASK_INLINE_MASKS" envDefault:"true"`
	MaxBodyBytes    int64         `env:"TEXTMASK_MAX_BODY_BYTES" envDefault:"65536"`
	ReloadDebounce  time.Duration `env:"TEXTMASK_RELOAD_DEBOUNCE" envDefault:"50ms"`
	ShutdownTimeout time.Duration `env:"TEXTMASK_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
