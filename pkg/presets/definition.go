// Package presets names reusable mask configurations.
//
// Definitions are loaded from JSON or YAML files, harvested from OpenAPI
// documents or taken from the built-in set, and turned into session options
// when a field is bound.
package presets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-textmask/pkg/mask"
	"github.com/goliatone/go-textmask/pkg/pipe"
	"github.com/goliatone/go-textmask/pkg/session"
)

// ErrUnknownPipe is returned when a definition references a pipe the
// registry does not know.
var ErrUnknownPipe = errors.New("presets: unknown pipe")

// Definition describes one named mask configuration. Mask uses the pattern
// syntax of mask.Parse.
type Definition struct {
	Name              string `json:"name" yaml:"name"`
	Mask              string `json:"mask" yaml:"mask"`
	PlaceholderChar   string `json:"placeholderChar,omitempty" yaml:"placeholderChar,omitempty"`
	Guide             *bool  `json:"guide,omitempty" yaml:"guide,omitempty"`
	KeepCharPositions bool   `json:"keepCharPositions,omitempty" yaml:"keepCharPositions,omitempty"`
	ShowMask          bool   `json:"showMask,omitempty" yaml:"showMask,omitempty"`
	Pipe              string `json:"pipe,omitempty" yaml:"pipe,omitempty"`
	Description       string `json:"description,omitempty" yaml:"description,omitempty"`
	// Source records where the definition was loaded from.
	Source string `json:"-" yaml:"-"`

	provider mask.Provider
}

// Dynamic builds a definition backed by a mask provider instead of a
// pattern.
func Dynamic(name, description string, provider mask.Provider) Definition {
	return Definition{Name: name, Description: description, Mask: "(dynamic)", provider: provider}
}

// IsDynamic reports whether the definition is backed by a provider.
func (d Definition) IsDynamic() bool {
	return d.provider != nil
}

// Provider returns the mask provider of the definition.
func (d Definition) Provider() (mask.Provider, error) {
	if d.provider != nil {
		return d.provider, nil
	}
	if strings.TrimSpace(d.Mask) == "" {
		return nil, fmt.Errorf("presets: definition %q has no mask: %w", d.Name, mask.ErrInvalidMask)
	}
	m, err := mask.Parse(d.Mask)
	if err != nil {
		return nil, fmt.Errorf("presets: definition %q: %w", d.Name, err)
	}
	return m, nil
}

// Placeholder returns the rune configured for unfilled slots.
func (d Definition) Placeholder() (rune, error) {
	if d.PlaceholderChar == "" {
		return mask.DefaultPlaceholderChar, nil
	}
	runes := []rune(d.PlaceholderChar)
	if len(runes) != 1 {
		return 0, fmt.Errorf("presets: definition %q placeholderChar %q must be a single character: %w", d.Name, d.PlaceholderChar, mask.ErrInvalidMask)
	}
	return runes[0], nil
}

// Validate checks the definition without building a controller. Static
// masks are checked against the placeholder character.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("presets: definition has an empty name")
	}
	provider, err := d.Provider()
	if err != nil {
		return err
	}
	ch, err := d.Placeholder()
	if err != nil {
		return err
	}
	if static, ok := provider.(mask.Mask); ok {
		cleaned, _ := mask.ExtractCaretTraps(static)
		if _, err := mask.ToPlaceholder(cleaned, ch); err != nil {
			return fmt.Errorf("presets: definition %q: %w", d.Name, err)
		}
	}
	return nil
}

// Options converts the definition into session options. Pipe names are
// resolved through reg; a nil registry only knows the built-in pipes.
func (d Definition) Options(reg *pipe.Registry) ([]session.Option, error) {
	provider, err := d.Provider()
	if err != nil {
		return nil, err
	}
	ch, err := d.Placeholder()
	if err != nil {
		return nil, err
	}

	guide := true
	if d.Guide != nil {
		guide = *d.Guide
	}
	opts := []session.Option{
		session.WithMask(provider),
		session.WithPlaceholderChar(ch),
		session.WithGuide(guide),
		session.WithKeepCharPositions(d.KeepCharPositions),
		session.WithShowMask(d.ShowMask),
	}

	if name := strings.TrimSpace(d.Pipe); name != "" {
		if reg == nil {
			reg = pipe.NewRegistry()
		}
		p, ok := reg.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("presets: definition %q pipe %q: %w", d.Name, name, ErrUnknownPipe)
		}
		opts = append(opts, session.WithPipe(p))
	}
	return opts, nil
}

// Controller builds a controller for the definition. extra options are
// applied after the definition's own.
func (d Definition) Controller(reg *pipe.Registry, extra ...session.Option) (*session.Controller, error) {
	opts, err := d.Options(reg)
	if err != nil {
		return nil, err
	}
	return session.New(append(opts, extra...)...), nil
}
