// Package textmask conforms free-form text to input masks such as
// 99/99/9999 and keeps the caret where the user expects it after each edit.
//
// The root package re-exports the types most callers need. The engine lives
// in pkg/conform and pkg/caret, session bookkeeping in pkg/session, field
// adapters under pkg/field and named masks in pkg/presets.
package textmask

import (
	"fmt"

	"github.com/goliatone/go-textmask/pkg/mask"
	"github.com/goliatone/go-textmask/pkg/pipe"
	"github.com/goliatone/go-textmask/pkg/presets"
	"github.com/goliatone/go-textmask/pkg/session"
)

type (
	Mask       = mask.Mask
	Element    = mask.Element
	Provider   = mask.Provider
	Pipe       = pipe.Pipe
	Config     = session.Config
	Option     = session.Option
	State      = session.State
	Input      = session.Input
	Result     = session.Result
	Controller = session.Controller
	Bundle     = session.Bundle
)

// NewController exposes the session controller constructor from the
// top-level module.
func NewController(options ...session.Option) *session.Controller {
	return session.New(options...)
}

// Parse turns a pattern such as "(999) 999-9999" into a mask.
func Parse(pattern string) (mask.Mask, error) {
	return mask.Parse(pattern)
}

// Paste conforms raw as if it was pasted into an empty field and returns the
// value to display.
func Paste(controller *session.Controller, raw string) (session.Result, error) {
	return controller.Update(&session.State{}, session.Input{
		RawValue:      raw,
		CaretPosition: len([]rune(raw)),
	})
}

// Conform parses pattern and conforms raw to it with default settings plus
// options.
func Conform(pattern, raw string, options ...session.Option) (string, error) {
	m, err := mask.Parse(pattern)
	if err != nil {
		return "", err
	}
	res, err := Paste(session.New(append([]session.Option{session.WithMask(m)}, options...)...), raw)
	if err != nil {
		return "", err
	}
	return res.Value, nil
}

// ConformPreset conforms raw to the named built-in preset.
func ConformPreset(name, raw string) (string, error) {
	def, ok := presets.Builtins().Get(name)
	if !ok {
		return "", fmt.Errorf("textmask: unknown preset %q", name)
	}
	controller, err := def.Controller(nil)
	if err != nil {
		return "", err
	}
	res, err := Paste(controller, raw)
	if err != nil {
		return "", err
	}
	return res.Value, nil
}
