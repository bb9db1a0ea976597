// Package session drives masked editing of one field across successive
// updates.
//
// A Controller holds immutable configuration and can be shared. Each bound
// field owns a State and hands it to Update together with the raw text and
// caret read from the field. Update resolves the mask, conforms the raw
// value, applies the optional pipe, recomputes the caret and decides the
// string to display.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-textmask/pkg/caret"
	"github.com/goliatone/go-textmask/pkg/conform"
	"github.com/goliatone/go-textmask/pkg/mask"
	"github.com/goliatone/go-textmask/pkg/pipe"
)

// ErrNilState is returned when Update is called without a state.
var ErrNilState = errors.New("session: state is nil")

// Input is what a field reports for one edit.
type Input struct {
	RawValue      string
	CaretPosition int
}

// Result is what the field should display after an edit.
type Result struct {
	Value         string
	CaretPosition int
	Placeholder   string
	// CaretTrapIndexes are the trap positions of the mask used for the update.
	CaretTrapIndexes  []int
	SomeCharsRejected bool
	PipeRejected      bool
	// MaskRejected is set when a dynamic mask refused the input; Value holds
	// the previous value and State is untouched.
	MaskRejected bool
	// Skipped is set when the raw value already equals the previous value.
	Skipped bool
}

// Controller orchestrates mask resolution, conformance, pipes and caret
// adjustment.
type Controller struct {
	cfg Config
}

// New constructs a controller from defaults plus options.
func New(opts ...Option) *Controller {
	return &Controller{cfg: applyOptions(DefaultConfig(), opts)}
}

// Config returns a copy of the controller configuration.
func (c *Controller) Config() Config {
	if c == nil {
		return DefaultConfig()
	}
	return c.cfg
}

// UpdateValue normalises v (string, number or nil) and runs Update with it.
func (c *Controller) UpdateValue(st *State, v any, caretPosition int, overrides ...Option) (Result, error) {
	raw, err := mask.RawValue(v)
	if err != nil {
		return Result{}, err
	}
	return c.Update(st, Input{RawValue: raw, CaretPosition: caretPosition}, overrides...)
}

// Update processes one edit and records the displayed value in st.
func (c *Controller) Update(st *State, in Input, overrides ...Option) (Result, error) {
	if st == nil {
		return Result{}, ErrNilState
	}
	cfg := applyOptions(c.Config(), overrides)
	logger := cfg.Logger

	if st.Initialized && in.RawValue == st.PreviousConformedValue {
		return Result{
			Value:         in.RawValue,
			CaretPosition: in.CaretPosition,
			Placeholder:   st.PreviousPlaceholder,
			Skipped:       true,
		}, nil
	}

	provider, p := split(cfg.Mask, cfg.Pipe)
	if provider == nil {
		return Result{}, fmt.Errorf("session: no mask configured: %w", mask.ErrInvalidMask)
	}

	resolved, ok := provider.Resolve(in.RawValue, mask.Context{
		CurrentCaretPosition:   in.CaretPosition,
		PreviousConformedValue: st.PreviousConformedValue,
		PlaceholderChar:        cfg.PlaceholderChar,
	})
	if !ok {
		logger.Debug("textmask: mask rejected input", zap.Int("raw_length", len([]rune(in.RawValue))))
		return rejectedResult(st, in), nil
	}

	m, traps := mask.ExtractCaretTraps(resolved)
	placeholder, err := mask.ToPlaceholder(m, cfg.PlaceholderChar)
	if err != nil {
		return Result{}, err
	}

	conformCfg := conform.Config{
		Guide:                  cfg.Guide,
		PreviousConformedValue: st.PreviousConformedValue,
		PlaceholderChar:        cfg.PlaceholderChar,
		Placeholder:            placeholder,
		KeepCharPositions:      cfg.KeepCharPositions,
	}.WithCaret(in.CaretPosition)

	conformed, err := conform.Conform(in.RawValue, m, conformCfg)
	if err != nil {
		return Result{}, err
	}

	value := conformed.ConformedValue
	var piped []int
	pipeRejected := false
	if p != nil {
		res, ok := p.Pipe(value, pipe.Context{
			RawValue:               in.RawValue,
			PreviousConformedValue: st.PreviousConformedValue,
			Guide:                  cfg.Guide,
			PlaceholderChar:        cfg.PlaceholderChar,
			Placeholder:            placeholder,
			CurrentCaretPosition:   in.CaretPosition,
			KeepCharPositions:      cfg.KeepCharPositions,
		})
		if !ok {
			value = st.PreviousConformedValue
			pipeRejected = true
			logger.Debug("textmask: pipe rejected value")
		} else {
			value = res.Value
			piped = res.IndexesOfPipedChars
			pipeRejected = res.Rejected
		}
	}

	position := caret.Adjust(caret.Params{
		PreviousConformedValue: st.PreviousConformedValue,
		PreviousPlaceholder:    st.PreviousPlaceholder,
		CurrentCaretPosition:   in.CaretPosition,
		ConformedValue:         value,
		RawValue:               in.RawValue,
		PlaceholderChar:        cfg.PlaceholderChar,
		Placeholder:            placeholder,
		IndexesOfPipedChars:    piped,
		CaretTrapIndexes:       traps,
	})

	display := value
	if value == placeholder && position == 0 {
		display = ""
		if cfg.ShowMask {
			display = placeholder
		}
	}

	st.PreviousConformedValue = display
	st.PreviousPlaceholder = placeholder
	st.Initialized = true

	logger.Debug("textmask: update",
		zap.Int("caret_in", in.CaretPosition),
		zap.Int("caret_out", position),
		zap.Bool("chars_rejected", conformed.SomeCharsRejected),
		zap.Bool("pipe_rejected", pipeRejected),
	)

	return Result{
		Value:             display,
		CaretPosition:     position,
		Placeholder:       placeholder,
		CaretTrapIndexes:  traps,
		SomeCharsRejected: conformed.SomeCharsRejected,
		PipeRejected:      pipeRejected,
	}, nil
}

// rejectedResult restores the previous value and puts the caret back where
// it stood before the rejected insertion.
func rejectedResult(st *State, in Input) Result {
	previous := []rune(st.PreviousConformedValue)
	position := in.CaretPosition
	if grown := len([]rune(in.RawValue)) - len(previous); grown > 0 {
		position -= grown
	}
	if position > len(previous) {
		position = len(previous)
	}
	if position < 0 {
		position = 0
	}
	return Result{
		Value:         st.PreviousConformedValue,
		CaretPosition: position,
		Placeholder:   st.PreviousPlaceholder,
		MaskRejected:  true,
	}
}
