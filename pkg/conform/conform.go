// Package conform applies a mask to raw field input.
//
// Conform walks the placeholder derived from the mask and pulls raw runes
// into matcher slots, dropping runes that fit nowhere. It understands
// incremental edits: runes echoed from the previous placeholder are ignored,
// and with KeepCharPositions the positions of untouched runes survive edits
// in the middle of the value.
package conform

import (
	"fmt"

	"github.com/goliatone/go-textmask/pkg/mask"
)

// Config controls a single conformance pass.
type Config struct {
	// Guide shows placeholder filler for unfilled slots. When false the
	// result is trimmed to the last slot filled by real input.
	Guide                  bool
	PreviousConformedValue string
	PlaceholderChar        rune
	// Placeholder overrides the placeholder derived from the mask. It must
	// have been built from the same mask.
	Placeholder       string
	KeepCharPositions bool

	caretPosition int
	hasCaret      bool
}

// DefaultConfig returns the configuration used when callers have no
// preferences: guide on, '_' as placeholder character.
func DefaultConfig() Config {
	return Config{
		Guide:           true,
		PlaceholderChar: mask.DefaultPlaceholderChar,
	}
}

// WithCaret returns a copy of cfg that knows where the caret sits after the
// edit. The caret locates the edited region of the raw value.
func (cfg Config) WithCaret(position int) Config {
	cfg.caretPosition = position
	cfg.hasCaret = true
	return cfg
}

// Caret reports the caret position carried by cfg, if any.
func (cfg Config) Caret() (int, bool) {
	return cfg.caretPosition, cfg.hasCaret
}

// Result is the outcome of a conformance pass.
type Result struct {
	ConformedValue    string
	SomeCharsRejected bool
	// MaskRejected is set when a dynamic mask refused the raw value; the
	// value is returned untouched and callers should keep their previous
	// value.
	MaskRejected bool
}

type rawChar struct {
	char  rune
	isNew bool
}

// Conform applies the mask resolved from provider to raw.
func Conform(raw string, provider mask.Provider, cfg Config) (Result, error) {
	if provider == nil {
		return Result{}, fmt.Errorf("conform: mask provider is nil: %w", mask.ErrInvalidMask)
	}
	if cfg.PlaceholderChar == 0 {
		cfg.PlaceholderChar = mask.DefaultPlaceholderChar
	}

	resolved, ok := provider.Resolve(raw, mask.Context{
		CurrentCaretPosition:   cfg.caretPosition,
		PreviousConformedValue: cfg.PreviousConformedValue,
		PlaceholderChar:        cfg.PlaceholderChar,
	})
	if !ok {
		return Result{ConformedValue: raw, MaskRejected: true}, nil
	}
	m, _ := mask.ExtractCaretTraps(resolved)

	placeholder := cfg.Placeholder
	if placeholder == "" {
		var err error
		placeholder, err = mask.ToPlaceholder(m, cfg.PlaceholderChar)
		if err != nil {
			return Result{}, err
		}
	}

	return conformRunes([]rune(raw), m, []rune(placeholder), cfg), nil
}

func conformRunes(raw []rune, m mask.Mask, placeholder []rune, cfg Config) Result {
	placeholderChar := cfg.PlaceholderChar
	previous := []rune(cfg.PreviousConformedValue)
	suppressGuide := !cfg.Guide

	rawLength := len(raw)
	previousLength := len(previous)
	editDistance := rawLength - previousLength
	isAddition := editDistance > 0

	firstChange := 0
	if cfg.hasCaret {
		firstChange = cfg.caretPosition
		if isAddition {
			firstChange -= editDistance
		}
	}
	lastChange := firstChange + abs(editDistance)

	if cfg.KeepCharPositions && !isAddition {
		var compensating []rune
		for i := firstChange; i < lastChange; i++ {
			if r, ok := runeAt(placeholder, i); ok && r == placeholderChar {
				compensating = append(compensating, placeholderChar)
			}
		}
		at := clamp(firstChange, 0, len(raw))
		padded := make([]rune, 0, len(raw)+len(compensating))
		padded = append(padded, raw[:at]...)
		padded = append(padded, compensating...)
		padded = append(padded, raw[at:]...)
		raw = padded
	}

	chars := make([]rawChar, len(raw))
	for i, r := range raw {
		chars[i] = rawChar{char: r, isNew: i >= firstChange && i < lastChange}
	}

	// Drop runes that merely echo a literal of the placeholder.
	for i := rawLength - 1; i >= 0; i-- {
		if i >= len(chars) {
			continue
		}
		char := chars[i].char
		if char == placeholderChar {
			continue
		}
		idx := i
		if i >= firstChange && previousLength == len(m) {
			idx = i - editDistance
		}
		if r, ok := runeAt(placeholder, idx); ok && r == char {
			chars = append(chars[:i], chars[i+1:]...)
		}
	}

	conformed := make([]rune, 0, len(placeholder))
	someCharsRejected := false

placeholderLoop:
	for i := 0; i < len(placeholder); i++ {
		slot := placeholder[i]
		if slot != placeholderChar {
			conformed = append(conformed, slot)
			continue
		}

		for len(chars) > 0 {
			next := chars[0]
			chars = chars[1:]

			if next.char == placeholderChar && !suppressGuide {
				conformed = append(conformed, placeholderChar)
				continue placeholderLoop
			}
			if !matchesAt(m, i, next.char) {
				someCharsRejected = true
				continue
			}

			if !cfg.KeepCharPositions || !next.isNew || previousLength == 0 || !cfg.Guide || !isAddition {
				conformed = append(conformed, next.char)
				continue placeholderLoop
			}

			// Keep later runes in place by consuming the next free slot
			// filler inside the edited region.
			free := -1
			for j, candidate := range chars {
				if candidate.char != placeholderChar && !candidate.isNew {
					break
				}
				if candidate.char == placeholderChar {
					free = j
					break
				}
			}
			if free >= 0 {
				conformed = append(conformed, next.char)
				chars = append(chars[:free], chars[free+1:]...)
			} else {
				i--
			}
			continue placeholderLoop
		}

		if !suppressGuide {
			conformed = append(conformed, placeholder[i:]...)
		}
		break
	}

	if suppressGuide && !isAddition {
		lastFilled := -1
		for i := range conformed {
			if r, ok := runeAt(placeholder, i); ok && r == placeholderChar {
				lastFilled = i
			}
		}
		conformed = conformed[:lastFilled+1]
	}

	return Result{
		ConformedValue:    string(conformed),
		SomeCharsRejected: someCharsRejected,
	}
}

func matchesAt(m mask.Mask, idx int, r rune) bool {
	if idx < 0 || idx >= len(m) {
		return false
	}
	matcher, ok := m[idx].Matcher()
	if !ok {
		return false
	}
	return matcher.Match(r)
}

func runeAt(rs []rune, idx int) (rune, bool) {
	if idx < 0 || idx >= len(rs) {
		return 0, false
	}
	return rs[idx], true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
