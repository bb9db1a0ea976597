// Package caret recomputes the caret position after a masked edit.
//
// The caret reported by a field after a native edit does not account for
// literals the mask inserted or removed, so it is recomputed from the old and
// new values on every update. Adjust depends only on values; it holds no
// state.
package caret

import "unicode"

// Params describes one edit.
type Params struct {
	PreviousConformedValue string
	PreviousPlaceholder    string
	// CurrentCaretPosition is the caret the field reported after the raw
	// edit, measured in runes.
	CurrentCaretPosition int
	ConformedValue       string
	RawValue             string
	PlaceholderChar      rune
	Placeholder          string
	IndexesOfPipedChars  []int
	CaretTrapIndexes     []int
}

// Adjust returns the caret index to apply after conformance. The result is
// always within [0, len(ConformedValue)] in runes. Deleting more than one
// character from a non-empty value returns CurrentCaretPosition unchanged.
func Adjust(p Params) int {
	position := adjust(newEdit(p))
	if limit := len([]rune(p.ConformedValue)); position > limit {
		return limit
	}
	if position < 0 {
		return 0
	}
	return position
}

type edit struct {
	previous            []rune
	previousPlaceholder []rune
	caret               int
	conformed           []rune
	raw                 []rune
	placeholderChar     rune
	placeholder         []rune
	piped               []int
	traps               map[int]struct{}
}

func newEdit(p Params) edit {
	traps := make(map[int]struct{}, len(p.CaretTrapIndexes))
	for _, idx := range p.CaretTrapIndexes {
		traps[idx] = struct{}{}
	}
	return edit{
		previous:            []rune(p.PreviousConformedValue),
		previousPlaceholder: []rune(p.PreviousPlaceholder),
		caret:               p.CurrentCaretPosition,
		conformed:           []rune(p.ConformedValue),
		raw:                 []rune(p.RawValue),
		placeholderChar:     p.PlaceholderChar,
		placeholder:         []rune(p.Placeholder),
		piped:               p.IndexesOfPipedChars,
		traps:               traps,
	}
}

func (e edit) isTrap(idx int) bool {
	_, ok := e.traps[idx]
	return ok
}

func (e edit) isSlot(idx int) bool {
	r, ok := runeAt(e.placeholder, idx)
	return ok && r == e.placeholderChar
}

func adjust(e edit) int {
	if e.caret == 0 || len(e.raw) == 0 {
		return 0
	}

	editLength := len(e.raw) - len(e.previous)
	isAddition := editLength > 0
	isFirstRawValue := len(e.previous) == 0

	// Multi-character deletions inside the value keep the field's caret.
	if editLength < -1 && !isFirstRawValue {
		return e.caret
	}

	possiblyHasRejectedChar := isAddition &&
		(equalRunes(e.previous, e.conformed) || equalRunes(e.conformed, e.placeholder))

	startingSearchIndex := 0
	trackRightCharacter := false
	var target rune
	hasTarget := false

	if possiblyHasRejectedChar {
		startingSearchIndex = e.caret - editLength
	} else {
		conformed := lowerRunes(e.conformed)
		raw := lowerRunes(e.raw)

		left := raw[:clamp(e.caret, 0, len(raw))]
		intersection := make([]rune, 0, len(left))
		for _, r := range left {
			if containsRune(conformed, r) {
				intersection = append(intersection, r)
			}
		}
		if n := len(intersection); n > 0 {
			target = intersection[n-1]
			hasTarget = true
		}

		n := len(intersection)
		previousLeftMaskChars := countLiterals(e.previousPlaceholder, n, e.placeholderChar)
		leftMaskChars := countLiterals(e.placeholder, n, e.placeholderChar)
		maskLengthChanged := leftMaskChars != previousLeftMaskChars

		targetIsMaskMovingLeft := false
		if prev, ok := runeAt(e.previousPlaceholder, n-1); ok {
			if before, ok := runeAt(e.placeholder, n-2); ok {
				current, hasCurrent := runeAt(e.placeholder, n-1)
				targetIsMaskMovingLeft = prev != e.placeholderChar &&
					(!hasCurrent || prev != current) &&
					prev == before
			}
		}

		if !isAddition &&
			(maskLengthChanged || targetIsMaskMovingLeft) &&
			previousLeftMaskChars > 0 &&
			hasTarget && containsRune(e.placeholder, target) {
			if next, ok := runeAt(e.raw, e.caret); ok {
				trackRightCharacter = true
				target = next
			}
		}

		required := 0
		if hasTarget {
			for _, idx := range e.piped {
				if r, ok := runeAt(conformed, idx); ok && r == target {
					required++
				}
			}
			for _, r := range intersection {
				if r == target {
					required++
				}
			}
			firstSlot := indexRune(e.placeholder, e.placeholderChar)
			for idx := 0; idx < firstSlot; idx++ {
				r := e.placeholder[idx]
				if r != target {
					continue
				}
				if rawRune, ok := runeAt(e.raw, idx); !ok || rawRune != r {
					required++
				}
			}
		}
		if trackRightCharacter {
			required++
		}

		encountered := 0
		for i, r := range conformed {
			startingSearchIndex = i + 1
			if hasTarget && r == target {
				encountered++
			}
			if encountered >= required {
				break
			}
		}
	}

	if isAddition {
		lastSlot := startingSearchIndex
		for i := startingSearchIndex; i <= len(e.placeholder); i++ {
			if e.isSlot(i) {
				lastSlot = i
			}
			if e.isSlot(i) || e.isTrap(i) || i == len(e.placeholder) {
				return lastSlot
			}
		}
		return e.caret
	}

	if trackRightCharacter {
		for i := startingSearchIndex - 1; i >= 0; i-- {
			if r, ok := runeAt(e.conformed, i); (ok && r == target) || e.isTrap(i) || i == 0 {
				return i
			}
		}
		return e.caret
	}

	for i := startingSearchIndex; i >= 0; i-- {
		if e.isSlot(i-1) || e.isTrap(i) || i == 0 {
			return i
		}
	}
	return e.caret
}

func countLiterals(placeholder []rune, n int, placeholderChar rune) int {
	count := 0
	for _, r := range placeholder[:clamp(n, 0, len(placeholder))] {
		if r != placeholderChar {
			count++
		}
	}
	return count
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsRune(rs []rune, target rune) bool {
	return indexRune(rs, target) >= 0
}

func indexRune(rs []rune, target rune) int {
	for i, r := range rs {
		if r == target {
			return i
		}
	}
	return -1
}

func runeAt(rs []rune, idx int) (rune, bool) {
	if idx < 0 || idx >= len(rs) {
		return 0, false
	}
	return rs[idx], true
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
