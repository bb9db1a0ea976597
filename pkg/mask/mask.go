package mask

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// DefaultPlaceholderChar fills matcher slots when no other rune is configured.
const DefaultPlaceholderChar = '_'

// CaretTrapMarker is the textual form of a caret trap inside a mask.
const CaretTrapMarker = "[]"

// Matcher decides whether a single rune can fill a mask slot.
type Matcher interface {
	Match(r rune) bool
}

// MatcherFunc adapts a plain function to the Matcher interface.
type MatcherFunc func(r rune) bool

// Match implements Matcher.
func (fn MatcherFunc) Match(r rune) bool {
	if fn == nil {
		return false
	}
	return fn(r)
}

// Built-in character classes.
var (
	Digit        Matcher = MatcherFunc(unicode.IsDigit)
	Letter       Matcher = MatcherFunc(unicode.IsLetter)
	Upper        Matcher = MatcherFunc(unicode.IsUpper)
	Lower        Matcher = MatcherFunc(unicode.IsLower)
	Alphanumeric Matcher = MatcherFunc(func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
	Any Matcher = MatcherFunc(func(rune) bool { return true })
)

type regexpMatcher struct {
	re *regexp.Regexp
}

func (m regexpMatcher) Match(r rune) bool {
	return m.re.MatchString(string(r))
}

func (m regexpMatcher) String() string {
	return "/" + m.re.String() + "/"
}

// Regexp wraps a compiled expression; it is tested against one rune at a time.
func Regexp(re *regexp.Regexp) Matcher {
	if re == nil {
		return nil
	}
	return regexpMatcher{re: re}
}

// Pattern compiles expr and returns a Matcher for it.
func Pattern(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("mask: compile pattern %q: %w", expr, err)
	}
	return regexpMatcher{re: re}, nil
}

// MustPattern is like Pattern but panics on an invalid expression.
func MustPattern(expr string) Matcher {
	m, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return m
}

type elementKind uint8

const (
	kindInvalid elementKind = iota
	kindLiteral
	kindMatcher
	kindTrap
)

// Element is one position of a mask.
type Element struct {
	kind    elementKind
	literal rune
	matcher Matcher
}

// CaretTrap is a zero-width anchor that never consumes input but marks a
// preferred caret stop.
var CaretTrap = Element{kind: kindTrap}

// Lit returns a literal element.
func Lit(r rune) Element {
	return Element{kind: kindLiteral, literal: r}
}

// Match returns a matcher element. A nil matcher yields an invalid element.
func Match(m Matcher) Element {
	if m == nil {
		return Element{}
	}
	return Element{kind: kindMatcher, matcher: m}
}

// Literal reports the literal rune of the element, if it is one.
func (e Element) Literal() (rune, bool) {
	return e.literal, e.kind == kindLiteral
}

// Matcher reports the matcher of the element, if it is one.
func (e Element) Matcher() (Matcher, bool) {
	return e.matcher, e.kind == kindMatcher
}

// IsCaretTrap reports whether the element is the caret trap marker.
func (e Element) IsCaretTrap() bool {
	return e.kind == kindTrap
}

// Valid reports whether the element is a literal, matcher or caret trap.
func (e Element) Valid() bool {
	return e.kind != kindInvalid
}

func (e Element) String() string {
	switch e.kind {
	case kindLiteral:
		return string(e.literal)
	case kindMatcher:
		if s, ok := e.matcher.(fmt.Stringer); ok {
			return s.String()
		}
		return "<matcher>"
	case kindTrap:
		return CaretTrapMarker
	default:
		return "<invalid>"
	}
}

// Mask is an ordered sequence of literals, matchers and caret traps.
type Mask []Element

// Resolve implements Provider for fixed masks.
func (m Mask) Resolve(string, Context) (Mask, bool) {
	return m, true
}

func (m Mask) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, el := range m {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(el.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Of builds a mask from loosely typed items: runes, one-rune strings, the
// "[]" caret trap marker, Elements, Matchers and compiled regular
// expressions.
func Of(items ...any) (Mask, error) {
	out := make(Mask, 0, len(items))
	for idx, item := range items {
		switch typed := item.(type) {
		case Element:
			if !typed.Valid() {
				return nil, fmt.Errorf("mask: item %d is not a valid element: %w", idx, ErrInvalidMask)
			}
			out = append(out, typed)
		case rune:
			out = append(out, Lit(typed))
		case string:
			if typed == CaretTrapMarker {
				out = append(out, CaretTrap)
				continue
			}
			runes := []rune(typed)
			if len(runes) != 1 {
				return nil, fmt.Errorf("mask: item %d literal %q must be a single character: %w", idx, typed, ErrInvalidMask)
			}
			out = append(out, Lit(runes[0]))
		case *regexp.Regexp:
			if typed == nil {
				return nil, fmt.Errorf("mask: item %d is a nil regexp: %w", idx, ErrInvalidMask)
			}
			out = append(out, Match(Regexp(typed)))
		case Matcher:
			out = append(out, Match(typed))
		case func(rune) bool:
			if typed == nil {
				return nil, fmt.Errorf("mask: item %d is a nil matcher: %w", idx, ErrInvalidMask)
			}
			out = append(out, Match(MatcherFunc(typed)))
		default:
			return nil, fmt.Errorf("mask: item %d has unsupported type %T: %w", idx, item, ErrInvalidMask)
		}
	}
	return out, nil
}

// MustOf is like Of but panics when the items do not form a mask.
func MustOf(items ...any) Mask {
	m, err := Of(items...)
	if err != nil {
		panic(err)
	}
	return m
}

// ToPlaceholder maps every literal to itself and every matcher to
// placeholderChar. Caret traps must be removed with ExtractCaretTraps first.
func ToPlaceholder(m Mask, placeholderChar rune) (string, error) {
	out := make([]rune, 0, len(m))
	for idx, el := range m {
		switch el.kind {
		case kindLiteral:
			if el.literal == placeholderChar {
				return "", &PlaceholderConflictError{Placeholder: placeholderChar, Index: idx}
			}
			out = append(out, el.literal)
		case kindMatcher:
			out = append(out, placeholderChar)
		case kindTrap:
			return "", fmt.Errorf("mask: caret trap at index %d must be extracted before building a placeholder: %w", idx, ErrInvalidMask)
		default:
			return "", fmt.Errorf("mask: element %d is neither a literal nor a matcher: %w", idx, ErrInvalidMask)
		}
	}
	return string(out), nil
}

// ExtractCaretTraps removes every caret trap from m. Trap indexes are the
// positions the traps held in the original sequence.
func ExtractCaretTraps(m Mask) (Mask, []int) {
	var indexes []int
	cleaned := make(Mask, 0, len(m))
	for idx, el := range m {
		if el.kind == kindTrap {
			indexes = append(indexes, idx)
			continue
		}
		cleaned = append(cleaned, el)
	}
	return cleaned, indexes
}
