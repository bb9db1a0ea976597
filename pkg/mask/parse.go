package mask

import (
	"fmt"
	"strings"
)

// Parse turns a compact pattern into a Mask. It is the format used by preset
// files, the CLI and OpenAPI extensions:
//
//	9     digit
//	a     letter
//	A     upper-case letter
//	z     lower-case letter
//	*     letter or digit
//	?     any character
//	{re}  one character matching the regular expression class re
//	[]    caret trap
//	\x    literal x
//
// Every other character is a literal.
func Parse(pattern string) (Mask, error) {
	runes := []rune(pattern)
	out := make(Mask, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '9':
			out = append(out, Match(Digit))
		case 'a':
			out = append(out, Match(Letter))
		case 'A':
			out = append(out, Match(Upper))
		case 'z':
			out = append(out, Match(Lower))
		case '*':
			out = append(out, Match(Alphanumeric))
		case '?':
			out = append(out, Match(Any))
		case '\\':
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("mask: pattern %q ends with a dangling escape: %w", pattern, ErrInvalidMask)
			}
			i++
			out = append(out, Lit(runes[i]))
		case '[':
			if i+1 < len(runes) && runes[i+1] == ']' {
				out = append(out, CaretTrap)
				i++
				continue
			}
			out = append(out, Lit(r))
		case '{':
			end := indexRune(runes, i+1, '}')
			if end < 0 {
				return nil, fmt.Errorf("mask: pattern %q has an unterminated class at %d: %w", pattern, i, ErrInvalidMask)
			}
			expr := strings.TrimSpace(string(runes[i+1 : end]))
			if expr == "" {
				return nil, fmt.Errorf("mask: pattern %q has an empty class at %d: %w", pattern, i, ErrInvalidMask)
			}
			m, err := Pattern("^(?:" + expr + ")$")
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidMask, err)
			}
			out = append(out, Match(m))
			i = end
		default:
			out = append(out, Lit(r))
		}
	}
	return out, nil
}

// MustParse is like Parse but panics on an invalid pattern.
func MustParse(pattern string) Mask {
	m, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
