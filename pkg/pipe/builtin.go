package pipe

import "unicode"

// Built-in pipe names exposed by the registry.
const (
	NameUpper = "upper"
	NameLower = "lower"
)

// UpperCase upper-cases every letter of the conformed value.
func UpperCase() Pipe {
	return mapRunes(unicode.ToUpper)
}

// LowerCase lower-cases every letter of the conformed value.
func LowerCase() Pipe {
	return mapRunes(unicode.ToLower)
}

// Translate substitutes runes using table and reports every substituted
// position as piped.
func Translate(table map[rune]rune) Pipe {
	return Func(func(conformed string, _ Context) (Result, bool) {
		runes := []rune(conformed)
		var piped []int
		for i, r := range runes {
			if to, ok := table[r]; ok && to != r {
				runes[i] = to
				piped = append(piped, i)
			}
		}
		return Result{Value: string(runes), IndexesOfPipedChars: piped}, true
	})
}

func mapRunes(fn func(rune) rune) Pipe {
	return StringFunc(func(conformed string, _ Context) (string, bool) {
		runes := []rune(conformed)
		for i, r := range runes {
			runes[i] = fn(r)
		}
		return string(runes), true
	})
}
