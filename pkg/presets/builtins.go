package presets

import (
	"unicode"

	"github.com/goliatone/go-textmask/pkg/mask"
	"github.com/goliatone/go-textmask/pkg/pipe"
)

// Built-in preset names.
const (
	NameDate       = "date"
	NameTime       = "time"
	NameUSPhone    = "us-phone"
	NameZip        = "zip"
	NameCreditCard = "credit-card"
	NameCAPostal   = "ca-postal"
	NameDigits     = "digits"
)

// MaxDigits bounds the digits preset.
const MaxDigits = 16

func boolPtr(v bool) *bool { return &v }

// Builtins returns a store with the built-in definitions.
func Builtins() *Store {
	store := NewStore()
	for _, def := range builtinDefinitions() {
		// Built-ins are known to be valid.
		_ = store.Register(def)
	}
	return store
}

func builtinDefinitions() []Definition {
	digits := Dynamic(NameDigits, "Up to 16 digits, growing as they are typed", mask.Func(digitsMask))
	digits.Guide = boolPtr(false)

	return []Definition{
		{Name: NameDate, Mask: "99/99/9999", Description: "Day, month and year"},
		{Name: NameTime, Mask: "99:99", Description: "Hours and minutes"},
		{Name: NameUSPhone, Mask: "({[1-9]}99) []999-9999", Description: "US phone number; the caret stops after the area code"},
		{Name: NameZip, Mask: "99999", Description: "US ZIP code"},
		{Name: NameCreditCard, Mask: "9999 9999 9999 9999", Description: "Card number in groups of four"},
		{Name: NameCAPostal, Mask: "a9a 9a9", Pipe: pipe.NameUpper, Description: "Canadian postal code, upper-cased"},
		digits,
	}
}

// digitsMask grows one slot per digit typed, up to MaxDigits.
func digitsMask(raw string, _ mask.Context) (mask.Mask, bool) {
	count := 0
	for _, r := range raw {
		if unicode.IsDigit(r) {
			count++
		}
	}
	if count < 1 {
		count = 1
	}
	if count > MaxDigits {
		count = MaxDigits
	}
	m := make(mask.Mask, count)
	for i := range m {
		m[i] = mask.Match(mask.Digit)
	}
	return m, true
}
