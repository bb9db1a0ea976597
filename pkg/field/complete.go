package field

// Complete reports whether value fills every slot of placeholder, that is it
// has the placeholder's length and no slot still shows placeholderChar.
func Complete(value, placeholder string, placeholderChar rune) bool {
	v := []rune(value)
	p := []rune(placeholder)
	if len(p) == 0 || len(v) != len(p) {
		return false
	}
	for i, r := range p {
		if r == placeholderChar && v[i] == placeholderChar {
			return false
		}
	}
	return true
}
