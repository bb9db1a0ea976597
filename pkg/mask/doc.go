// Package mask describes character-position masks and the helpers that derive
// placeholders from them.
//
// A Mask is an ordered sequence of elements. Each element is a literal rune,
// a Matcher that accepts or rejects one rune, or the zero-width CaretTrap
// marker. Masks can be fixed (a Mask value) or computed per update through a
// Func; both satisfy Provider so callers resolve them at a single point.
package mask
