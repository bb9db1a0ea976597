package mask

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMask signals a mask element that is neither a literal nor a
	// matcher, or a value that cannot be turned into a mask.
	ErrInvalidMask = errors.New("mask: invalid mask")
	// ErrInvalidValue signals a raw value that is not a string, number or nil.
	ErrInvalidValue = errors.New("mask: invalid value")
	// ErrPlaceholderConflict signals a placeholder character that is also used
	// as a literal inside the mask.
	ErrPlaceholderConflict = errors.New("mask: placeholder character conflicts with mask literal")
)

// PlaceholderConflictError reports where the placeholder character was found
// inside the mask.
type PlaceholderConflictError struct {
	Placeholder rune
	Index       int
}

func (e *PlaceholderConflictError) Error() string {
	return fmt.Sprintf("mask: placeholder character %q must not be used inside the mask (found at index %d)", e.Placeholder, e.Index)
}

// Is lets errors.Is match ErrPlaceholderConflict.
func (e *PlaceholderConflictError) Is(target error) bool {
	return target == ErrPlaceholderConflict
}
