package terminal

import "errors"

var (
	// ErrAborted signals the user aborted input (Ctrl+C, or Ctrl+D on an
	// empty line).
	ErrAborted = errors.New("terminal: aborted")
	// ErrIncomplete is returned by prompt validation when slots are unfilled.
	ErrIncomplete = errors.New("terminal: value does not fill the mask")
)
