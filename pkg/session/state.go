package session

// State is the per-field memory of a session. It is owned by exactly one
// bound field and passed by pointer into every update; a rejected update
// leaves it untouched.
type State struct {
	PreviousConformedValue string
	PreviousPlaceholder    string
	// Initialized is false until the first completed update.
	Initialized bool
}

// Reset forgets every previous value, as if the field was re-created.
func (s *State) Reset() {
	if s == nil {
		return
	}
	*s = State{}
}
