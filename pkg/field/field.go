// Package field binds a masking session to an editable text field.
//
// A Field is anything with a value, a caret and a focus flag: a terminal
// line, a bubbletea text input, a test double. The Binder reads the field
// after every native edit, runs the session controller and writes the
// conformed value and caret back.
package field

import "sync"

// Field is the narrow surface the binder needs from an editable control.
// Caret positions are rune indexes.
type Field interface {
	Value() string
	Caret() int
	Focused() bool
	SetValue(value string)
	SetCaret(position int)
}

// Scheduler decides when a caret writeback runs. Some platforms need the
// selection applied after the current event has been processed.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

// Schedule implements Scheduler.
func (s SchedulerFunc) Schedule(fn func()) {
	s(fn)
}

// Immediate runs the callback synchronously.
var Immediate Scheduler = SchedulerFunc(func(fn func()) {
	if fn != nil {
		fn()
	}
})

// Queue holds callbacks until Flush is called, usually once per event loop
// tick.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// Schedule implements Scheduler.
func (q *Queue) Schedule(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len reports the number of pending callbacks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs the callbacks queued so far and returns how many ran.
// Callbacks scheduled while flushing wait for the next Flush.
func (q *Queue) Flush() int {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Buffer is an in-memory Field with the editing primitives of a single line
// input.
type Buffer struct {
	value   []rune
	caret   int
	focused bool
}

// NewBuffer returns a focused buffer holding value with the caret at its end.
func NewBuffer(value string) *Buffer {
	runes := []rune(value)
	return &Buffer{value: runes, caret: len(runes), focused: true}
}

// Value implements Field.
func (b *Buffer) Value() string { return string(b.value) }

// Caret implements Field.
func (b *Buffer) Caret() int { return b.caret }

// Focused implements Field.
func (b *Buffer) Focused() bool { return b.focused }

// SetFocused toggles focus.
func (b *Buffer) SetFocused(focused bool) { b.focused = focused }

// SetValue implements Field. The caret is clamped to the new value.
func (b *Buffer) SetValue(value string) {
	b.value = []rune(value)
	b.SetCaret(b.caret)
}

// SetCaret implements Field.
func (b *Buffer) SetCaret(position int) {
	switch {
	case position < 0:
		b.caret = 0
	case position > len(b.value):
		b.caret = len(b.value)
	default:
		b.caret = position
	}
}

// Insert types r at the caret.
func (b *Buffer) Insert(r rune) {
	next := make([]rune, 0, len(b.value)+1)
	next = append(next, b.value[:b.caret]...)
	next = append(next, r)
	next = append(next, b.value[b.caret:]...)
	b.value = next
	b.caret++
}

// Backspace removes the rune before the caret. It reports whether anything
// changed.
func (b *Buffer) Backspace() bool {
	if b.caret == 0 {
		return false
	}
	b.value = append(b.value[:b.caret-1], b.value[b.caret:]...)
	b.caret--
	return true
}

// Delete removes the rune after the caret. It reports whether anything
// changed.
func (b *Buffer) Delete() bool {
	if b.caret >= len(b.value) {
		return false
	}
	b.value = append(b.value[:b.caret], b.value[b.caret+1:]...)
	return true
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.value = nil
	b.caret = 0
}
