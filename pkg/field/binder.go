package field

import (
	"errors"

	"go.uber.org/zap"

	"github.com/goliatone/go-textmask/pkg/session"
)

var (
	// ErrNilField is returned when binding without a field.
	ErrNilField = errors.New("field: field is nil")
	// ErrNilController is returned when binding without a controller.
	ErrNilController = errors.New("field: controller is nil")
)

// Option configures a Binder.
type Option func(*Binder)

// WithScheduler sets how caret writebacks are run. Defaults to Immediate.
func WithScheduler(s Scheduler) Option {
	return func(b *Binder) {
		if s != nil {
			b.scheduler = s
		}
	}
}

// WithLogger sets the binder logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithSessionOptions applies per-update overrides on every update run by the
// binder.
func WithSessionOptions(opts ...session.Option) Option {
	return func(b *Binder) {
		b.overrides = append(b.overrides, opts...)
	}
}

// Binder keeps one field conformed to a mask. It owns the session state of
// that field and is not safe for concurrent use.
type Binder struct {
	field      Field
	controller *session.Controller
	state      session.State
	scheduler  Scheduler
	logger     *zap.Logger
	overrides  []session.Option
}

// Bind attaches controller to f and conforms the value the field already
// holds.
func Bind(f Field, controller *session.Controller, opts ...Option) (*Binder, error) {
	if f == nil {
		return nil, ErrNilField
	}
	if controller == nil {
		return nil, ErrNilController
	}
	b := &Binder{
		field:      f,
		controller: controller,
		scheduler:  Immediate,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if _, err := b.Update(); err != nil {
		return nil, err
	}
	return b, nil
}

// Update conforms the current field contents. Call it after every native
// edit.
func (b *Binder) Update() (session.Result, error) {
	res, err := b.controller.Update(&b.state, session.Input{
		RawValue:      b.field.Value(),
		CaretPosition: b.field.Caret(),
	}, b.overrides...)
	if err != nil {
		return session.Result{}, err
	}
	b.apply(res)
	return res, nil
}

// SetValue replaces the field contents programmatically. Strings, numbers
// and nil are accepted.
func (b *Binder) SetValue(v any) (session.Result, error) {
	res, err := b.controller.UpdateValue(&b.state, v, b.field.Caret(), b.overrides...)
	if err != nil {
		return session.Result{}, err
	}
	b.apply(res)
	return res, nil
}

// Reset forgets the session memory, as if the field had just been bound.
func (b *Binder) Reset() {
	b.state.Reset()
}

// State returns a copy of the session state.
func (b *Binder) State() session.State {
	return b.state
}

// Controller returns the controller driving the field.
func (b *Binder) Controller() *session.Controller {
	return b.controller
}

// Field returns the bound field.
func (b *Binder) Field() Field {
	return b.field
}

// apply leaves the field alone, caret included, when it already shows the
// conformed value.
func (b *Binder) apply(res session.Result) {
	if res.Value == b.field.Value() {
		return
	}
	b.field.SetValue(res.Value)
	if res.MaskRejected {
		b.logger.Debug("textmask: field reverted", zap.Int("caret", res.CaretPosition))
	}
	if !b.field.Focused() {
		return
	}
	position := res.CaretPosition
	field := b.field
	b.scheduler.Schedule(func() {
		field.SetCaret(position)
	})
}
