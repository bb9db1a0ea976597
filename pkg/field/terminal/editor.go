// Package terminal edits masked values on a raw-mode terminal line.
//
// Editor reads keys through the survey terminal rune reader, applies them to
// an in-memory field and lets the binder conform the result after each edit.
// Prompt is the line-buffered alternative built on survey.Input: the answer
// is conformed as a paste once the user presses enter.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"

	surveyterm "github.com/AlecAivazis/survey/v2/terminal"
	"go.uber.org/zap"

	"github.com/goliatone/go-textmask/pkg/field"
	"github.com/goliatone/go-textmask/pkg/session"
)

// keyClearLine is Ctrl+U.
const keyClearLine = '\x15'

// RuneSource yields key presses. The survey RuneReader satisfies it.
type RuneSource interface {
	ReadRune() (rune, int, error)
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithPrompt sets the text drawn before the value.
func WithPrompt(prompt string) EditorOption {
	return func(e *Editor) {
		e.prompt = prompt
	}
}

// WithStdio sets the terminal streams. Defaults to the process streams.
func WithStdio(stdio surveyterm.Stdio) EditorOption {
	return func(e *Editor) {
		e.stdio = stdio
	}
}

// WithRuneSource replaces the raw-mode reader, leaving the terminal mode
// untouched.
func WithRuneSource(src RuneSource) EditorOption {
	return func(e *Editor) {
		e.source = src
	}
}

// WithInitialValue seeds the line before the first key.
func WithInitialValue(value string) EditorOption {
	return func(e *Editor) {
		e.initial = value
	}
}

// WithLogger sets the editor logger.
func WithLogger(logger *zap.Logger) EditorOption {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Editor is a single-line masked input on a raw terminal.
type Editor struct {
	prompt  string
	initial string
	stdio   surveyterm.Stdio
	source  RuneSource
	logger  *zap.Logger

	buffer *field.Buffer
	queue  *field.Queue
	binder *field.Binder
	last   session.Result
}

// NewEditor binds a fresh line to controller.
func NewEditor(controller *session.Controller, opts ...EditorOption) (*Editor, error) {
	e := &Editor{
		stdio:  surveyterm.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
		logger: zap.NewNop(),
		queue:  &field.Queue{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.buffer = field.NewBuffer(e.initial)
	binder, err := field.Bind(e.buffer, controller, field.WithScheduler(e.queue), field.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	e.binder = binder
	e.queue.Flush()
	e.last = session.Result{Value: e.buffer.Value(), CaretPosition: e.buffer.Caret()}
	return e, nil
}

// Value returns the displayed value.
func (e *Editor) Value() string { return e.buffer.Value() }

// Caret returns the caret position.
func (e *Editor) Caret() int { return e.buffer.Caret() }

// Last returns the result of the latest conforming update.
func (e *Editor) Last() session.Result { return e.last }

// Apply handles one key press. It reports done when the line is submitted.
func (e *Editor) Apply(key rune) (done bool, err error) {
	switch key {
	case surveyterm.KeyEnter, '\n':
		return true, nil
	case surveyterm.KeyInterrupt:
		return false, ErrAborted
	case surveyterm.KeyEndTransmission:
		if e.buffer.Value() == "" {
			return false, ErrAborted
		}
		return false, nil
	case surveyterm.KeyArrowLeft:
		e.buffer.SetCaret(e.buffer.Caret() - 1)
		return false, nil
	case surveyterm.KeyArrowRight:
		e.buffer.SetCaret(e.buffer.Caret() + 1)
		return false, nil
	case surveyterm.SpecialKeyHome:
		e.buffer.SetCaret(0)
		return false, nil
	case surveyterm.SpecialKeyEnd:
		e.buffer.SetCaret(len([]rune(e.buffer.Value())))
		return false, nil
	case surveyterm.KeyBackspace, surveyterm.KeyDelete:
		if !e.buffer.Backspace() {
			return false, nil
		}
	case surveyterm.SpecialKeyDelete:
		if !e.buffer.Delete() {
			return false, nil
		}
	case keyClearLine, surveyterm.KeyDeleteLine:
		e.buffer.Clear()
	default:
		if key == surveyterm.IgnoreKey || unicode.IsControl(key) {
			return false, nil
		}
		e.buffer.Insert(key)
	}
	return false, e.update()
}

func (e *Editor) update() error {
	res, err := e.binder.Update()
	if err != nil {
		return err
	}
	e.queue.Flush()
	e.last = res
	return nil
}

// Run reads keys until the line is submitted and returns the displayed value.
func (e *Editor) Run(ctx context.Context) (string, error) {
	src := e.source
	if src == nil {
		reader := surveyterm.NewRuneReader(e.stdio)
		if err := reader.SetTermMode(); err != nil {
			return "", fmt.Errorf("terminal: raw mode: %w", err)
		}
		defer func() {
			if err := reader.RestoreTermMode(); err != nil {
				e.logger.Warn("textmask: restore terminal mode", zap.Error(err))
			}
		}()
		src = reader
	}

	if err := e.redraw(); err != nil {
		return "", err
	}
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		key, _, err := src.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrAborted
			}
			return "", translateSurveyErr(err)
		}
		done, err := e.Apply(key)
		if err != nil {
			fmt.Fprintln(e.stdio.Out)
			return "", err
		}
		if done {
			_, err := fmt.Fprintln(e.stdio.Out)
			return e.buffer.Value(), err
		}
		if err := e.redraw(); err != nil {
			return "", err
		}
	}
}

func (e *Editor) redraw() error {
	out := e.stdio.Out
	if _, err := io.WriteString(out, "\r"); err != nil {
		return err
	}
	if err := surveyterm.EraseLine(out, surveyterm.ERASE_LINE_ALL); err != nil {
		return err
	}
	value := e.buffer.Value()
	if _, err := fmt.Fprintf(out, "%s%s", e.prompt, value); err != nil {
		return err
	}
	if back := len([]rune(value)) - e.buffer.Caret(); back > 0 {
		cursor := surveyterm.Cursor{In: e.stdio.In, Out: out}
		return cursor.Back(back)
	}
	return nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, surveyterm.InterruptErr) {
		return ErrAborted
	}
	return err
}
