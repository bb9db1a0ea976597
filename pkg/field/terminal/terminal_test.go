package terminal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	surveyterm "github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-textmask/pkg/mask"
	"github.com/goliatone/go-textmask/pkg/session"
)

type fakeFile struct {
	bytes.Buffer
}

func (*fakeFile) Fd() uintptr { return 0 }

type scriptedKeys struct {
	keys []rune
}

func (s *scriptedKeys) ReadRune() (rune, int, error) {
	if len(s.keys) == 0 {
		return 0, 0, io.EOF
	}
	r := s.keys[0]
	s.keys = s.keys[1:]
	return r, 1, nil
}

func dateController() *session.Controller {
	return session.New(session.WithMask(mask.MustParse("99/99/9999")))
}

func newTestEditor(t *testing.T, keys ...rune) (*Editor, *fakeFile) {
	t.Helper()
	out := &fakeFile{}
	e, err := NewEditor(dateController(),
		WithStdio(surveyterm.Stdio{In: &fakeFile{}, Out: out, Err: io.Discard}),
		WithRuneSource(&scriptedKeys{keys: keys}),
		WithPrompt("date: "),
	)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	return e, out
}

func applyKeys(t *testing.T, e *Editor, keys ...rune) {
	t.Helper()
	for _, key := range keys {
		if _, err := e.Apply(key); err != nil {
			t.Fatalf("apply %q: %v", key, err)
		}
	}
}

func TestEditor_TypingAndDeleting(t *testing.T) {
	e, _ := newTestEditor(t)

	steps := []struct {
		key       rune
		wantValue string
		wantCaret int
	}{
		{key: '1', wantValue: "1_/__/____", wantCaret: 1},
		{key: '2', wantValue: "12/__/____", wantCaret: 3},
		{key: surveyterm.KeyBackspace, wantValue: "12/__/____", wantCaret: 2},
		{key: surveyterm.KeyDelete, wantValue: "1_/__/____", wantCaret: 1},
		{key: surveyterm.KeyArrowLeft, wantValue: "1_/__/____", wantCaret: 0},
		{key: surveyterm.SpecialKeyEnd, wantValue: "1_/__/____", wantCaret: 10},
		{key: surveyterm.SpecialKeyHome, wantValue: "1_/__/____", wantCaret: 0},
		{key: keyClearLine, wantValue: "", wantCaret: 0},
	}
	for _, step := range steps {
		applyKeys(t, e, step.key)
		if e.Value() != step.wantValue || e.Caret() != step.wantCaret {
			t.Fatalf("key %q: expected (%q, %d), got (%q, %d)", step.key, step.wantValue, step.wantCaret, e.Value(), e.Caret())
		}
	}
}

func TestEditor_RejectedCharacterLeavesLineEmpty(t *testing.T) {
	e, _ := newTestEditor(t)
	applyKeys(t, e, 'a')
	if e.Value() != "" || e.Caret() != 0 {
		t.Fatalf("expected empty line, got (%q, %d)", e.Value(), e.Caret())
	}
	if !e.Last().SomeCharsRejected {
		t.Fatalf("expected rejection flag, got %#v", e.Last())
	}
}

func TestEditor_AbortKeys(t *testing.T) {
	e, _ := newTestEditor(t)
	if _, err := e.Apply(surveyterm.KeyInterrupt); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected abort on interrupt, got %v", err)
	}
	if _, err := e.Apply(surveyterm.KeyEndTransmission); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected abort on end of transmission, got %v", err)
	}

	applyKeys(t, e, '1')
	if _, err := e.Apply(surveyterm.KeyEndTransmission); err != nil {
		t.Fatalf("end of transmission on a non-empty line must be ignored, got %v", err)
	}
}

func TestEditor_Run(t *testing.T) {
	e, out := newTestEditor(t, '1', '2', surveyterm.KeyEnter)
	value, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if value != "12/__/____" {
		t.Fatalf("unexpected value %q", value)
	}
	rendered := out.String()
	if !strings.Contains(rendered, "\x1b[2K") || !strings.Contains(rendered, "date: 12/__/____") {
		t.Fatalf("unexpected output %q", rendered)
	}
}

func TestEditor_RunEndOfInputAborts(t *testing.T) {
	e, _ := newTestEditor(t, '1')
	if _, err := e.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected abort, got %v", err)
	}
}

func TestEditor_RunHonoursContext(t *testing.T) {
	e, _ := newTestEditor(t, '1')
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestPrompt_Validator(t *testing.T) {
	p := &Prompt{Controller: dateController()}
	validate := p.Validator()

	if err := validate("12345678"); err != nil {
		t.Fatalf("complete answer rejected: %v", err)
	}
	if err := validate("1234"); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected incomplete error, got %v", err)
	}
	if err := validate(42); err == nil {
		t.Fatalf("expected error for non-string answer")
	}

	p.AllowIncomplete = true
	if err := validate("1234"); err != nil {
		t.Fatalf("incomplete answer rejected: %v", err)
	}
}

func TestPrompt_Run(t *testing.T) {
	var gotMessage string
	p := &Prompt{
		Message:    "Birthday",
		Controller: dateController(),
		Ask: func(prompt survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
			input, ok := prompt.(*survey.Input)
			if !ok {
				t.Fatalf("expected survey input, got %T", prompt)
			}
			gotMessage = input.Message
			if len(opts) == 0 {
				t.Fatalf("expected validator option")
			}
			*(response.(*string)) = "12345678"
			return nil
		},
	}

	value, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if value != "12/34/5678" || gotMessage != "Birthday" {
		t.Fatalf("unexpected value %q for message %q", value, gotMessage)
	}

	p.Ask = func(survey.Prompt, interface{}, ...survey.AskOpt) error {
		return surveyterm.InterruptErr
	}
	if _, err := p.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected abort, got %v", err)
	}
}
