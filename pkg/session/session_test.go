package session

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-textmask/pkg/mask"
	"github.com/goliatone/go-textmask/pkg/pipe"
)

var dateMask = mask.MustParse("99/99/9999")

func update(t *testing.T, c *Controller, st *State, raw string, caretPosition int, opts ...Option) Result {
	t.Helper()
	res, err := c.Update(st, Input{RawValue: raw, CaretPosition: caretPosition}, opts...)
	if err != nil {
		t.Fatalf("update %q: %v", raw, err)
	}
	return res
}

func TestUpdate_TypingSequence(t *testing.T) {
	c := New(WithMask(dateMask))
	st := &State{}

	steps := []struct {
		raw       string
		caret     int
		wantValue string
		wantCaret int
	}{
		{raw: "1", caret: 1, wantValue: "1_/__/____", wantCaret: 1},
		{raw: "12_/__/____", caret: 2, wantValue: "12/__/____", wantCaret: 3},
		{raw: "1/__/____", caret: 1, wantValue: "1_/__/____", wantCaret: 1},
	}

	for _, step := range steps {
		res := update(t, c, st, step.raw, step.caret)
		if res.Value != step.wantValue || res.CaretPosition != step.wantCaret {
			t.Fatalf("raw %q: expected (%q, %d), got (%q, %d)", step.raw, step.wantValue, step.wantCaret, res.Value, res.CaretPosition)
		}
		if st.PreviousConformedValue != step.wantValue || st.PreviousPlaceholder != "__/__/____" {
			t.Fatalf("raw %q: state not recorded: %#v", step.raw, st)
		}
	}
}

func TestUpdate_EmptyValue(t *testing.T) {
	st := &State{}
	res := update(t, New(WithMask(dateMask)), st, "", 0)
	if res.Value != "" || res.CaretPosition != 0 {
		t.Fatalf("expected blank field, got %#v", res)
	}
	if !st.Initialized || st.PreviousConformedValue != "" {
		t.Fatalf("unexpected state: %#v", st)
	}

	st = &State{}
	res = update(t, New(WithMask(dateMask), WithShowMask(true)), st, "", 0)
	if res.Value != "__/__/____" {
		t.Fatalf("expected placeholder with show mask, got %q", res.Value)
	}
}

func TestUpdate_SkipsUnchangedValue(t *testing.T) {
	c := New(WithMask(dateMask))
	st := &State{}
	update(t, c, st, "1", 1)

	res := update(t, c, st, "1_/__/____", 1)
	if !res.Skipped || res.Value != "1_/__/____" || res.CaretPosition != 1 {
		t.Fatalf("expected skipped update, got %#v", res)
	}

	// An uninitialised state never skips, even for an empty value.
	fresh := &State{}
	if res := update(t, c, fresh, "", 0); res.Skipped {
		t.Fatalf("first update must not be skipped")
	}
}

func TestUpdate_PipeRejectionKeepsPreviousValue(t *testing.T) {
	var seen pipe.Context
	reject := pipe.Func(func(conformed string, ctx pipe.Context) (pipe.Result, bool) {
		seen = ctx
		if strings.Contains(conformed, "2") {
			return pipe.Result{}, false
		}
		return pipe.Result{Value: conformed}, true
	})
	c := New(WithMask(dateMask), WithPipe(reject))
	st := &State{}
	update(t, c, st, "1", 1)

	res := update(t, c, st, "12_/__/____", 2)
	want := Result{
		Value:         "1_/__/____",
		CaretPosition: 1,
		Placeholder:   "__/__/____",
		PipeRejected:  true,
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if seen.RawValue != "12_/__/____" || seen.Placeholder != "__/__/____" || seen.CurrentCaretPosition != 2 {
		t.Fatalf("pipe context not forwarded: %#v", seen)
	}
}

func TestUpdate_StringPipe(t *testing.T) {
	c := New(WithMask(mask.MustParse("aa")), WithPipe(pipe.UpperCase()))
	res := update(t, c, &State{}, "a", 1)
	if res.Value != "A_" || res.CaretPosition != 1 {
		t.Fatalf("unexpected result: %#v", res)
	}
}

func TestUpdate_BundleSuppliesPipe(t *testing.T) {
	bundle := Bundle{Mask: mask.MustParse("aa"), Pipe: pipe.UpperCase()}
	for _, provider := range []mask.Provider{bundle, &bundle} {
		res := update(t, New(WithMask(provider)), &State{}, "a", 1)
		if res.Value != "A_" {
			t.Fatalf("expected bundled pipe to run, got %q", res.Value)
		}
	}

	// A bundle without pipe falls back to the configured one.
	partial := Bundle{Mask: mask.MustParse("aa")}
	res := update(t, New(WithMask(partial), WithPipe(pipe.UpperCase())), &State{}, "b", 1)
	if res.Value != "B_" {
		t.Fatalf("expected configured pipe to run, got %q", res.Value)
	}
}

func TestUpdate_DynamicMaskRejection(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	provider := mask.Func(func(raw string, _ mask.Context) (mask.Mask, bool) {
		if strings.Contains(raw, "x") {
			return nil, false
		}
		return mask.MustParse("9999"), true
	})
	c := New(WithMask(provider), WithLogger(zap.New(core)))
	st := &State{}
	update(t, c, st, "1", 1)
	before := *st

	res := update(t, c, st, "1x___", 2)
	want := Result{
		Value:         "1___",
		CaretPosition: 1,
		Placeholder:   "____",
		MaskRejected:  true,
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, *st); diff != "" {
		t.Fatalf("state changed on rejection (-want +got):\n%s", diff)
	}
	if logs.FilterMessage("textmask: mask rejected input").Len() != 1 {
		t.Fatalf("expected rejection to be logged, got %v", logs.All())
	}
}

func TestUpdate_CaretTraps(t *testing.T) {
	c := New(WithMask(mask.MustParse("9 [](9")))
	st := &State{}

	steps := []struct {
		raw       string
		caret     int
		wantValue string
		wantCaret int
	}{
		{raw: "1", caret: 1, wantValue: "1 (_", wantCaret: 1},
		{raw: "12 (_", caret: 2, wantValue: "1 (2", wantCaret: 4},
		{raw: "1 (", caret: 3, wantValue: "1 (_", wantCaret: 2},
	}
	for _, step := range steps {
		res := update(t, c, st, step.raw, step.caret)
		if res.Value != step.wantValue || res.CaretPosition != step.wantCaret {
			t.Fatalf("raw %q: expected (%q, %d), got (%q, %d)", step.raw, step.wantValue, step.wantCaret, res.Value, res.CaretPosition)
		}
		if diff := cmp.Diff([]int{2}, res.CaretTrapIndexes); diff != "" {
			t.Fatalf("trap indexes mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestUpdate_PerCallOverrides(t *testing.T) {
	c := New(WithMask(dateMask))
	res := update(t, c, &State{}, "1", 1, WithGuide(false))
	if res.Value != "1" || res.CaretPosition != 1 {
		t.Fatalf("unexpected result: %#v", res)
	}
	if !c.Config().Guide {
		t.Fatalf("override leaked into controller config")
	}

	res = update(t, c, &State{}, "1", 1, WithPlaceholderChar('#'))
	if res.Value != "1#/##/####" || res.Placeholder != "##/##/####" {
		t.Fatalf("unexpected result: %#v", res)
	}
}

func TestUpdate_Errors(t *testing.T) {
	c := New(WithMask(dateMask))
	if _, err := c.Update(nil, Input{RawValue: "1"}); !errors.Is(err, ErrNilState) {
		t.Fatalf("expected nil state error, got %v", err)
	}

	st := &State{}
	if _, err := New().Update(st, Input{RawValue: "1", CaretPosition: 1}); !errors.Is(err, mask.ErrInvalidMask) {
		t.Fatalf("expected invalid mask, got %v", err)
	}

	conflict := New(WithMask(mask.MustParse("9_9")))
	if _, err := conflict.Update(st, Input{RawValue: "1", CaretPosition: 1}); !errors.Is(err, mask.ErrPlaceholderConflict) {
		t.Fatalf("expected placeholder conflict, got %v", err)
	}
	if diff := cmp.Diff(State{}, *st); diff != "" {
		t.Fatalf("state changed on error (-want +got):\n%s", diff)
	}
}

func TestUpdateValue(t *testing.T) {
	c := New(WithMask(mask.MustParse("999")))

	res, err := c.UpdateValue(&State{}, 42, 2)
	if err != nil {
		t.Fatalf("update value: %v", err)
	}
	if res.Value != "42_" || res.CaretPosition != 2 {
		t.Fatalf("unexpected result: %#v", res)
	}

	res, err = c.UpdateValue(&State{}, nil, 0)
	if err != nil || res.Value != "" {
		t.Fatalf("expected blank value for nil, got %#v, %v", res, err)
	}

	if _, err := c.UpdateValue(&State{}, struct{}{}, 0); !errors.Is(err, mask.ErrInvalidValue) {
		t.Fatalf("expected invalid value, got %v", err)
	}
}

func TestState_Reset(t *testing.T) {
	st := &State{PreviousConformedValue: "1", PreviousPlaceholder: "_", Initialized: true}
	st.Reset()
	if diff := cmp.Diff(State{}, *st); diff != "" {
		t.Fatalf("reset mismatch (-want +got):\n%s", diff)
	}
	var nilState *State
	nilState.Reset()
}
