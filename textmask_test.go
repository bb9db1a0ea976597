package textmask

import (
	"testing"

	"github.com/goliatone/go-textmask/pkg/session"
)

func TestConform(t *testing.T) {
	got, err := Conform("99/99/9999", "12345678")
	if err != nil {
		t.Fatalf("conform: %v", err)
	}
	if got != "12/34/5678" {
		t.Fatalf("unexpected value %q", got)
	}

	got, err = Conform("99/99/9999", "1", session.WithGuide(false))
	if err != nil {
		t.Fatalf("conform: %v", err)
	}
	if got != "1" {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestConformPreset(t *testing.T) {
	got, err := ConformPreset("us-phone", "2125551234")
	if err != nil {
		t.Fatalf("conform: %v", err)
	}
	if got != "(212) 555-1234" {
		t.Fatalf("unexpected value %q", got)
	}

	if _, err := ConformPreset("nope", "1"); err == nil {
		t.Fatalf("expected unknown preset error")
	}
}

func TestPaste_TracksCaret(t *testing.T) {
	m, err := Parse("99-99")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, err := Paste(NewController(session.WithMask(m)), "12")
	if err != nil {
		t.Fatalf("paste: %v", err)
	}
	if res.Value != "12-__" {
		t.Fatalf("unexpected value %q", res.Value)
	}
}
