package mask

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var digit = regexp.MustCompile(`\d`)

func TestToPlaceholder_MapsMatchersToPlaceholderChar(t *testing.T) {
	m := MustOf(digit, "/", digit, digit)

	got, err := ToPlaceholder(m, '_')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "_/__" {
		t.Fatalf("expected %q, got %q", "_/__", got)
	}
}

func TestToPlaceholder_CustomPlaceholderChar(t *testing.T) {
	m := MustParse("(999) 999")

	got, err := ToPlaceholder(m, '#')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "(###) ###" {
		t.Fatalf("unexpected placeholder: %q", got)
	}
}

func TestToPlaceholder_RejectsPlaceholderLiteral(t *testing.T) {
	m := MustOf(digit, "_", digit)

	_, err := ToPlaceholder(m, '_')
	if !errors.Is(err, ErrPlaceholderConflict) {
		t.Fatalf("expected placeholder conflict, got %v", err)
	}
	var conflict *PlaceholderConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *PlaceholderConflictError, got %T", err)
	}
	if conflict.Index != 1 || conflict.Placeholder != '_' {
		t.Fatalf("unexpected conflict details: %#v", conflict)
	}
}

func TestToPlaceholder_RejectsInvalidElements(t *testing.T) {
	if _, err := ToPlaceholder(Mask{Lit('a'), {}}, '_'); !errors.Is(err, ErrInvalidMask) {
		t.Fatalf("expected invalid mask for zero element, got %v", err)
	}
	if _, err := ToPlaceholder(Mask{Match(Digit), CaretTrap}, '_'); !errors.Is(err, ErrInvalidMask) {
		t.Fatalf("expected invalid mask for caret trap, got %v", err)
	}
}

func TestExtractCaretTraps_RecordsOriginalIndexes(t *testing.T) {
	m := MustOf(digit, "[]", "[]", "-", digit, "[]")

	cleaned, traps := ExtractCaretTraps(m)

	if diff := cmp.Diff([]int{1, 2, 5}, traps); diff != "" {
		t.Fatalf("trap indexes mismatch (-want +got):\n%s", diff)
	}
	if len(cleaned) != 3 {
		t.Fatalf("expected 3 elements after extraction, got %d (%s)", len(cleaned), cleaned)
	}
	placeholder, err := ToPlaceholder(cleaned, '_')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if placeholder != "_-_" {
		t.Fatalf("unexpected placeholder: %q", placeholder)
	}
}

func TestExtractCaretTraps_NoTraps(t *testing.T) {
	m := MustParse("99")
	cleaned, traps := ExtractCaretTraps(m)
	if traps != nil {
		t.Fatalf("expected no traps, got %v", traps)
	}
	if len(cleaned) != 2 {
		t.Fatalf("expected mask to pass through, got %s", cleaned)
	}
}

func TestOf_RejectsUnsupportedItems(t *testing.T) {
	cases := []any{42.0, "ab", struct{}{}, (*regexp.Regexp)(nil), Element{}}
	for _, item := range cases {
		if _, err := Of(item); !errors.Is(err, ErrInvalidMask) {
			t.Fatalf("expected invalid mask for %#v, got %v", item, err)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		pattern     string
		placeholder string
		traps       []int
	}{
		{pattern: "99/99/9999", placeholder: "__/__/____"},
		{pattern: `\9-9`, placeholder: "9-_"},
		{pattern: "(999)[] 999", placeholder: "(___) ___", traps: []int{5}},
		{pattern: "{[0-3]}9", placeholder: "__"},
		{pattern: "[x]", placeholder: "[x]"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			m, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			cleaned, traps := ExtractCaretTraps(m)
			if diff := cmp.Diff(tt.traps, traps); diff != "" {
				t.Fatalf("traps mismatch (-want +got):\n%s", diff)
			}
			got, err := ToPlaceholder(cleaned, '_')
			if err != nil {
				t.Fatalf("placeholder: %v", err)
			}
			if got != tt.placeholder {
				t.Fatalf("expected %q, got %q", tt.placeholder, got)
			}
		})
	}
}

func TestParse_RegexpClassMatchesSingleRune(t *testing.T) {
	m := MustParse("{[0-3]}")
	matcher, ok := m[0].Matcher()
	if !ok {
		t.Fatalf("expected matcher element, got %s", m[0])
	}
	if !matcher.Match('2') || matcher.Match('4') || matcher.Match('a') {
		t.Fatalf("class matcher misbehaves")
	}
}

func TestParse_Errors(t *testing.T) {
	for _, pattern := range []string{`99\`, "{[0-3]", "{}", "{[}"} {
		if _, err := Parse(pattern); !errors.Is(err, ErrInvalidMask) {
			t.Fatalf("expected invalid mask for %q, got %v", pattern, err)
		}
	}
}

func TestFunc_Resolve(t *testing.T) {
	calls := 0
	provider := Func(func(raw string, ctx Context) (Mask, bool) {
		calls++
		if raw == "reject" {
			return nil, false
		}
		if ctx.PlaceholderChar != '#' {
			t.Fatalf("context not forwarded: %#v", ctx)
		}
		return MustParse("99"), true
	})

	if _, ok := provider.Resolve("reject", Context{PlaceholderChar: '#'}); ok {
		t.Fatalf("expected rejection")
	}
	m, ok := provider.Resolve("1", Context{PlaceholderChar: '#'})
	if !ok || len(m) != 2 {
		t.Fatalf("unexpected resolution: %s %v", m, ok)
	}
	if calls != 2 {
		t.Fatalf("expected provider to be called twice, got %d", calls)
	}
	if _, ok := Func(nil).Resolve("", Context{}); ok {
		t.Fatalf("nil func must reject")
	}
}

type stringer struct{}

func (stringer) String() string { return "42" }

func TestRawValue(t *testing.T) {
	str := "abc"
	tests := []struct {
		in   any
		want string
	}{
		{in: nil, want: ""},
		{in: "123", want: "123"},
		{in: 123, want: "123"},
		{in: int64(-5), want: "-5"},
		{in: uint8(7), want: "7"},
		{in: 1.5, want: "1.5"},
		{in: stringer{}, want: "42"},
		{in: &str, want: "abc"},
		{in: (*string)(nil), want: ""},
	}
	for _, tt := range tests {
		got, err := RawValue(tt.in)
		if err != nil {
			t.Fatalf("RawValue(%#v): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("RawValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	for _, bad := range []any{true, []string{"a"}, map[string]any{}} {
		if _, err := RawValue(bad); !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("expected invalid value for %#v, got %v", bad, err)
		}
	}
}
