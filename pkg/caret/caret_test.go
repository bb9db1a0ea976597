package caret

import "testing"

const datePlaceholder = "__/__/____"

func TestAdjust_ZeroCaretOrEmptyRaw(t *testing.T) {
	if got := Adjust(Params{CurrentCaretPosition: 0, RawValue: "1", ConformedValue: "1_", Placeholder: "__", PlaceholderChar: '_'}); got != 0 {
		t.Fatalf("expected 0 for caret at start, got %d", got)
	}
	if got := Adjust(Params{CurrentCaretPosition: 4, RawValue: "", ConformedValue: "", Placeholder: "__", PlaceholderChar: '_'}); got != 0 {
		t.Fatalf("expected 0 for empty raw value, got %d", got)
	}
}

func TestAdjust_TypingSequence(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   int
	}{
		{
			name: "first digit",
			params: Params{
				CurrentCaretPosition: 1,
				RawValue:             "1",
				ConformedValue:       "1_/__/____",
			},
			want: 1,
		},
		{
			name: "second digit skips literal",
			params: Params{
				PreviousConformedValue: "1_/__/____",
				PreviousPlaceholder:    datePlaceholder,
				CurrentCaretPosition:   2,
				RawValue:               "12_/__/____",
				ConformedValue:         "12/__/____",
			},
			want: 3,
		},
		{
			name: "delete last digit",
			params: Params{
				PreviousConformedValue: "12/__/____",
				PreviousPlaceholder:    datePlaceholder,
				CurrentCaretPosition:   1,
				RawValue:               "1/__/____",
				ConformedValue:         "1_/__/____",
			},
			want: 1,
		},
		{
			name: "addition advances over literal run",
			params: Params{
				PreviousConformedValue: "12/3_/____",
				PreviousPlaceholder:    datePlaceholder,
				CurrentCaretPosition:   5,
				RawValue:               "12/34_/____",
				ConformedValue:         "12/34/____",
			},
			want: 6,
		},
		{
			name: "deletion lands before literal",
			params: Params{
				PreviousConformedValue: "12/3_/____",
				PreviousPlaceholder:    datePlaceholder,
				CurrentCaretPosition:   3,
				RawValue:               "12/_/____",
				ConformedValue:         "12/__/____",
			},
			want: 2,
		},
		{
			name: "rejected character keeps caret",
			params: Params{
				PreviousConformedValue: "1_/__/____",
				PreviousPlaceholder:    datePlaceholder,
				CurrentCaretPosition:   2,
				RawValue:               "1a_/__/____",
				ConformedValue:         "1_/__/____",
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Placeholder = datePlaceholder
			tt.params.PlaceholderChar = '_'
			if got := Adjust(tt.params); got != tt.want {
				t.Fatalf("expected caret %d, got %d", tt.want, got)
			}
		})
	}
}

func TestAdjust_CaretTrapStopsDeletion(t *testing.T) {
	params := Params{
		PreviousConformedValue: "1 (2",
		PreviousPlaceholder:    "_ (_",
		CurrentCaretPosition:   3,
		RawValue:               "1 (",
		ConformedValue:         "1 (_",
		PlaceholderChar:        '_',
		Placeholder:            "_ (_",
	}
	if got := Adjust(params); got != 1 {
		t.Fatalf("expected caret 1 without trap, got %d", got)
	}

	params.CaretTrapIndexes = []int{2}
	if got := Adjust(params); got != 2 {
		t.Fatalf("expected caret at trap index 2, got %d", got)
	}
}

func TestAdjust_CaretTrapStopsAddition(t *testing.T) {
	params := Params{
		PreviousConformedValue: "1",
		PreviousPlaceholder:    "__--__",
		CurrentCaretPosition:   2,
		RawValue:               "12",
		ConformedValue:         "12--",
		PlaceholderChar:        '_',
		Placeholder:            "__--__",
	}
	if got := Adjust(params); got != 4 {
		t.Fatalf("expected caret 4 without trap, got %d", got)
	}

	params.CaretTrapIndexes = []int{3}
	if got := Adjust(params); got != 2 {
		t.Fatalf("expected caret to stop before trap, got %d", got)
	}
}

func TestAdjust_MultiCharacterInteriorDeletionKeepsCaret(t *testing.T) {
	params := Params{
		PreviousConformedValue: "12/34/5678",
		PreviousPlaceholder:    datePlaceholder,
		CurrentCaretPosition:   3,
		RawValue:               "12//5678",
		ConformedValue:         "12/56/78__",
		PlaceholderChar:        '_',
		Placeholder:            datePlaceholder,
	}
	if got := Adjust(params); got != 3 {
		t.Fatalf("expected caret to stay at 3, got %d", got)
	}
}

func TestAdjust_ResultIsClampedToConformedValue(t *testing.T) {
	params := Params{
		PreviousConformedValue: "12345",
		CurrentCaretPosition:   5,
		RawValue:               "12",
		ConformedValue:         "12",
		PlaceholderChar:        '_',
		Placeholder:            "_____",
	}
	if got := Adjust(params); got != 2 {
		t.Fatalf("expected caret clamped to 2, got %d", got)
	}
}

func TestAdjust_CaseInsensitiveTarget(t *testing.T) {
	params := Params{
		PreviousConformedValue: "A_",
		PreviousPlaceholder:    "__",
		CurrentCaretPosition:   2,
		RawValue:               "Ab_",
		ConformedValue:         "AB",
		PlaceholderChar:        '_',
		Placeholder:            "__",
	}
	if got := Adjust(params); got != 2 {
		t.Fatalf("expected caret 2, got %d", got)
	}
}

func TestAdjust_PipedCharsAreSkipped(t *testing.T) {
	params := Params{
		CurrentCaretPosition: 1,
		RawValue:             "1",
		ConformedValue:       "11",
		PlaceholderChar:      '_',
		Placeholder:          "__",
	}
	if got := Adjust(params); got != 1 {
		t.Fatalf("expected caret 1 without piped chars, got %d", got)
	}

	params.IndexesOfPipedChars = []int{0}
	if got := Adjust(params); got != 2 {
		t.Fatalf("expected caret 2 when first char is piped, got %d", got)
	}
}

func TestAdjust_TracksRightCharacterWhenMaskMovesLeft(t *testing.T) {
	params := Params{
		PreviousConformedValue: "123-45",
		PreviousPlaceholder:    "___-__",
		CurrentCaretPosition:   4,
		RawValue:               "123-5",
		ConformedValue:         "12-35_",
		PlaceholderChar:        '_',
		Placeholder:            "__-___",
	}
	if got := Adjust(params); got != 4 {
		t.Fatalf("expected caret before the tracked character, got %d", got)
	}
}
