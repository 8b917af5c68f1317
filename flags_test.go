package ggterm

import "testing"

func TestFlags_String(t *testing.T) {
	tests := []struct {
		f    Flags
		want string
	}{
		{0, "0"},
		{Underline, "Underline"},
		{Underline | WideChar, "Underline|WideChar"},
		{Strikeout | RoundedBackground, "Strikeout|RoundedBackground"},
		{1 << 12, "Flags(unknown)"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("Flags(%d).String() = %q, want %q", uint16(tt.f), got, tt.want)
		}
	}
}

func TestDecorationIndex(t *testing.T) {
	for i, f := range Decorations() {
		if got := decorationIndex(f); got != i {
			t.Errorf("decorationIndex(%v) = %d, want %d", f, got, i)
		}
	}
	if got := decorationIndex(Underline | Strikeout); got != -1 {
		t.Errorf("combined flags index = %d, want -1", got)
	}
}
