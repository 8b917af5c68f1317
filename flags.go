package ggterm

import "strings"

// Flags is the set of per-cell attributes ggterm cares about.
//
// The seven decoration flags are merged independently; WideChar only marks
// the leading half of a double-width character so its spacer column is
// covered by the decoration.
type Flags uint16

const (
	// Underline draws a single solid line at the font's underline position.
	Underline Flags = 1 << iota
	// DoubleUnderline draws two solid lines inside the descent area.
	DoubleUnderline
	// Strikeout draws a solid line at the font's strikeout position using
	// the cell foreground color.
	Strikeout
	// Undercurl draws a wavy line filling the descent area.
	Undercurl
	// DottedUnderline draws a dotted line filling the descent area.
	DottedUnderline
	// DashedUnderline draws a dashed line at the underline position.
	DashedUnderline
	// RoundedBackground draws a rounded highlight covering the whole cell.
	RoundedBackground
	// WideChar marks the leading half of a double-width character.
	WideChar
)

// NumDecorations is the number of decoration flags.
const NumDecorations = 7

// decorations lists the decoration flags in their fixed processing order.
var decorations = [NumDecorations]Flags{
	Underline,
	DoubleUnderline,
	Strikeout,
	Undercurl,
	DottedUnderline,
	DashedUnderline,
	RoundedBackground,
}

// Decorations returns the decoration flags in processing order.
func Decorations() [NumDecorations]Flags {
	return decorations
}

// decorationIndex returns the slot of a single decoration flag, or -1 if
// flag is not exactly one decoration.
func decorationIndex(flag Flags) int {
	for i, f := range decorations {
		if f == flag {
			return i
		}
	}
	return -1
}

// Contains reports whether all bits of other are set in f.
func (f Flags) Contains(other Flags) bool {
	return f&other == other
}

var flagNames = [...]string{
	"Underline",
	"DoubleUnderline",
	"Strikeout",
	"Undercurl",
	"DottedUnderline",
	"DashedUnderline",
	"RoundedBackground",
	"WideChar",
}

// String returns the flag names joined with '|'.
func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var b strings.Builder
	for i, name := range flagNames {
		if f&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(name)
	}
	if rest := f &^ (1<<len(flagNames) - 1); rest != 0 {
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString("Flags(unknown)")
	}
	return b.String()
}
