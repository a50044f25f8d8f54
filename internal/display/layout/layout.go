// internal/display/layout/layout.go
package layout

import (
	"strconv"
	"strings"
)

// FieldChars is the fixed width of each dynamic field.
// A field is blanked to this width before the new value is written.
const FieldChars = 5

// RuleChars is the width of the header rule lines.
const RuleChars = 27

// Field is one label + value slot.
// X/Y are pixel positions (value origin); Row/Col are 1-based text cells.
type Field struct {
	Label  string
	LabelX int16
	X      int16
	Y      int16
	Row    int
	Col    int
	Width  int
}

// Layout is the fixed two-field panel.
type Layout struct {
	Title   string
	Rule    string
	Analog  Field
	Digital Field
}

// Default is the KY-028 panel layout.
func Default(title string) Layout {
	return Layout{
		Title: title,
		Rule:  strings.Repeat("-", RuleChars),
		Analog: Field{
			Label: "Analog Value: ",
			X:     100, Y: 70,
			Row: 5, Col: 16,
			Width: FieldChars,
		},
		Digital: Field{
			Label: "Digital State: ",
			X:     100, Y: 100,
			Row: 6, Col: 16,
			Width: FieldChars,
		},
	}
}

// Header returns the static header lines, top to bottom.
func (l Layout) Header() []string {
	return []string{l.Rule, l.Title, l.Rule}
}

// AnalogText formats a raw analog value for its field.
func (l Layout) AnalogText(v int) string {
	return Fit(strconv.Itoa(v), l.Analog.Width)
}

// DigitalText formats a digital level for its field.
func (l Layout) DigitalText(high bool) string {
	if high {
		return Fit("HIGH", l.Digital.Width)
	}
	return Fit("LOW", l.Digital.Width)
}

// Fit truncates s to width characters. No padding.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) > width {
		return s[:width]
	}
	return s
}

// Blank is the pad string for a field.
func Blank(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(" ", width)
}
