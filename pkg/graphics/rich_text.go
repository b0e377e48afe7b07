package graphics

import (
	"encoding/binary"
	"math"
	"strings"
)

// explicitZero is a sentinel for explicitly setting a float64 field to zero
// when the plain zero value means "unset" or "inherit." Users should prefer
// the No* builder methods (e.g. NoLetterSpacing).
const explicitZero float64 = math.SmallestNonzeroFloat64

// noBackgroundColor is a sentinel Color that explicitly clears an inherited
// background. Its value (0x00000001, alpha 0) is visually indistinguishable
// from fully transparent.
const noBackgroundColor Color = 1

// TextDecoration selects a single text decoration line. The zero value means
// "inherit from parent."
type TextDecoration int

const (
	textDecorationUnset TextDecoration = 0 // zero value = inherit

	// TextDecorationNone explicitly removes decoration, overriding any
	// value inherited from a parent span.
	TextDecorationNone TextDecoration = 1

	// TextDecorationUnderline draws a line below the text baseline.
	TextDecorationUnderline TextDecoration = 2

	// TextDecorationOverline draws a line above the text.
	TextDecorationOverline TextDecoration = 3

	// TextDecorationLineThrough draws a line through the middle of the text.
	TextDecorationLineThrough TextDecoration = 4
)

// SpanStyle describes the visual style for a run of text. During span tree
// flattening, zero-valued fields inherit from the parent span's resolved style.
// Non-zero fields override the parent.
//
// SpanStyle is comparable with ==; two styles are the same style exactly when
// every field matches.
type SpanStyle struct {
	Color           Color
	FontFamily      string
	FontSize        float64
	FontWeight      FontWeight
	FontStyle       FontStyle
	LetterSpacing   float64
	Height          float64
	Decoration      TextDecoration
	DecorationColor Color
	BackgroundColor Color
}

// mergeFrom copies parent field values into s for any field that is zero-valued
// in s. Non-zero fields in s are left untouched (child overrides parent).
func (s SpanStyle) mergeFrom(parent SpanStyle) SpanStyle {
	if s.Color == 0 {
		s.Color = parent.Color
	}
	if s.FontFamily == "" {
		s.FontFamily = parent.FontFamily
	}
	if s.FontSize == 0 {
		s.FontSize = parent.FontSize
	}
	if s.FontWeight == 0 {
		s.FontWeight = parent.FontWeight
	}
	if s.FontStyle == 0 {
		s.FontStyle = parent.FontStyle
	}
	if s.LetterSpacing == 0 {
		s.LetterSpacing = parent.LetterSpacing
	}
	if s.Height == 0 {
		s.Height = parent.Height
	}
	if s.Decoration == 0 {
		s.Decoration = parent.Decoration
	}
	if s.DecorationColor == 0 {
		s.DecorationColor = parent.DecorationColor
	}
	if s.BackgroundColor == 0 {
		s.BackgroundColor = parent.BackgroundColor
	}
	return s
}

// HasBackground reports whether the style paints a background behind its text.
func (s SpanStyle) HasBackground() bool {
	return s.BackgroundColor != 0 && s.BackgroundColor != noBackgroundColor
}

// AppendHash appends a canonical encoding of the style to b. Styles that
// compare equal with == produce identical bytes.
func (s SpanStyle) AppendHash(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, uint32(s.Color))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(s.FontFamily)))
	b = append(b, s.FontFamily...)
	b = binary.LittleEndian.AppendUint64(b, FloatBits(s.FontSize))
	b = binary.LittleEndian.AppendUint32(b, uint32(s.FontWeight))
	b = append(b, byte(s.FontStyle), byte(s.Decoration))
	b = binary.LittleEndian.AppendUint64(b, FloatBits(s.LetterSpacing))
	b = binary.LittleEndian.AppendUint64(b, FloatBits(s.Height))
	b = binary.LittleEndian.AppendUint32(b, uint32(s.DecorationColor))
	return binary.LittleEndian.AppendUint32(b, uint32(s.BackgroundColor))
}

// TextSpan represents a node in a tree of styled text. A span renders its own
// Text first, then its Children in order. Child spans inherit style fields
// from their parent for any field left at its zero value.
type TextSpan struct {
	Text     string
	Style    SpanStyle
	Children []TextSpan
}

// PlainText returns the concatenation of all text in the span tree.
func (s TextSpan) PlainText() string {
	if len(s.Children) == 0 {
		return s.Text
	}
	var b strings.Builder
	b.WriteString(s.Text)
	for _, child := range s.Children {
		b.WriteString(child.PlainText())
	}
	return b.String()
}

// Span creates a leaf TextSpan with the given text.
func Span(text string) TextSpan {
	return TextSpan{Text: text}
}

// Spans creates a container TextSpan whose children are the provided spans.
// Style methods chained on the result set defaults inherited by all children.
func Spans(children ...TextSpan) TextSpan {
	return TextSpan{Children: children}
}

// Bold returns a copy with FontWeight set to FontWeightBold.
func (s TextSpan) Bold() TextSpan {
	s.Style.FontWeight = FontWeightBold
	return s
}

// Italic returns a copy with FontStyle set to FontStyleItalic.
func (s TextSpan) Italic() TextSpan {
	s.Style.FontStyle = FontStyleItalic
	return s
}

// Size returns a copy with the specified font size.
func (s TextSpan) Size(size float64) TextSpan {
	s.Style.FontSize = size
	return s
}

// Color returns a copy with the specified text color.
func (s TextSpan) Color(c Color) TextSpan {
	s.Style.Color = c
	return s
}

// Family returns a copy with the specified font family.
func (s TextSpan) Family(name string) TextSpan {
	s.Style.FontFamily = name
	return s
}

// Underline returns a copy with an underline decoration.
func (s TextSpan) Underline() TextSpan {
	s.Style.Decoration = TextDecorationUnderline
	return s
}

// NoDecoration returns a copy with decoration explicitly set to none. This
// allows a child span to remove a decoration inherited from a parent.
func (s TextSpan) NoDecoration() TextSpan {
	s.Style.Decoration = TextDecorationNone
	return s
}

// LetterSpacing returns a copy with the specified letter spacing.
func (s TextSpan) LetterSpacing(v float64) TextSpan {
	s.Style.LetterSpacing = v
	return s
}

// NoLetterSpacing returns a copy that explicitly resets letter spacing to zero,
// overriding any value inherited from a parent span.
func (s TextSpan) NoLetterSpacing() TextSpan {
	s.Style.LetterSpacing = explicitZero
	return s
}

// Background returns a copy with the specified background color.
func (s TextSpan) Background(c Color) TextSpan {
	s.Style.BackgroundColor = c
	return s
}

// NoBackground returns a copy that explicitly clears background color,
// overriding any value inherited from a parent span.
func (s TextSpan) NoBackground() TextSpan {
	s.Style.BackgroundColor = noBackgroundColor
	return s
}

// StyledText is a resolved text + style pair produced by flattening a
// TextSpan tree.
type StyledText struct {
	Text  string
	Style SpanStyle
}

// Flatten walks a TextSpan tree depth-first, collecting non-empty
// (text, style) pairs. Each child's style is merged with the parent's
// resolved style so that unset fields are inherited; base supplies the
// defaults for the root.
func Flatten(span TextSpan, base SpanStyle) []StyledText {
	resolved := span.Style.mergeFrom(base)
	var result []StyledText
	if span.Text != "" {
		result = append(result, StyledText{Text: span.Text, Style: resolved})
	}
	for _, child := range span.Children {
		result = append(result, Flatten(child, resolved)...)
	}
	return result
}
