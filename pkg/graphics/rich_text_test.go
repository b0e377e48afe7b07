package graphics

import (
	"bytes"
	"testing"
)

func TestTextSpan_PlainText(t *testing.T) {
	tests := []struct {
		name string
		span TextSpan
		want string
	}{
		{"empty", TextSpan{}, ""},
		{"leaf", Span("hello"), "hello"},
		{"nested", Spans(Span("Hello "), Span("World")), "Hello World"},
		{"deep", TextSpan{Text: "a", Children: []TextSpan{
			{Text: "b", Children: []TextSpan{{Text: "c"}}},
		}}, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.PlainText(); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlatten_CollectsLeavesInOrder(t *testing.T) {
	span := TextSpan{
		Text: "root",
		Children: []TextSpan{
			{Text: "a"},
			{Children: []TextSpan{{Text: "b"}, {Text: ""}, {Text: "c"}}},
		},
	}
	flat := Flatten(span, SpanStyle{})
	want := []string{"root", "a", "b", "c"}
	if len(flat) != len(want) {
		t.Fatalf("Flatten returned %d pieces, want %d", len(flat), len(want))
	}
	for i, w := range want {
		if flat[i].Text != w {
			t.Errorf("piece %d = %q, want %q", i, flat[i].Text, w)
		}
	}
}

func TestFlatten_Inheritance(t *testing.T) {
	// Grandparent sets color, parent sets size, leaf sets weight.
	span := TextSpan{
		Style: SpanStyle{Color: 0xFFAA0000},
		Children: []TextSpan{{
			Style:    SpanStyle{FontSize: 20},
			Children: []TextSpan{Span("leaf").Bold()},
		}},
	}
	flat := Flatten(span, SpanStyle{FontFamily: "serif", FontSize: 12})
	if len(flat) != 1 {
		t.Fatalf("Flatten returned %d pieces, want 1", len(flat))
	}
	want := SpanStyle{Color: 0xFFAA0000, FontFamily: "serif", FontSize: 20, FontWeight: FontWeightBold}
	if flat[0].Style != want {
		t.Errorf("style = %+v, want %+v", flat[0].Style, want)
	}
}

func TestFlatten_ExplicitOverrides(t *testing.T) {
	parent := SpanStyle{
		FontStyle:       FontStyleItalic,
		LetterSpacing:   2,
		Decoration:      TextDecorationUnderline,
		BackgroundColor: 0xFFFFFF00,
	}
	child := Span("child").NoLetterSpacing().NoDecoration().NoBackground()
	child.Style.FontStyle = FontStyleNormal

	flat := Flatten(TextSpan{Style: parent, Children: []TextSpan{child}}, SpanStyle{})
	if len(flat) != 1 {
		t.Fatalf("Flatten returned %d pieces, want 1", len(flat))
	}
	got := flat[0].Style
	if got.FontStyle != FontStyleNormal {
		t.Errorf("FontStyle = %v, want normal", got.FontStyle)
	}
	if got.LetterSpacing != explicitZero {
		t.Errorf("LetterSpacing = %v, want the explicit zero sentinel", got.LetterSpacing)
	}
	if got.Decoration != TextDecorationNone {
		t.Errorf("Decoration = %d, want none", got.Decoration)
	}
	if got.HasBackground() {
		t.Error("NoBackground should clear an inherited background")
	}
}

func TestTextSpan_Builders(t *testing.T) {
	s := Span("x").Bold().Italic().Size(20).Color(ColorRed).Family("monospace").
		Underline().LetterSpacing(1.5).Background(0xFF112233)
	want := SpanStyle{
		Color:           ColorRed,
		FontFamily:      "monospace",
		FontSize:        20,
		FontWeight:      FontWeightBold,
		FontStyle:       FontStyleItalic,
		LetterSpacing:   1.5,
		Decoration:      TextDecorationUnderline,
		BackgroundColor: 0xFF112233,
	}
	if s.Style != want {
		t.Errorf("Style = %+v, want %+v", s.Style, want)
	}
	if !s.Style.HasBackground() {
		t.Error("HasBackground() = false, want true")
	}
}

func TestTextSpan_ValueReceiverSemantics(t *testing.T) {
	original := Span("x")
	bold := original.Bold()
	if original.Style.FontWeight != 0 {
		t.Error("Bold() mutated original span")
	}
	if bold.Style.FontWeight != FontWeightBold {
		t.Error("Bold() did not set weight on copy")
	}
}

func TestSpanStyle_AppendHash(t *testing.T) {
	base := SpanStyle{Color: ColorBlack, FontFamily: "serif", FontSize: 14}
	same := base
	if !bytes.Equal(base.AppendHash(nil), same.AppendHash(nil)) {
		t.Error("equal styles should encode identically")
	}

	variants := []SpanStyle{
		{Color: ColorBlack, FontFamily: "serif", FontSize: 15},
		{Color: ColorBlack, FontFamily: "sans", FontSize: 14},
		{Color: ColorBlack, FontFamily: "serif", FontSize: 14, FontWeight: FontWeightBold},
		{Color: ColorBlack, FontFamily: "serif", FontSize: 14, Decoration: TextDecorationNone},
		{Color: ColorBlack, FontFamily: "serif", FontSize: 14, BackgroundColor: noBackgroundColor},
	}
	for _, v := range variants {
		if bytes.Equal(base.AppendHash(nil), v.AppendHash(nil)) {
			t.Errorf("style %+v encodes like %+v", v, base)
		}
	}

	// Family length is part of the encoding, so shifting bytes between
	// family and the following field cannot collide.
	a := SpanStyle{FontFamily: "ab"}
	b := SpanStyle{FontFamily: "a"}
	if bytes.Equal(a.AppendHash(nil), b.AppendHash(nil)) {
		t.Error("different families should encode differently")
	}
}

func TestFontWeightString(t *testing.T) {
	if FontWeightBold.String() != "bold" || FontWeight(450).String() != "FontWeight(450)" {
		t.Errorf("unexpected names %q, %q", FontWeightBold, FontWeight(450))
	}
	if FontStyleItalic.String() != "italic" || FontStyle(0).String() != "unset" {
		t.Errorf("unexpected names %q, %q", FontStyleItalic, FontStyle(0))
	}
}
