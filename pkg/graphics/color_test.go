package graphics

import "testing"

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FF0000", ColorRed, false},
		{"00ff00", ColorGreen, false},
		{"#80000000", RGBA8(0, 0, 0, 0x80), false},
		{" #FFFFFFFF ", ColorWhite, false},
		{"#FFF", 0, true},
		{"#GG0000", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %s, want %s", tt.in, got.Hex(), tt.want.Hex())
		}
	}
}

func TestColor_HexRoundTrip(t *testing.T) {
	c := RGBA8(0x12, 0x34, 0x56, 0x78)
	if c.Hex() != "#78123456" {
		t.Errorf("Hex() = %q, want %q", c.Hex(), "#78123456")
	}
	back, err := ParseHexColor(c.Hex())
	if err != nil || back != c {
		t.Errorf("ParseHexColor(Hex()) = %s, %v", back.Hex(), err)
	}
}

func TestColor_Alpha(t *testing.T) {
	if got := RGBA(0x12, 0x34, 0x56, 0.5); got != RGBA8(0x12, 0x34, 0x56, 128) {
		t.Errorf("RGBA(..., 0.5) = %s, want alpha byte 128", got.Hex())
	}
	c := RGB(10, 20, 30)
	if c.Alpha() != 1 {
		t.Errorf("Alpha() = %v, want 1", c.Alpha())
	}
	half := c.WithAlpha(0.5)
	if uint8(half>>24) != 128 {
		t.Errorf("WithAlpha(0.5) alpha byte = %d, want 128", uint8(half>>24))
	}
	if half&0x00FFFFFF != c&0x00FFFFFF {
		t.Error("WithAlpha should keep the RGB channels")
	}
	if c.WithAlpha(2) != c || c.WithAlpha(-1).Alpha() != 0 {
		t.Error("WithAlpha should clamp to [0, 1]")
	}
}

func TestColor_Clone(t *testing.T) {
	c := ColorPtr(ColorBlue)
	d := c.Clone()
	if d == c || *d != *c {
		t.Fatal("Clone should return an equal, distinct pointer")
	}
	*d = ColorRed
	if *c != ColorBlue {
		t.Error("mutating the clone changed the source")
	}

	var nilColor *Color
	if nilColor.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestTextShadow(t *testing.T) {
	s := NewTextShadow(ColorBlack, 4)
	if s.Offset != (Offset{X: 0, Y: 2}) {
		t.Errorf("Offset = %+v, want {0 2}", s.Offset)
	}
	if s.Sigma() != 2 {
		t.Errorf("Sigma() = %v, want 2", s.Sigma())
	}
	if (TextShadow{BlurRadius: -1}).Sigma() != 0 {
		t.Error("negative blur radius should give a hard shadow")
	}
	if !s.IsVisible() || (TextShadow{Color: ColorTransparent}).IsVisible() {
		t.Error("visibility should follow the color alpha")
	}
}
