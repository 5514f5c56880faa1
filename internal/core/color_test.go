package core

import "testing"

func TestTintFullHealth(t *testing.T) {
	bases := []RGB{ColorPlayer, ColorEnemy, ColorFood, ColorSnake, 0x123456}
	for _, base := range bases {
		if got := Tint(base, 10, 10); got != base {
			t.Errorf("Tint(%v, 10, 10) = %v, expected %v", base, got, base)
		}
	}
}

func TestTintZeroHealth(t *testing.T) {
	tests := []struct {
		name     string
		base     RGB
		expected RGB
	}{
		// (0xff,0x00,0xff) + 0x00ff00
		{"green player turns white", ColorPlayer, 0xffffff},
		// (0x00,0xff,0xff) + 0xff0000
		{"red enemy turns white", ColorEnemy, 0xffffff},
		{"dark snake", ColorSnake, RGB(0xff84ed + 0x007b12)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Tint(tc.base, 0, 1); got != tc.expected {
				t.Errorf("Tint(%v, 0, 1) = %v, expected %v", tc.base, got, tc.expected)
			}
		})
	}
}

func TestTintHalfHealthCarries(t *testing.T) {
	// base 0x808080: each channel gets (0xff-0x80)*0.5 = 63 = 0x3f added
	got := Tint(0x808080, 5, 10)
	expected := RGB(0x3f3f3f + 0x808080)
	if got != expected {
		t.Errorf("Tint(0x808080, 5, 10) = %v, expected %v", got, expected)
	}
}

func TestTintDegenerateInputs(t *testing.T) {
	// Zero max health leaves the colour untouched instead of producing NaN.
	if got := Tint(ColorFood, 0, 0); got != ColorFood {
		t.Errorf("Tint(food, 0, 0) = %v, expected %v", got, ColorFood)
	}
	// Overhealed entities have a negative ratio, which contributes nothing.
	if got := Tint(ColorFood, 20, 10); got != ColorFood {
		t.Errorf("Tint(food, 20, 10) = %v, expected %v", got, ColorFood)
	}
}

func TestRGBChannels(t *testing.T) {
	c := RGB(0x123456)
	if c.R() != 0x12 || c.G() != 0x34 || c.B() != 0x56 {
		t.Errorf("channels = %x %x %x, expected 12 34 56", c.R(), c.G(), c.B())
	}
	if RGB(0x1abcdef).Hex() != "#abcdef" {
		t.Errorf("Hex() = %s, expected #abcdef", RGB(0x1abcdef).Hex())
	}
}

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in       string
		expected RGB
		ok       bool
	}{
		{"#00ff00", ColorPlayer, true},
		{"0x033499", ColorWall, true},
		{"ffec00", ColorFood, true},
		{" #FF0000 ", ColorEnemy, true},
		{"#fff", 0, false},
		{"#gggggg", 0, false},
		{"", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRGB(tc.in)
			if (err == nil) != tc.ok {
				t.Fatalf("ParseRGB(%q) error = %v, expected ok=%v", tc.in, err, tc.ok)
			}
			if got != tc.expected {
				t.Errorf("ParseRGB(%q) = %v, expected %v", tc.in, got, tc.expected)
			}
		})
	}
}
