package core

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a 24-bit packed colour (0xRRGGBB). Values produced by Tint may
// carry past 24 bits; renderers mask with Masked before display.
type RGB uint32

// Palette used by tiles and entity prefabs.
const (
	ColorFloor  RGB = 0x191919
	ColorWall   RGB = 0x033499
	ColorPlayer RGB = 0x00ff00
	ColorEnemy  RGB = 0xff0000
	ColorFood   RGB = 0xffec00
	ColorSnake  RGB = 0x007b12
	ColorWhite  RGB = 0xffffff
	ColorBlack  RGB = 0x000000
)

// R returns the red channel.
func (c RGB) R() uint32 { return (uint32(c) >> 16) & 0xff }

// G returns the green channel.
func (c RGB) G() uint32 { return (uint32(c) >> 8) & 0xff }

// B returns the blue channel.
func (c RGB) B() uint32 { return uint32(c) & 0xff }

// Masked drops any bits above the low 24.
func (c RGB) Masked() RGB { return c & 0xffffff }

// Hex returns the colour as "#rrggbb", masked to 24 bits.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c.Masked()))
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("0x%06x", uint32(c))
}

// ParseRGB parses "#rrggbb", "0xrrggbb" or bare "rrggbb".
func ParseRGB(s string) (RGB, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if len(h) != 6 {
		return 0, fmt.Errorf("invalid colour %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return RGB(v), nil
}

// Tint shifts base towards white as health drops. Each channel's distance
// to 0xff is scaled by the missing-health ratio, the three results are
// packed, and the packed value is added to base without clamping. The sum
// can carry between channels; renderers depend on this exact output.
func Tint(base RGB, health, maxHealth uint32) RGB {
	ratio := 0.0
	if maxHealth > 0 {
		ratio = (float64(maxHealth) - float64(health)) / float64(maxHealth)
	}

	red := scaleChannel(0xff-base.R(), ratio) & 0xff
	green := scaleChannel(0xff-base.G(), ratio)
	blue := scaleChannel(0xff-base.B(), ratio)

	return RGB((red << 16) + (green << 8) + blue + uint32(base))
}

// scaleChannel truncates v*ratio towards zero. Negative or NaN products
// become zero.
func scaleChannel(v uint32, ratio float64) uint32 {
	scaled := float64(v) * ratio
	if !(scaled > 0) {
		return 0
	}
	return uint32(scaled)
}
