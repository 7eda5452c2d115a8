package sheet

import (
	"fmt"
	"image/color"

	"github.com/nbarena/j2asheet/paletted"
)

// Color is either a palette index or a direct color. The border and placeholder colors use the same type as frame
// pixels so a promotion can treat all of them alike.
type Color struct {
	direct bool
	index  uint8
	rgba   color.NRGBA
}

func Index(i uint8) Color {
	return Color{index: i}
}

func Direct(c color.NRGBA) Color {
	return Color{direct: true, rgba: c}
}

func (c Color) IsDirect() bool {
	return c.direct
}

// PaletteIndex is only meaningful for indexed colors.
func (c Color) PaletteIndex() uint8 {
	return c.index
}

func (c Color) NRGBA() color.NRGBA {
	return c.rgba
}

// Resolve converts an indexed color into a direct one through palette. Index 0 becomes fully transparent, any other
// index becomes its palette entry at full opacity. Direct colors are returned unchanged.
func (c Color) Resolve(palette color.Palette) Color {
	if c.direct {
		return c
	}
	return Direct(paletted.Resolve(palette, c.index))
}

func (c Color) String() string {
	if c.direct {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.rgba.R, c.rgba.G, c.rgba.B, c.rgba.A)
	}
	return fmt.Sprintf("index %d", c.index)
}
