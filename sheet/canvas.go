package sheet

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/nbarena/j2asheet/paletted"
)

var ErrModeMismatch = errors.New("pixel mode mismatch")

type Mode uint8

const (
	ModeIndexed Mode = iota
	ModeDirect
)

func (m Mode) String() string {
	switch m {
	case ModeIndexed:
		return "indexed"
	case ModeDirect:
		return "direct"
	}
	return "unknown"
}

// Canvas is a raster that is either indexed (a paletted image) or direct (an NRGBA image). An indexed canvas can be
// promoted to direct, never the other way around. The palette is kept after promotion so indexed colors can still be
// resolved.
type Canvas struct {
	mode    Mode
	palette color.Palette
	indexed *image.Paletted
	direct  *image.NRGBA
}

func NewIndexed(w, h int, palette color.Palette, fill uint8) *Canvas {
	img := image.NewPaletted(image.Rect(0, 0, w, h), palette)
	if fill != 0 {
		paletted.Fill(img, img.Rect, fill)
	}
	return &Canvas{mode: ModeIndexed, palette: palette, indexed: img}
}

func NewDirect(w, h int, palette color.Palette, fill color.NRGBA) *Canvas {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if fill != (color.NRGBA{}) {
		draw.Draw(img, img.Rect, image.NewUniform(fill), image.Point{}, draw.Src)
	}
	return &Canvas{mode: ModeDirect, palette: palette, direct: img}
}

func (c *Canvas) Mode() Mode {
	return c.mode
}

func (c *Canvas) Palette() color.Palette {
	return c.palette
}

func (c *Canvas) Bounds() image.Rectangle {
	if c.mode == ModeDirect {
		return c.direct.Rect
	}
	return c.indexed.Rect
}

func (c *Canvas) Empty() bool {
	return c.Bounds().Empty()
}

// Image returns the backing *image.Paletted or *image.NRGBA.
func (c *Canvas) Image() image.Image {
	if c.mode == ModeDirect {
		return c.direct
	}
	return c.indexed
}

func (c *Canvas) Paletted() *image.Paletted {
	return c.indexed
}

func (c *Canvas) NRGBA() *image.NRGBA {
	return c.direct
}

// At returns the canvas color at (x, y) as a Color of the canvas' own mode.
func (c *Canvas) At(x, y int) Color {
	if c.mode == ModeDirect {
		return Direct(c.direct.NRGBAAt(x, y))
	}
	return Index(c.indexed.ColorIndexAt(x, y))
}

// Fill paints r with col. Indexed colors are resolved on a direct canvas; direct colors cannot be painted on an
// indexed canvas.
func (c *Canvas) Fill(r image.Rectangle, col Color) error {
	if c.mode == ModeIndexed {
		if col.IsDirect() {
			return ErrModeMismatch
		}
		paletted.Fill(c.indexed, r, col.PaletteIndex())
		return nil
	}
	col = col.Resolve(c.palette)
	draw.Draw(c.direct, r.Intersect(c.direct.Rect), image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
	return nil
}

// Promote converts an indexed canvas to direct in place, keeping every painted pixel. It reports whether anything
// changed.
func (c *Canvas) Promote() bool {
	if c.mode == ModeDirect {
		return false
	}
	c.direct = paletted.ToNRGBA(c.indexed, c.palette)
	c.indexed = nil
	c.mode = ModeDirect
	return true
}

// Promoted returns a direct copy of the canvas. A direct canvas is returned as is.
func (c *Canvas) Promoted() *Canvas {
	if c.mode == ModeDirect {
		return c
	}
	return &Canvas{mode: ModeDirect, palette: c.palette, direct: paletted.ToNRGBA(c.indexed, c.palette)}
}

// PasteIndexed replaces the pixels under src, placed with its top-left corner at p. Parts outside the canvas are
// clipped.
func (c *Canvas) PasteIndexed(p image.Point, src *image.Paletted) error {
	if c.mode != ModeIndexed {
		return ErrModeMismatch
	}
	paletted.Paste(c.indexed, p, src)
	return nil
}

// PasteDirect is PasteIndexed for direct canvases. Transparent source pixels are copied, not blended.
func (c *Canvas) PasteDirect(p image.Point, src image.Image) error {
	if c.mode != ModeDirect {
		return ErrModeMismatch
	}
	r := image.Rectangle{p, p.Add(src.Bounds().Size())}
	draw.Draw(c.direct, r, src, src.Bounds().Min, draw.Src)
	return nil
}

func (c *Canvas) PasteCanvas(p image.Point, src *Canvas) error {
	if src.mode != c.mode {
		return ErrModeMismatch
	}
	if c.mode == ModeDirect {
		return c.PasteDirect(p, src.direct)
	}
	return c.PasteIndexed(p, src.indexed)
}
