package sheet

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestPromotePreservesColors(t *testing.T) {
	palette := testPalette()
	c := NewIndexed(4, 2, palette, 255)
	c.Paletted().SetColorIndex(0, 0, 0)
	c.Paletted().SetColorIndex(1, 0, 5)
	c.Paletted().SetColorIndex(2, 1, 200)

	before := make(map[image.Point]uint8)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			before[image.Point{x, y}] = c.At(x, y).PaletteIndex()
		}
	}

	if !c.Promote() {
		t.Fatalf("Promote() = false on an indexed canvas")
	}
	if c.Mode() != ModeDirect {
		t.Fatalf("mode = %s, expected direct", c.Mode())
	}
	if c.Paletted() != nil {
		t.Errorf("indexed image still set after promotion")
	}

	for p, idx := range before {
		got := c.At(p.X, p.Y)
		want := resolved(palette, idx)
		if got != want {
			t.Errorf("pixel %v (index %d): got %s, expected %s", p, idx, got, want)
		}
	}

	if got := c.At(0, 0); got != Direct(color.NRGBA{}) {
		t.Errorf("index 0 promoted to %s, expected transparent", got)
	}
	if got := c.At(1, 0).NRGBA(); got != (color.NRGBA{5, 250, 2, 0xff}) {
		t.Errorf("index 5 promoted to %v", got)
	}

	if c.Promote() {
		t.Errorf("second Promote() = true, expected no-op")
	}
}

func TestPromotedLeavesOriginal(t *testing.T) {
	c := NewIndexed(2, 2, testPalette(), 9)
	p := c.Promoted()
	if c.Mode() != ModeIndexed {
		t.Errorf("original canvas mode changed to %s", c.Mode())
	}
	if p.Mode() != ModeDirect {
		t.Errorf("copy mode = %s, expected direct", p.Mode())
	}
	if p.Promoted() != p {
		t.Errorf("Promoted() of a direct canvas returned a copy")
	}
}

func TestCanvasModeMismatch(t *testing.T) {
	indexed := NewIndexed(2, 2, testPalette(), 0)
	direct := NewDirect(2, 2, testPalette(), color.NRGBA{})

	if err := indexed.Fill(indexed.Bounds(), Direct(color.NRGBA{1, 2, 3, 4})); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("direct fill on indexed canvas: got %v", err)
	}
	if err := indexed.PasteDirect(image.Point{}, image.NewNRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("direct paste on indexed canvas: got %v", err)
	}
	if err := direct.PasteIndexed(image.Point{}, image.NewPaletted(image.Rect(0, 0, 1, 1), nil)); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("indexed paste on direct canvas: got %v", err)
	}
	if err := direct.PasteCanvas(image.Point{}, indexed); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("canvas paste across modes: got %v", err)
	}
}

func TestDirectFillResolvesIndex(t *testing.T) {
	palette := testPalette()
	c := NewDirect(3, 3, palette, color.NRGBA{})
	if err := c.Fill(image.Rect(1, 1, 5, 5), Index(7)); err != nil {
		t.Fatalf("Fill: %s", err)
	}
	if got := c.At(0, 0); got != Direct(color.NRGBA{}) {
		t.Errorf("pixel outside fill = %s", got)
	}
	if got := c.At(2, 2); got != resolved(palette, 7) {
		t.Errorf("filled pixel = %s, expected %s", got, resolved(palette, 7))
	}
}

func TestPasteDirectReplacesPixels(t *testing.T) {
	c := NewDirect(4, 4, testPalette(), color.NRGBA{9, 9, 9, 0xff})
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 1, color.NRGBA{1, 2, 3, 0xff})

	if err := c.PasteDirect(image.Point{3, 3}, src); err != nil {
		t.Fatalf("PasteDirect: %s", err)
	}
	// Only the top-left source pixel, which is transparent, lands inside the canvas.
	if got := c.At(3, 3); got != Direct(color.NRGBA{}) {
		t.Errorf("pixel (3, 3) = %s, expected transparent", got)
	}
	if got := c.At(2, 2); got != Direct(color.NRGBA{9, 9, 9, 0xff}) {
		t.Errorf("pixel (2, 2) = %s, expected untouched", got)
	}
}

func TestEmptyCanvas(t *testing.T) {
	c := NewIndexed(0, 6, testPalette(), 255)
	if !c.Empty() {
		t.Errorf("0x6 canvas is not empty")
	}
	c.Promote()
	if !c.Empty() {
		t.Errorf("promoted 0x6 canvas is not empty")
	}
}
