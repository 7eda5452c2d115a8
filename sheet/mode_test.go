package sheet

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestEnsureModeForPromotesOnce(t *testing.T) {
	palette := testPalette()
	mm := NewModeManager(RowConfig{Palette: palette, Border: 255, Unused: 0})
	c := NewIndexed(4, 4, palette, 255)
	f := directFrame(1, 1, image.Point{}, color.NRGBA{1, 2, 3, 0xff})

	if !mm.EnsureModeFor(f, c) {
		t.Fatalf("first EnsureModeFor did not promote")
	}
	if c.Mode() != ModeDirect {
		t.Fatalf("mode = %s, expected direct", c.Mode())
	}
	if got, want := mm.Border(), resolved(palette, 255); got != want {
		t.Errorf("border = %s, expected %s", got, want)
	}
	if got := mm.Unused(); got != Direct(color.NRGBA{}) {
		t.Errorf("unused = %s, expected transparent", got)
	}

	snapshot := append([]uint8(nil), c.NRGBA().Pix...)
	border := mm.Border()
	if mm.EnsureModeFor(f, c) {
		t.Errorf("second EnsureModeFor promoted again")
	}
	if !bytes.Equal(snapshot, c.NRGBA().Pix) {
		t.Errorf("second EnsureModeFor changed the canvas")
	}
	if mm.Border() != border {
		t.Errorf("second EnsureModeFor changed the border color")
	}
}

func TestEnsureModeForIndexedFrame(t *testing.T) {
	palette := testPalette()
	mm := NewModeManager(RowConfig{Palette: palette, Border: 3, Unused: 4})
	c := NewIndexed(2, 2, palette, 3)

	if mm.EnsureModeFor(indexedFrame(1, 1, image.Point{}, 1), c) {
		t.Errorf("indexed frame promoted an indexed canvas")
	}
	if c.Mode() != ModeIndexed {
		t.Errorf("mode = %s, expected indexed", c.Mode())
	}
	if mm.Border() != Index(3) || mm.Unused() != Index(4) {
		t.Errorf("colors changed without promotion: %s, %s", mm.Border(), mm.Unused())
	}
}

func TestPlaceholderDecidedOnIndices(t *testing.T) {
	// Both indices resolve to transparent once promoted, but they differ as configured.
	palette := color.Palette{color.NRGBA{}, color.NRGBA{}}
	mm := NewModeManager(RowConfig{Palette: palette, Border: 0, Unused: 5})
	c := NewIndexed(1, 1, palette, 0)
	mm.EnsureModeFor(&Frame{Truecolor: true}, c)
	if mm.Border() != mm.Unused() {
		t.Fatalf("expected both colors to resolve alike, got %s and %s", mm.Border(), mm.Unused())
	}
	if !mm.Placeholder() {
		t.Errorf("Placeholder() = false for differing indices")
	}

	if NewModeManager(RowConfig{Palette: palette, Border: 1, Unused: 1}).Placeholder() {
		t.Errorf("Placeholder() = true for equal indices")
	}
}

func TestDirectFrameLeavesSource(t *testing.T) {
	palette := testPalette()
	mm := NewModeManager(RowConfig{Palette: palette})
	f := indexedFrame(3, 3, image.Point{-1, -1}, 8)
	src := f.Payload.(*image.Paletted)
	before := append([]uint8(nil), src.Pix...)

	out := mm.DirectFrame(src)

	if !bytes.Equal(before, src.Pix) {
		t.Errorf("DirectFrame modified the frame buffer")
	}
	if got := out.NRGBAAt(1, 1); got != resolved(palette, 42).NRGBA() {
		t.Errorf("anchor pixel = %v", got)
	}
	if got := out.NRGBAAt(0, 0); got != resolved(palette, 8).NRGBA() {
		t.Errorf("pixel (0, 0) = %v", got)
	}
}
