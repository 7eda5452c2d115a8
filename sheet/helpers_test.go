package sheet

import (
	"errors"
	"image"
	"image/color"
)

var errRender = errors.New("render failed")

type testRenderer struct {
	err error
}

func (r testRenderer) Indexed(f *Frame, palette color.Palette) (*image.Paletted, error) {
	if r.err != nil {
		return nil, r.err
	}
	return f.Payload.(*image.Paletted), nil
}

func (r testRenderer) Direct(f *Frame) (image.Image, error) {
	if r.err != nil {
		return nil, r.err
	}
	return f.Payload.(image.Image), nil
}

func testPalette() color.Palette {
	palette := make(color.Palette, 256)
	for i := range palette {
		palette[i] = color.NRGBA{uint8(i), uint8(255 - i), uint8(i / 2), 0xff}
	}
	return palette
}

// indexedFrame returns a w x h frame filled with idx. The pixel at the frame's anchor is set to 42 when it lies
// inside the bitmap.
func indexedFrame(w, h int, origin image.Point, idx uint8) *Frame {
	img := image.NewPaletted(image.Rect(0, 0, w, h), testPalette())
	for i := range img.Pix {
		img.Pix[i] = idx
	}
	anchor := image.Point{-origin.X, -origin.Y}
	if anchor.In(img.Rect) {
		img.SetColorIndex(anchor.X, anchor.Y, 42)
	}
	return &Frame{Size: image.Point{w, h}, Origin: origin, Payload: img}
}

func directFrame(w, h int, origin image.Point, c color.NRGBA) *Frame {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return &Frame{Size: image.Point{w, h}, Origin: origin, Truecolor: true, Payload: img}
}

func resolved(palette color.Palette, idx uint8) Color {
	return Index(idx).Resolve(palette)
}
