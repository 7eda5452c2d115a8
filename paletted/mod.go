package paletted

import (
	"image"
	"image/color"
)

func Fill(img *image.Paletted, r image.Rectangle, idx uint8) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)]
		for i := range row {
			row[i] = idx
		}
	}
}

// Paste copies src into dst with src's top-left corner at p. Index 0 in src is copied as well.
func Paste(dst *image.Paletted, p image.Point, src *image.Paletted) {
	r := image.Rectangle{p, p.Add(src.Rect.Size())}
	sp := src.Rect.Min
	clipped := r.Intersect(dst.Rect)
	if clipped.Empty() {
		return
	}
	sp = sp.Add(clipped.Min.Sub(r.Min))

	w := clipped.Dx()
	for j := 0; j < clipped.Dy(); j++ {
		di := dst.PixOffset(clipped.Min.X, clipped.Min.Y+j)
		si := src.PixOffset(sp.X, sp.Y+j)
		copy(dst.Pix[di:di+w], src.Pix[si:si+w])
	}
}

// Resolve returns the direct color for palette index idx. Index 0 is always fully transparent, everything else is the
// palette entry at full opacity. Indices past the end of the palette are treated like index 0.
func Resolve(palette color.Palette, idx uint8) color.NRGBA {
	if idx == 0 || int(idx) >= len(palette) {
		return color.NRGBA{}
	}
	c := color.NRGBAModel.Convert(palette[idx]).(color.NRGBA)
	c.A = 0xff
	return c
}

// ToNRGBA resolves every pixel of img through palette according to Resolve. img is left untouched.
func ToNRGBA(img *image.Paletted, palette color.Palette) *image.NRGBA {
	var lut [256]color.NRGBA
	for i := range lut {
		lut[i] = Resolve(palette, uint8(i))
	}

	out := image.NewNRGBA(img.Rect)
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			c := lut[img.Pix[img.PixOffset(x, y)]]
			o := out.PixOffset(x, y)
			out.Pix[o+0] = c.R
			out.Pix[o+1] = c.G
			out.Pix[o+2] = c.B
			out.Pix[o+3] = c.A
		}
	}
	return out
}

func StripAlpha(palette color.Palette) color.Palette {
	out := make(color.Palette, len(palette))
	for i, c := range palette {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		nc.A = 0xff
		out[i] = nc
	}
	return out
}

// Extend returns palette padded up to len(base) with the trailing entries of base.
func Extend(palette color.Palette, base color.Palette) color.Palette {
	if len(palette) >= len(base) {
		return palette
	}
	out := make(color.Palette, len(base))
	copy(out, base)
	copy(out, palette)
	return out
}
