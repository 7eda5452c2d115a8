package sheet

import (
	"errors"
	"fmt"
	"image"
)

// BorderSize is the gap between neighbouring frame boxes and between stacked rows.
const BorderSize = 2

var ErrNoPixels = errors.New("renderer returned no pixels")

// FrameInfo says where a frame ended up.
type FrameInfo struct {
	Animation int
	Frame     int

	// BBox is the frame's reserved box in the image.
	BBox image.Rectangle

	// Origin is the anchor position relative to BBox.Min.
	Origin image.Point

	Delay int

	// Last is set on the final frame of an animation.
	Last bool
}

// Anchor returns the absolute anchor position.
func (fi FrameInfo) Anchor() image.Point {
	return fi.BBox.Min.Add(fi.Origin)
}

// Row is the composite of all frames of one animation, laid out left to right.
type Row struct {
	Animation int
	Canvas    *Canvas
	Extent    Extent
	Frames    []FrameInfo
}

// BuildRow composes the frames of anim into a single row. Every frame box is ext.Width() x ext.Height() and the
// frame's anchor sits at ext.Anchor() inside its box.
func BuildRow(animIdx int, anim *Animation, ext Extent, cfg RowConfig, r Renderer) (*Row, error) {
	mm := NewModeManager(cfg)

	frameW := ext.Width()
	frameH := ext.Height()
	n := len(anim.Frames)

	w := (frameW+BorderSize)*n - BorderSize
	if w < 0 {
		w = 0
	}
	canvas := NewIndexed(w, frameH, cfg.Palette, mm.Border().PaletteIndex())

	delay := anim.Delay
	if delay <= 0 {
		delay = 1
	}

	row := &Row{
		Animation: animIdx,
		Canvas:    canvas,
		Extent:    ext,
		Frames:    make([]FrameInfo, 0, n),
	}

	for i, f := range anim.Frames {
		xOrg := (frameW + BorderSize) * i
		box := image.Rect(xOrg, 0, xOrg+frameW, frameH)

		mm.EnsureModeFor(f, canvas)

		if mm.Placeholder() {
			if err := canvas.Fill(box, mm.Unused()); err != nil {
				return nil, fmt.Errorf("%w while painting placeholder for frame %d", err, i)
			}
		}

		at := image.Point{xOrg + ext.Left + f.Origin.X, ext.Top + f.Origin.Y}
		if err := pasteFrame(canvas, mm, f, at, r); err != nil {
			return nil, fmt.Errorf("%w while pasting frame %d", err, i)
		}

		row.Frames = append(row.Frames, FrameInfo{
			Animation: animIdx,
			Frame:     i,
			BBox:      box,
			Origin:    ext.Anchor(),
			Delay:     delay,
			Last:      i == n-1,
		})
	}

	return row, nil
}

func pasteFrame(canvas *Canvas, mm *ModeManager, f *Frame, at image.Point, r Renderer) error {
	if f.Truecolor {
		img, err := r.Direct(f)
		if err != nil {
			return err
		}
		if img == nil {
			return ErrNoPixels
		}
		return canvas.PasteDirect(at, img)
	}

	img, err := r.Indexed(f, mm.palette)
	if err != nil {
		return err
	}
	if img == nil {
		return ErrNoPixels
	}
	if canvas.Mode() == ModeDirect {
		return canvas.PasteDirect(at, mm.DirectFrame(img))
	}
	return canvas.PasteIndexed(at, img)
}

// Sheet turns the row into a standalone sheet.
func (r *Row) Sheet(setIdx int) *Sheet {
	return &Sheet{
		Set:       setIdx,
		Animation: r.Animation,
		Canvas:    r.Canvas,
		Frames:    r.Frames,
	}
}
