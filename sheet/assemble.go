package sheet

import (
	"fmt"
	"image"
)

type Sheet struct {
	Set int

	// Animation is the animation index for single row sheets and -1 for stacked ones.
	Animation int

	Canvas *Canvas
	Frames []FrameInfo
}

func (s *Sheet) Mode() Mode {
	return s.Canvas.Mode()
}

func (s *Sheet) Bounds() image.Rectangle {
	return s.Canvas.Bounds()
}

// Stack places rows below each other, left aligned and BorderSize apart, on a background of the border color. Rows
// with zero area are skipped and nil is returned when none remain. The sheet is direct if any row is; indexed rows
// are promoted while pasting, the rows themselves are left alone.
func Stack(rows []*Row, cfg RowConfig) (*Sheet, error) {
	var kept []*Row
	for _, row := range rows {
		if row.Canvas.Empty() {
			continue
		}
		kept = append(kept, row)
	}
	if len(kept) == 0 {
		return nil, nil
	}

	mode := ModeIndexed
	w := 0
	h := BorderSize * (len(kept) - 1)
	for _, row := range kept {
		b := row.Canvas.Bounds()
		w = max(w, b.Dx())
		h += b.Dy()
		if row.Canvas.Mode() == ModeDirect {
			mode = ModeDirect
		}
	}

	var canvas *Canvas
	if mode == ModeDirect {
		canvas = NewDirect(w, h, cfg.Palette, Index(cfg.Border).Resolve(cfg.Palette).NRGBA())
	} else {
		canvas = NewIndexed(w, h, cfg.Palette, cfg.Border)
	}

	sh := &Sheet{Animation: -1, Canvas: canvas}

	y := 0
	for _, row := range kept {
		src := row.Canvas
		if mode == ModeDirect {
			src = src.Promoted()
		}
		if err := canvas.PasteCanvas(image.Point{0, y}, src); err != nil {
			return nil, fmt.Errorf("%w while stacking animation %d", err, row.Animation)
		}

		for _, fi := range row.Frames {
			fi.BBox = fi.BBox.Add(image.Point{0, y})
			sh.Frames = append(sh.Frames, fi)
		}

		y += src.Bounds().Dy() + BorderSize
	}

	return sh, nil
}
