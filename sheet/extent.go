package sheet

import "image"

// Extent is how far the bitmaps of a group of frames reach from their shared anchor in each direction.
type Extent struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

func (e Extent) Width() int {
	return e.Left + e.Right
}

func (e Extent) Height() int {
	return e.Top + e.Bottom
}

// Anchor is the position of the shared anchor inside a Width x Height box.
func (e Extent) Anchor() image.Point {
	return image.Point{e.Left, e.Top}
}

// ComputeExtent returns the smallest extent that holds every frame without clipping. No frames yields the zero
// Extent.
func ComputeExtent(frames []*Frame) Extent {
	var e Extent
	for _, f := range frames {
		e.Top = max(e.Top, -f.Origin.Y)
		e.Bottom = max(e.Bottom, f.Size.Y+f.Origin.Y)
		e.Left = max(e.Left, -f.Origin.X)
		e.Right = max(e.Right, f.Size.X+f.Origin.X)
	}
	return e
}

func ComputeSetExtent(set *AnimationSet) Extent {
	return ComputeExtent(set.Frames())
}
