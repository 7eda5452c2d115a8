// Package sheet lays decoded animation frames out into sprite sheets.
//
// Every animation becomes one row of equally sized frame boxes separated by a border. Rows are either emitted on
// their own or stacked into one sheet per animation set. Frames are aligned on their hotspot, so the anchor of every
// frame in a row lands on the same spot of its box.
package sheet

import (
	"image"
	"image/color"
)

// Frame is one decoded bitmap of an animation.
type Frame struct {
	// Size is the width and height of the bitmap.
	Size image.Point

	// Origin is the offset from the frame's anchor to its top-left pixel. Both components may be negative.
	Origin image.Point

	// Truecolor frames carry direct colors, all others carry palette indices.
	Truecolor bool

	// Payload is handed to the Renderer untouched.
	Payload any
}

type Animation struct {
	Frames []*Frame

	// Delay is how many ticks each frame is shown for. Zero is treated as one.
	Delay int
}

type AnimationSet struct {
	Animations []*Animation

	// Palette optionally overrides the container palette for this set.
	Palette color.Palette
}

func (s *AnimationSet) Frames() []*Frame {
	var frames []*Frame
	for _, anim := range s.Animations {
		frames = append(frames, anim.Frames...)
	}
	return frames
}

// Renderer turns a frame's payload into pixels.
type Renderer interface {
	// Indexed renders a frame whose Truecolor flag is unset. palette is the palette the returned indices are read
	// through.
	Indexed(f *Frame, palette color.Palette) (*image.Paletted, error)

	// Direct renders a truecolor frame.
	Direct(f *Frame) (image.Image, error)
}
