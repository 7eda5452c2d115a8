package sheet

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/nbarena/j2asheet/paletted"
)

// Style selects how the rows of a set are turned into sheets.
type Style int

const (
	// StyleRows emits every animation as its own image.
	StyleRows Style = iota

	// StyleStacked stacks all rows of a set, each row sized to its own frames.
	StyleStacked

	// StyleUniform stacks all rows of a set with one frame size shared by the whole set.
	StyleUniform
)

func (s Style) String() string {
	switch s {
	case StyleRows:
		return "rows"
	case StyleStacked:
		return "stacked"
	case StyleUniform:
		return "uniform"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

var (
	ErrInvalidStyle      = errors.New("invalid style")
	ErrNoPalette         = errors.New("no palette")
	ErrPaletteTooLarge   = errors.New("palette has more than 256 entries")
	ErrColorOutOfPalette = errors.New("color index out of palette")
)

type Options struct {
	Style Style

	// Palette is the container palette.
	Palette color.Palette

	// Border fills the gaps between frame boxes and rows.
	Border uint8

	// Unused fills the part of a frame box not covered by the frame. Nothing is painted when it equals Border.
	Unused uint8

	// StripSetAlpha makes a set's own palette, if it has one, the active palette for that set with its alpha
	// channel dropped.
	StripSetAlpha bool
}

// Sheeter turns animation sets into sheets. It keeps no state between calls, so sets can be sheeted concurrently.
type Sheeter struct {
	renderer Renderer
	opts     Options
}

func New(r Renderer, opts Options) (*Sheeter, error) {
	switch opts.Style {
	case StyleRows, StyleStacked, StyleUniform:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidStyle, int(opts.Style))
	}

	if len(opts.Palette) == 0 {
		return nil, ErrNoPalette
	}

	if len(opts.Palette) > 256 {
		return nil, ErrPaletteTooLarge
	}

	if int(opts.Border) >= len(opts.Palette) {
		return nil, fmt.Errorf("%w: border %d", ErrColorOutOfPalette, opts.Border)
	}

	if int(opts.Unused) >= len(opts.Palette) {
		return nil, fmt.Errorf("%w: unused %d", ErrColorOutOfPalette, opts.Unused)
	}

	return &Sheeter{renderer: r, opts: opts}, nil
}

func (s *Sheeter) Palette(set *AnimationSet) color.Palette {
	if !s.opts.StripSetAlpha || len(set.Palette) == 0 {
		return s.opts.Palette
	}
	palette := paletted.StripAlpha(set.Palette)
	if len(palette) > 256 {
		palette = palette[:256]
	}
	return paletted.Extend(palette, s.opts.Palette)
}

// Sheets sheets one set. StyleRows yields one sheet per animation, the other styles yield a single sheet, or none if
// the set has nothing to draw.
func (s *Sheeter) Sheets(setIdx int, set *AnimationSet) ([]*Sheet, error) {
	cfg := RowConfig{
		Palette: s.Palette(set),
		Border:  s.opts.Border,
		Unused:  s.opts.Unused,
	}

	var ext Extent
	if s.opts.Style == StyleUniform {
		ext = ComputeSetExtent(set)
	}

	var sheets []*Sheet
	var rows []*Row
	for i, anim := range set.Animations {
		if s.opts.Style != StyleUniform {
			ext = ComputeExtent(anim.Frames)
		}

		row, err := BuildRow(i, anim, ext, cfg, s.renderer)
		if err != nil {
			return nil, fmt.Errorf("%w while building animation %d", err, i)
		}

		if s.opts.Style == StyleRows {
			sheets = append(sheets, row.Sheet(setIdx))
			continue
		}
		rows = append(rows, row)
	}

	if s.opts.Style == StyleRows {
		return sheets, nil
	}

	sh, err := Stack(rows, cfg)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, nil
	}
	sh.Set = setIdx
	return []*Sheet{sh}, nil
}
