package sheet

import (
	"image"
	"image/color"

	"github.com/nbarena/j2asheet/paletted"
)

// RowConfig holds what every row of one set shares: the active palette and the two special colors, both given as
// palette indices.
type RowConfig struct {
	Palette color.Palette
	Border  uint8
	Unused  uint8
}

// ModeManager tracks the pixel mode of one row under construction. It starts out indexed and is promoted at most once,
// by the first truecolor frame. A new ModeManager is used for every row.
type ModeManager struct {
	palette     color.Palette
	border      Color
	unused      Color
	placeholder bool
}

func NewModeManager(cfg RowConfig) *ModeManager {
	return &ModeManager{
		palette:     cfg.Palette,
		border:      Index(cfg.Border),
		unused:      Index(cfg.Unused),
		placeholder: cfg.Border != cfg.Unused,
	}
}

func (m *ModeManager) Border() Color {
	return m.border
}

func (m *ModeManager) Unused() Color {
	return m.unused
}

// Placeholder reports whether frame boxes get painted with the unused color. This is decided on the configured
// indices, so it does not change when both colors resolve to the same direct color.
func (m *ModeManager) Placeholder() bool {
	return m.placeholder
}

// EnsureModeFor promotes canvas to direct when f is truecolor and canvas is still indexed. The border and unused
// colors are resolved at the same moment. It reports whether a promotion happened; calling it again is a no-op.
func (m *ModeManager) EnsureModeFor(f *Frame, canvas *Canvas) bool {
	if !f.Truecolor || canvas.Mode() == ModeDirect {
		return false
	}
	canvas.Promote()
	m.border = m.border.Resolve(m.palette)
	m.unused = m.unused.Resolve(m.palette)
	return true
}

// DirectFrame converts an indexed frame buffer for pasting onto a direct canvas. img is not modified.
func (m *ModeManager) DirectFrame(img *image.Paletted) *image.NRGBA {
	return paletted.ToNRGBA(img, m.palette)
}
