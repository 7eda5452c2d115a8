// Package manifest loads already decoded animation sets from a directory holding a manifest.json and one PNG per
// frame.
package manifest

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io/fs"
	"os"
	"strings"

	"github.com/nbarena/j2asheet/sheet"
)

const Filename = "manifest.json"

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrNoPalette    = errors.New("manifest has no palette and no paletted frames")
	ErrNoImage      = errors.New("frame has no image")
)

type rawFrame struct {
	Image     string `json:"image"`
	Origin    [2]int `json:"origin"`
	Truecolor bool   `json:"truecolor"`
}

type rawAnimation struct {
	Delay  int        `json:"delay"`
	Frames []rawFrame `json:"frames"`
}

type rawSet struct {
	Palette    []string       `json:"palette"`
	Animations []rawAnimation `json:"animations"`
}

type rawManifest struct {
	Palette []string `json:"palette"`
	Sets    []rawSet `json:"sets"`
}

// Manifest is a loaded manifest. It renders its own frames, whose payload is the decoded PNG.
type Manifest struct {
	Palette color.Palette
	Sets    []*sheet.AnimationSet
}

// Load reads dir/manifest.json and every frame image it names.
func Load(dir string) (*Manifest, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS is Load on an fs.FS. Image paths are relative to the root of fsys.
func LoadFS(fsys fs.FS) (*Manifest, error) {
	raw, err := fs.ReadFile(fsys, Filename)
	if err != nil {
		return nil, err
	}

	var rm rawManifest
	if err := json.Unmarshal(raw, &rm); err != nil {
		return nil, fmt.Errorf("%w while decoding %s", err, Filename)
	}

	m := &Manifest{}

	if len(rm.Palette) > 0 {
		m.Palette, err = ParsePalette(rm.Palette)
		if err != nil {
			return nil, fmt.Errorf("%w while parsing palette", err)
		}
	}

	for i, rs := range rm.Sets {
		set := &sheet.AnimationSet{}
		if len(rs.Palette) > 0 {
			set.Palette, err = ParsePalette(rs.Palette)
			if err != nil {
				return nil, fmt.Errorf("%w while parsing palette of set %d", err, i)
			}
		}

		for j, ra := range rs.Animations {
			anim := &sheet.Animation{Delay: ra.Delay}
			for k, rf := range ra.Frames {
				f, err := loadFrame(fsys, rf)
				if err != nil {
					return nil, fmt.Errorf("%w while loading frame %d/%d/%d", err, i, j, k)
				}

				if m.Palette == nil && !f.Truecolor {
					if img, ok := f.Payload.(*image.Paletted); ok && len(img.Palette) > 0 {
						m.Palette = img.Palette
					}
				}

				anim.Frames = append(anim.Frames, f)
			}
			set.Animations = append(set.Animations, anim)
		}
		m.Sets = append(m.Sets, set)
	}

	if m.Palette == nil {
		return nil, ErrNoPalette
	}

	return m, nil
}

func loadFrame(fsys fs.FS, rf rawFrame) (*sheet.Frame, error) {
	if rf.Image == "" {
		return nil, ErrNoImage
	}

	f, err := fsys.Open(rf.Image)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w while decoding %s", err, rf.Image)
	}

	return &sheet.Frame{
		Size:      img.Bounds().Size(),
		Origin:    image.Point{rf.Origin[0], rf.Origin[1]},
		Truecolor: rf.Truecolor,
		Payload:   img,
	}, nil
}

// ParseColor parses #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "#"))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}

	switch len(raw) {
	case 3:
		return color.NRGBA{raw[0], raw[1], raw[2], 0xff}, nil
	case 4:
		return color.NRGBA{raw[0], raw[1], raw[2], raw[3]}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
}

func ParsePalette(entries []string) (color.Palette, error) {
	palette := make(color.Palette, len(entries))
	for i, s := range entries {
		c, err := ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("%w at entry %d", err, i)
		}
		palette[i] = c
	}
	return palette, nil
}

func frameImage(f *sheet.Frame) (image.Image, error) {
	img, ok := f.Payload.(image.Image)
	if !ok || img == nil {
		return nil, ErrNoImage
	}
	return img, nil
}

// Indexed returns the frame's paletted PNG as is. Frames stored in any other color model are mapped onto palette, or
// onto the manifest palette when palette is empty.
func (m *Manifest) Indexed(f *sheet.Frame, palette color.Palette) (*image.Paletted, error) {
	img, err := frameImage(f)
	if err != nil {
		return nil, err
	}

	if p, ok := img.(*image.Paletted); ok {
		return p, nil
	}

	if len(palette) == 0 {
		palette = m.Palette
	}

	p := image.NewPaletted(img.Bounds(), palette)
	draw.Draw(p, p.Rect, img, img.Bounds().Min, draw.Src)
	return p, nil
}

// Direct returns the frame as an NRGBA image.
func (m *Manifest) Direct(f *sheet.Frame) (image.Image, error) {
	img, err := frameImage(f)
	if err != nil {
		return nil, err
	}

	if n, ok := img.(*image.NRGBA); ok {
		return n, nil
	}

	n := image.NewNRGBA(img.Bounds())
	draw.Draw(n, n.Rect, img, img.Bounds().Min, draw.Src)
	return n, nil
}
