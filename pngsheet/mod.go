// Package pngsheet writes sheets as PNG files carrying their frame table, and reads that table back.
//
// The frame table is stored in a zTXt chunk with the keyword "fctrl", followed by one little-endian record per frame.
// The sheet palette is stored in an sPLT chunk named "palette", so it survives for direct color sheets too.
package pngsheet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/nbarena/j2asheet/sheet"
	"github.com/nbarena/pngchunks"
	"golang.org/x/image/bmp"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptySheet    = errors.New("sheet has no pixels")
	ErrFrameTooLarge = errors.New("frame coordinates do not fit the frame table")
)

const (
	fctrlKeyword   = "fctrl"
	paletteKeyword = "palette"
)

type action uint8

const (
	actionNext action = 0
	actionLoop action = 1
	actionStop action = 2
)

type fctrlFrameInfo struct {
	Left    int16
	Top     int16
	Right   int16
	Bottom  int16
	OriginX int16
	OriginY int16
	Delay   uint8
	Action  action
}

func fitsInt16(vs ...int) bool {
	for _, v := range vs {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return false
		}
	}
	return true
}

// The method byte is not zlib: readers take the records uncompressed.
func fctrlChunk(frames []sheet.FrameInfo) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fctrlKeyword)
	buf.WriteByte('\x00')
	buf.WriteByte('\xff')
	for i, fi := range frames {
		if !fitsInt16(fi.BBox.Min.X, fi.BBox.Min.Y, fi.BBox.Max.X, fi.BBox.Max.Y, fi.Origin.X, fi.Origin.Y) {
			return nil, fmt.Errorf("%w: frame %d of animation %d at %s", ErrFrameTooLarge, i, fi.Animation, fi.BBox)
		}

		a := actionNext
		if fi.Last {
			a = actionLoop
		}

		delay := fi.Delay
		if delay > 0xff {
			delay = 0xff
		}

		binary.Write(&buf, binary.LittleEndian, fctrlFrameInfo{
			int16(fi.BBox.Min.X),
			int16(fi.BBox.Min.Y),
			int16(fi.BBox.Max.X),
			int16(fi.BBox.Max.Y),
			int16(fi.Origin.X),
			int16(fi.Origin.Y),
			uint8(delay),
			a,
		})
	}
	return buf.Bytes(), nil
}

func spltChunk(palette color.Palette) []byte {
	var buf bytes.Buffer
	buf.WriteString(paletteKeyword)
	buf.WriteByte('\x00')
	buf.WriteByte('\x08')
	for _, c := range palette {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		buf.Write([]byte{nc.R, nc.G, nc.B, nc.A})
		buf.WriteByte('\x00')
		buf.WriteByte('\x00')
	}
	return buf.Bytes()
}

// Encode writes sh as a PNG. Indexed sheets become paletted PNGs, direct sheets become RGBA PNGs.
func Encode(w io.Writer, sh *sheet.Sheet) error {
	if sh.Canvas.Empty() {
		return ErrEmptySheet
	}
	img := sh.Canvas.Image()

	fctrl, err := fctrlChunk(sh.Frames)
	if err != nil {
		return err
	}

	pipeR, pipeW := io.Pipe()
	defer pipeR.Close()

	var g errgroup.Group

	g.Go(func() error {
		err := png.Encode(pipeW, img)
		pipeW.CloseWithError(err)
		return err
	})

	pngr, err := pngchunks.NewReader(pipeR)
	if err != nil {
		return err
	}

	pngw, err := pngchunks.NewWriter(w)
	if err != nil {
		return err
	}

	var metaWritten bool
	for {
		chunk, err := pngr.NextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		if chunk.Type() == "IDAT" && !metaWritten {
			// Pack metadata in here.
			if palette := sh.Canvas.Palette(); len(palette) > 0 {
				splt := spltChunk(palette)
				if err := pngw.WriteChunk(int32(len(splt)), "sPLT", bytes.NewReader(splt)); err != nil {
					return err
				}
			}

			if err := pngw.WriteChunk(int32(len(fctrl)), "zTXt", bytes.NewReader(fctrl)); err != nil {
				return err
			}

			metaWritten = true
		}

		if err := pngw.WriteChunk(chunk.Length(), chunk.Type(), chunk); err != nil {
			return err
		}

		if err := chunk.Close(); err != nil {
			return err
		}
	}

	return g.Wait()
}

// EncodeBMP writes sh as a BMP. BMP has no room for the frame table.
func EncodeBMP(w io.Writer, sh *sheet.Sheet) error {
	if sh.Canvas.Empty() {
		return ErrEmptySheet
	}
	return bmp.Encode(w, sh.Canvas.Image())
}

// Frame is one record of the frame table.
type Frame struct {
	Rect   image.Rectangle
	Origin image.Point
	Delay  int
	Last   bool
}

type Info struct {
	Palettes map[string]color.Palette
	Frames   []Frame
}

// LoadInfo reads the palette and frame table chunks of a PNG written by Encode.
func LoadInfo(r io.Reader) (*Info, error) {
	info := &Info{Palettes: make(map[string]color.Palette)}

	pngr, err := pngchunks.NewReader(r)
	if err != nil {
		return nil, err
	}

	for {
		chunk, err := pngr.NextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		switch chunk.Type() {
		case "sPLT":
			buf, err := io.ReadAll(chunk)
			if err != nil {
				return nil, err
			}
			sepIdx := bytes.IndexByte(buf, '\x00')
			if sepIdx < 0 || len(buf) < sepIdx+2 {
				break
			}
			var palette color.Palette
			for plt := buf[sepIdx+2:]; len(plt) >= 6; plt = plt[6:] {
				palette = append(palette, color.NRGBA{plt[0], plt[1], plt[2], plt[3]})
			}
			info.Palettes[string(buf[:sepIdx])] = palette
		case "zTXt":
			buf, err := io.ReadAll(chunk)
			if err != nil {
				return nil, err
			}
			sepIdx := bytes.IndexByte(buf, '\x00')
			if sepIdx < 0 || string(buf[:sepIdx]) != fctrlKeyword || len(buf) < sepIdx+2 {
				break
			}
			ctrlr := bytes.NewReader(buf[sepIdx+2:])
			for {
				var raw fctrlFrameInfo
				if err := binary.Read(ctrlr, binary.LittleEndian, &raw); err != nil {
					if errors.Is(err, io.EOF) {
						break
					}
					return nil, err
				}
				info.Frames = append(info.Frames, Frame{
					Rect:   image.Rect(int(raw.Left), int(raw.Top), int(raw.Right), int(raw.Bottom)),
					Origin: image.Point{int(raw.OriginX), int(raw.OriginY)},
					Delay:  int(raw.Delay),
					Last:   raw.Action != actionNext,
				})
			}
		default:
			if _, err := io.Copy(io.Discard, chunk); err != nil {
				return nil, err
			}
		}

		if err := chunk.Close(); err != nil {
			return nil, err
		}
	}

	return info, nil
}
