package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nbarena/j2asheet/manifest"
	"github.com/nbarena/j2asheet/pngsheet"
	"github.com/nbarena/j2asheet/sheet"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

type config struct {
	inDir  string
	outDir string
	stem   string
	format string
	opts   sheet.Options
}

func parseConfig(cmd *cli.Command) (*config, error) {
	inDir := cmd.Args().First()
	if inDir == "" {
		return nil, errors.New("missing manifest dir")
	}
	inDir = filepath.Clean(inDir)

	cfg := &config{
		inDir:  inDir,
		outDir: cmd.String("folder"),
		stem:   filepath.Base(inDir),
		format: strings.ToLower(cmd.String("format")),
	}
	if cfg.outDir == "" {
		cfg.outDir = inDir + "-sheets"
	}

	switch cfg.format {
	case "png", "bmp":
	default:
		return nil, fmt.Errorf("unsupported format %q", cfg.format)
	}

	border := cmd.Uint("borderColor")
	if border > 255 {
		return nil, fmt.Errorf("border color %d is not a palette index", border)
	}
	unused := cmd.Uint("unusedColor")
	if unused > 255 {
		return nil, fmt.Errorf("unused color %d is not a palette index", unused)
	}

	cfg.opts = sheet.Options{
		Style:         sheet.Style(cmd.Int("style")),
		Border:        uint8(border),
		Unused:        uint8(unused),
		StripSetAlpha: cmd.Bool("melk"),
	}

	return cfg, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := parseConfig(cmd)
	if err != nil {
		return err
	}

	m, err := manifest.Load(cfg.inDir)
	if err != nil {
		return fmt.Errorf("%w while loading %s", err, cfg.inDir)
	}
	log.Printf("Loaded %d sets from %s", len(m.Sets), cfg.inDir)

	cfg.opts.Palette = m.Palette
	sheeter, err := sheet.New(m, cfg.opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.outDir, 0o755); err != nil {
		return err
	}

	log.Printf("Sheeting with style %s: %s", cfg.opts.Style, cfg.outDir)
	if err := dumpSheets(ctx, cfg, sheeter, m.Sets); err != nil {
		return err
	}

	log.Printf("Done!")
	return nil
}

func dumpSheets(ctx context.Context, cfg *config, sheeter *sheet.Sheeter, sets []*sheet.AnimationSet) error {
	bar := progressbar.Default(int64(len(sets)))
	bar.Describe("sheet")

	type work struct {
		idx int
		set *sheet.AnimationSet
	}

	ch := make(chan work, runtime.NumCPU())

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < runtime.NumCPU(); i++ {
		g.Go(func() error {
			for w := range ch {
				bar.Add(1)
				bar.Describe(fmt.Sprintf("sheet: %04d", w.idx))

				sheets, err := sheeter.Sheets(w.idx, w.set)
				if err != nil {
					log.Printf("error sheeting set %04d: %s", w.idx, err)
					continue
				}

				for _, sh := range sheets {
					if err := writeSheet(cfg, sh); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(ch)
		for idx, set := range sets {
			select {
			case ch <- work{idx, set}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}

func sheetPath(cfg *config, sh *sheet.Sheet) string {
	name := fmt.Sprintf("%s-%d", cfg.stem, sh.Set)
	if sh.Animation >= 0 {
		name = fmt.Sprintf("%s-%d", name, sh.Animation)
	}
	return filepath.Join(cfg.outDir, name+"."+cfg.format)
}

func writeSheet(cfg *config, sh *sheet.Sheet) error {
	outFn := sheetPath(cfg, sh)

	if sh.Canvas.Empty() {
		log.Printf("skipping %s: nothing to draw", outFn)
		return nil
	}

	f, err := os.Create(outFn)
	if err != nil {
		return err
	}
	defer f.Close()

	var encode func(io.Writer, *sheet.Sheet) error
	switch cfg.format {
	case "bmp":
		encode = pngsheet.EncodeBMP
	default:
		encode = pngsheet.Encode
	}

	if err := encode(f, sh); err != nil {
		f.Close()
		os.Remove(outFn)
		return fmt.Errorf("%w while encoding %s", err, outFn)
	}

	if err := f.Close(); err != nil {
		os.Remove(outFn)
		return err
	}

	fi, err := os.Stat(outFn)
	if err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d %s, %s)", outFn, sh.Bounds().Dx(), sh.Bounds().Dy(), sh.Mode(), humanize.Bytes(uint64(fi.Size())))

	return nil
}
