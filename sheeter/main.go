package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

const readme = `Unpacks decoded animation sets into a series of sprite sheet images, one per set.

The input directory holds a manifest.json and one PNG per frame. Existing files are overwritten.

Styles:
  0: save each animation as a separate image
  1: put all animations of a set in one image, each row sized to its own frames
  2: put all animations of a set in one image, every frame sized alike`

func main() {
	cmd := &cli.Command{
		Name:        "sheeter",
		Usage:       "build sprite sheets from animation sets",
		Description: readme,
		ArgsUsage:   "<manifest dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "folder",
				Aliases: []string{"f"},
				Usage:   "where to write the sheets (default: <manifest dir>-sheets)",
			},
			&cli.UintFlag{
				Name:    "borderColor",
				Aliases: []string{"b"},
				Value:   255,
				Usage:   "palette index between frames and rows",
			},
			&cli.UintFlag{
				Name:    "unusedColor",
				Aliases: []string{"u"},
				Value:   0,
				Usage:   "palette index for the part of a frame box the frame does not cover",
			},
			&cli.IntFlag{
				Name:    "style",
				Aliases: []string{"s"},
				Value:   1,
				Usage:   "layout style: 0, 1 or 2",
			},
			&cli.BoolFlag{
				Name:    "melk",
				Aliases: []string{"m"},
				Usage:   "use each set's own palette, with its alpha channel stripped",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "png",
				Usage: "output format: png or bmp",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("%s", err)
	}
}
