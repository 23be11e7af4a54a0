// Package anim assembles persisted simulation frames into an animation.
// Frames are read in lexicographic filename order, which the frame
// writer's zero-padded numbering makes identical to temporal order.
package anim

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
)

// EncodeGIF reads every *.png under framesDir and writes an animated GIF
// to outPath at the given frame rate. The first frame fixes the output
// dimensions; a frame with different dimensions is an error. Returns the
// number of frames encoded.
func EncodeGIF(framesDir, outPath string, fps int) (int, error) {
	if fps <= 0 {
		return 0, fmt.Errorf("fps must be > 0, got %d", fps)
	}

	files, err := filepath.Glob(filepath.Join(framesDir, "*.png"))
	if err != nil {
		return 0, fmt.Errorf("list frames: %w", err)
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no frames found in %s", framesDir)
	}
	sort.Strings(files)

	// GIF delays are in centiseconds; high frame rates floor to the
	// minimum representable delay.
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}

	out := &gif.GIF{}
	var bounds image.Rectangle
	for i, file := range files {
		img, err := readPNG(file)
		if err != nil {
			return 0, fmt.Errorf("frame %s: %w", filepath.Base(file), err)
		}

		if i == 0 {
			bounds = img.Bounds()
			logrus.Infof("frame size %dx%d, %d frames", bounds.Dx(), bounds.Dy(), len(files))
		} else if !img.Bounds().Eq(bounds) {
			return 0, fmt.Errorf("frame %s: size %v differs from first frame %v",
				filepath.Base(file), img.Bounds(), bounds)
		}

		pal := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(pal, bounds, img, bounds.Min)
		out.Image = append(out.Image, pal)
		out.Delay = append(out.Delay, delay)

		if i > 0 && i%1000 == 0 {
			logrus.Infof("encoded %d/%d frames", i, len(files))
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}
	if err := gif.EncodeAll(f, out); err != nil {
		f.Close()
		return 0, fmt.Errorf("encode gif: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close output: %w", err)
	}
	return len(files), nil
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
