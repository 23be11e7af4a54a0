package anim

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFrame(t *testing.T, dir, name string, w, h int, shade uint8) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: shade, G: shade, B: shade, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestEncodeGIF_AssemblesFramesInOrder(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 4; i++ {
		writeTestFrame(t, dir, fmt.Sprintf("%08d.png", i), 16, 12, uint8(i*60))
	}
	out := filepath.Join(t.TempDir(), "sandpile.gif")

	n, err := EncodeGIF(dir, out, 64)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	g, err := gif.DecodeAll(f)
	require.NoError(t, err)

	require.Len(t, g.Image, 4)
	assert.Equal(t, 16, g.Image[0].Bounds().Dx())
	assert.Equal(t, 12, g.Image[0].Bounds().Dy())
	for _, d := range g.Delay {
		assert.GreaterOrEqual(t, d, 1, "delay floors at one centisecond")
	}

	// Frame order follows the zero-padded filenames: the first frame is
	// the darkest, the last the brightest.
	first := g.Image[0].At(8, 6).(color.RGBA)
	last := g.Image[3].At(8, 6).(color.RGBA)
	assert.Less(t, first.R, last.R)
}

func TestEncodeGIF_RejectsMismatchedFrameSizes(t *testing.T) {
	dir := t.TempDir()
	writeTestFrame(t, dir, "00000000.png", 16, 12, 0)
	writeTestFrame(t, dir, "00000001.png", 8, 12, 0)

	_, err := EncodeGIF(dir, filepath.Join(t.TempDir(), "out.gif"), 10)
	assert.ErrorContains(t, err, "differs from first frame")
}

func TestEncodeGIF_ErrorsWithoutFrames(t *testing.T) {
	_, err := EncodeGIF(t.TempDir(), filepath.Join(t.TempDir(), "out.gif"), 10)
	assert.ErrorContains(t, err, "no frames")
}

func TestEncodeGIF_RejectsInvalidFPS(t *testing.T) {
	_, err := EncodeGIF(t.TempDir(), "out.gif", 0)
	assert.ErrorContains(t, err, "fps")
}
