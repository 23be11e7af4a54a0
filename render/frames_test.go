package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameWriter_ZeroPaddedSequentialNames(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFrameWriter(filepath.Join(dir, "images"))
	require.NoError(t, err)

	var paths []string
	for i := 0; i < 3; i++ {
		p, err := fw.Save(func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "frame %d", i)
			return err
		})
		require.NoError(t, err)
		paths = append(paths, p)
	}

	assert.Equal(t, "00000000.png", filepath.Base(paths[0]))
	assert.Equal(t, "00000001.png", filepath.Base(paths[1]))
	assert.Equal(t, "00000002.png", filepath.Base(paths[2]))
	assert.Equal(t, 3, fw.Count())

	// The zero-padded names must sort lexicographically into frame order.
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	assert.Equal(t, paths, sorted)
}

func TestFrameWriter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "images")

	_, err := NewFrameWriter(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFrameWriter_FailedWriteDoesNotAdvanceIndex(t *testing.T) {
	fw, err := NewFrameWriter(t.TempDir())
	require.NoError(t, err)

	boom := errors.New("render failed")
	_, err = fw.Save(func(w io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, fw.Count(), "failed frame must not consume an index")

	p, err := fw.Save(func(w io.Writer) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, "00000000.png", filepath.Base(p))
}
