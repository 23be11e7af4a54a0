package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FrameWriter persists rendered frames under a directory as
// 00000000.png, 00000001.png, ... The zero-padded 8-digit index makes a
// plain lexicographic sort of the directory reproduce frame order, which
// is the only contract downstream encoders rely on.
type FrameWriter struct {
	dir  string
	next int
}

// NewFrameWriter creates the target directory if needed and returns a
// writer whose numbering starts at zero.
func NewFrameWriter(dir string) (*FrameWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frames dir: %w", err)
	}
	return &FrameWriter{dir: dir}, nil
}

// Save allocates the next frame path and hands write an open file for it.
// The index advances only on success, so a failed frame leaves no gap.
func (fw *FrameWriter) Save(write func(io.Writer) error) (string, error) {
	path := filepath.Join(fw.dir, fmt.Sprintf("%08d.png", fw.next))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create frame: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close frame: %w", err)
	}
	fw.next++
	return path, nil
}

// Count returns the number of frames written so far.
func (fw *FrameWriter) Count() int { return fw.next }

// Dir returns the directory frames are written to.
func (fw *FrameWriter) Dir() string { return fw.dir }
