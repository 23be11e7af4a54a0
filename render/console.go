package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/sandpile-sim/sandpile-sim/sim"
)

// glyphs maps cell heights to display characters, darkest last. Heights
// at the threshold only appear in mid-cascade snapshots.
var glyphs = []byte{' ', '.', ':', '*', '#'}

// ConsoleObserver writes a live text view of the lattice to an io.Writer
// after every event it is notified of. It is the headful counterpart of
// FrameObserver for terminal runs.
type ConsoleObserver struct {
	w io.Writer
}

// NewConsoleObserver returns an observer printing to w.
func NewConsoleObserver(w io.Writer) *ConsoleObserver {
	return &ConsoleObserver{w: w}
}

func (o *ConsoleObserver) ObserveEvent(s sim.Snapshot) { o.draw(s) }
func (o *ConsoleObserver) ObserveDrop(s sim.Snapshot)  { o.draw(s) }

func (o *ConsoleObserver) draw(s sim.Snapshot) {
	var b strings.Builder
	fmt.Fprintf(&b, "drop %d", s.Drop)
	if n := len(s.Averages); n > 0 {
		fmt.Fprintf(&b, "  mean %.4f", s.Averages[n-1])
	}
	b.WriteByte('\n')
	for _, row := range s.Heights {
		for _, h := range row {
			if h >= len(glyphs) {
				h = len(glyphs) - 1
			}
			b.WriteByte(glyphs[h])
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	io.WriteString(o.w, b.String())
}
