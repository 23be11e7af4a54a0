package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandpile-sim/sandpile-sim/sim"
)

func TestConsoleObserver_DrawsLattice(t *testing.T) {
	var buf strings.Builder
	o := NewConsoleObserver(&buf)

	o.ObserveDrop(sim.Snapshot{
		Drop: 7,
		Heights: [][]int{
			{0, 3},
			{1, 2},
		},
		Averages: []float64{1.0, 1.5},
	})

	out := buf.String()
	assert.Contains(t, out, "drop 7")
	assert.Contains(t, out, "mean 1.5000")
	assert.Contains(t, out, "* ", "height 3 renders as its glyph")

	// Two lattice rows plus the header and trailing blank line.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
}

func TestConsoleObserver_ClampsOverThresholdHeights(t *testing.T) {
	// Mid-cascade snapshots can hold heights above the threshold; they
	// must render with the darkest glyph instead of panicking.
	var buf strings.Builder
	o := NewConsoleObserver(&buf)

	o.ObserveEvent(sim.Snapshot{
		Drop:    0,
		Heights: [][]int{{6}},
	})

	assert.Contains(t, buf.String(), "#")
}
