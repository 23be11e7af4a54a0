package sim

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// Cell identifies a lattice site by column x and row y, zero-indexed.
type Cell struct {
	X, Y int
}

// Grid is a square lattice of non-negative integer sand heights stored in
// row-major order. It is mutated only by the Engine; everyone else reads
// copies obtained via Heights.
type Grid struct {
	Size    int
	heights []int
	buf     []float64 // scratch for Mean, avoids per-drop allocation
}

// NewGrid allocates an all-zero lattice with the given edge length.
func NewGrid(size int) *Grid {
	return &Grid{
		Size:    size,
		heights: make([]int, size*size),
		buf:     make([]float64, size*size),
	}
}

// NewRandomGrid allocates a lattice with every cell drawn uniformly from
// [0, ToppleThreshold), so the starting state is stable by construction.
func NewRandomGrid(size int, rng *rand.Rand) *Grid {
	g := NewGrid(size)
	for i := range g.heights {
		g.heights[i] = rng.Intn(ToppleThreshold)
	}
	return g
}

func (g *Grid) index(x, y int) int { return y*g.Size + x }

// Height returns the sand height at (x, y).
func (g *Grid) Height(x, y int) int {
	return g.heights[g.index(x, y)]
}

// Deposit adds amount to the cell at (x, y). Coordinates are
// caller-validated; every call site iterates in-bounds cells or comes
// from Neighbors.
func (g *Grid) Deposit(x, y, amount int) {
	g.heights[g.index(x, y)] += amount
}

// setHeight overwrites the cell at (x, y). Used by the Engine when a
// toppling cell is zeroed, and by tests to stage lattice states.
func (g *Grid) setHeight(x, y, h int) {
	g.heights[g.index(x, y)] = h
}

// IsUnstable reports whether the cell at (x, y) has reached the topple
// threshold.
func (g *Grid) IsUnstable(x, y int) bool {
	return g.heights[g.index(x, y)] >= ToppleThreshold
}

// Neighbors returns the in-bounds orthogonal neighbors of (x, y). Cells
// beyond the lattice edge are simply absent: sand toppled toward them is
// lost (dissipative boundary condition). The result is a pure function of
// (x, y) and the lattice size.
func (g *Grid) Neighbors(x, y int) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range [4]Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= g.Size || ny < 0 || ny >= g.Size {
			continue
		}
		out = append(out, Cell{nx, ny})
	}
	return out
}

// UnstableCells scans the full lattice in row-major order and returns
// every cell at or above the topple threshold. The Engine uses the result
// as the next relaxation wave's batch, so the scan order is also the
// in-batch processing order.
func (g *Grid) UnstableCells() []Cell {
	var out []Cell
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if g.heights[g.index(x, y)] >= ToppleThreshold {
				out = append(out, Cell{x, y})
			}
		}
	}
	return out
}

// Stable reports whether no cell has reached the topple threshold.
func (g *Grid) Stable() bool {
	for _, h := range g.heights {
		if h >= ToppleThreshold {
			return false
		}
	}
	return true
}

// Mass returns the total sand height over the lattice.
func (g *Grid) Mass() int {
	total := 0
	for _, h := range g.heights {
		total += h
	}
	return total
}

// Mean returns the mean cell height over the lattice.
func (g *Grid) Mean() float64 {
	for i, h := range g.heights {
		g.buf[i] = float64(h)
	}
	return stat.Mean(g.buf, nil)
}

// Heights returns the lattice as a freshly allocated [row][col] matrix.
// Callers may keep or mutate the copy freely; the grid's own storage is
// never exposed.
func (g *Grid) Heights() [][]int {
	out := make([][]int, g.Size)
	for y := 0; y < g.Size; y++ {
		row := make([]int, g.Size)
		copy(row, g.heights[y*g.Size:(y+1)*g.Size])
		out[y] = row
	}
	return out
}
