package sim

import "math/rand"

// DropResult reports one completed grain drop: where the grain landed,
// how many toppling occurrences it triggered in total, and how often each
// cell toppled. Toppled is rebuilt from scratch for every drop.
type DropResult struct {
	Site          Cell
	AvalancheSize int
	Toppled       map[Cell]int
}

// Engine advances the simulation by exactly one grain deposition at a
// time, relaxing the grid to a stable state before returning. It is the
// grid's only writer.
type Engine struct {
	grid *Grid
	rng  *rand.Rand
}

// NewEngine creates an Engine driving the given grid. rng supplies drop
// sites; it must be the dedicated deposit subsystem stream so runs stay
// reproducible.
func NewEngine(grid *Grid, rng *rand.Rand) *Engine {
	return &Engine{grid: grid, rng: rng}
}

// Drop deposits one grain at a uniformly random cell and relaxes the grid.
// onEvent, if non-nil, fires after the initial deposit and after every
// individual toppling with the per-cell topple counts accumulated so far
// in this drop; the map must not be retained across calls.
func (e *Engine) Drop(onEvent func(toppled map[Cell]int)) DropResult {
	site := Cell{X: e.rng.Intn(e.grid.Size), Y: e.rng.Intn(e.grid.Size)}
	return e.DropAt(site, onEvent)
}

// DropAt is Drop with a caller-chosen site. It exists so callers with
// their own site sequence (tests, replay) can reproduce a run exactly.
//
// Relaxation runs in waves. A wave processes a pre-captured batch of
// unstable cells in row-major order: each cell is zeroed unconditionally
// when its turn arrives (even if earlier cells in the same batch have
// raised it further), counted as one toppling occurrence, and each of its
// in-bounds neighbors receives one grain immediately. Only after the
// whole batch is processed is the lattice rescanned; a non-empty scan
// becomes the next wave's batch. Dissipative boundaries guarantee the
// loop terminates.
func (e *Engine) DropAt(site Cell, onEvent func(toppled map[Cell]int)) DropResult {
	res := DropResult{Site: site, Toppled: make(map[Cell]int)}

	e.grid.Deposit(site.X, site.Y, 1)
	if onEvent != nil {
		onEvent(res.Toppled)
	}
	if !e.grid.IsUnstable(site.X, site.Y) {
		return res
	}

	batch := []Cell{site}
	for len(batch) > 0 {
		for _, c := range batch {
			e.grid.setHeight(c.X, c.Y, 0)
			res.Toppled[c]++
			res.AvalancheSize++
			for _, n := range e.grid.Neighbors(c.X, c.Y) {
				e.grid.Deposit(n.X, n.Y, 1)
			}
			if onEvent != nil {
				onEvent(res.Toppled)
			}
		}
		batch = e.grid.UnstableCells()
	}
	return res
}
