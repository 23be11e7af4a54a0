package sim

// Snapshot is a read-only view of the simulation published to external
// consumers. Every slice is freshly allocated; mutating a Snapshot never
// touches simulation state.
type Snapshot struct {
	Drop      int       // completed drops so far
	Heights   [][]int   // current lattice, [row][col], values in [0, ToppleThreshold]
	Toppled   [][]int   // per-cell topple counts for the drop in progress (or just completed)
	Averages  []float64 // running mean height series, baseline first
	BinCounts []int     // avalanche-size histogram counts
}

// Observer receives snapshots from the Simulator. Implementations render,
// persist, or otherwise consume them; the simulation never depends on
// what an Observer does and runs to completion regardless.
type Observer interface {
	// ObserveEvent fires after each individual event inside a drop (the
	// initial deposit and every toppling). Only called when the Display or
	// SaveFrames switch is enabled.
	ObserveEvent(s Snapshot)

	// ObserveDrop fires once after each fully relaxed drop.
	ObserveDrop(s Snapshot)
}

// MultiObserver fans every notification out to each registered observer
// in order.
type MultiObserver []Observer

func (m MultiObserver) ObserveEvent(s Snapshot) {
	for _, o := range m {
		o.ObserveEvent(s)
	}
}

func (m MultiObserver) ObserveDrop(s Snapshot) {
	for _, o := range m {
		o.ObserveDrop(s)
	}
}
