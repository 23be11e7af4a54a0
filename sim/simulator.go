package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator owns the grid, the engine, and the statistics for one run and
// drives the configured number of grain drops. The loop is strictly
// serial: each drop is fully relaxed before the next begins, so a drop's
// outcome depends on the lattice state the previous drop left behind.
type Simulator struct {
	Config Config
	Grid   *Grid
	Engine *Engine
	Stats  *Stats

	rng      *PartitionedRNG
	observer Observer
}

// NewSimulator validates the configuration and builds a run: a randomly
// initialized stable grid, an engine with its own deposit RNG stream, and
// empty statistics. The same seed and configuration reproduce the run
// bit-for-bit.
func NewSimulator(cfg Config, seed int64) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	grid := NewRandomGrid(cfg.GridSize, rng.ForSubsystem(SubsystemInit))
	return &Simulator{
		Config: cfg,
		Grid:   grid,
		Engine: NewEngine(grid, rng.ForSubsystem(SubsystemDeposit)),
		Stats:  NewStats(cfg.MaxCascade, cfg.NumBins),
		rng:    rng,
	}, nil
}

// SetObserver registers the external consumer notified after drops and,
// when Display or SaveFrames is enabled, after every individual event.
// A nil observer (the default) makes the run fully headless.
func (s *Simulator) SetObserver(o Observer) {
	s.observer = o
}

// Run executes the configured number of drops, feeding each drop's
// avalanche size into the histogram and appending the new mean height to
// the running average series.
func (s *Simulator) Run() {
	s.Stats.RecordAverage(s.Grid)
	logrus.Infof("starting mean height %.4f on %dx%d grid, %d drops",
		s.Grid.Mean(), s.Config.GridSize, s.Config.GridSize, s.Config.Iterations)

	perEvent := s.observer != nil && (s.Config.Display || s.Config.SaveFrames)

	for i := 0; i < s.Config.Iterations; i++ {
		var onEvent func(toppled map[Cell]int)
		if perEvent {
			drop := i
			onEvent = func(toppled map[Cell]int) {
				s.observer.ObserveEvent(s.snapshot(drop, toppled))
			}
		}

		res := s.Engine.Drop(onEvent)
		s.Stats.RecordAvalanche(res.AvalancheSize)
		s.Stats.RecordAverage(s.Grid)
		logrus.Debugf("[drop %06d] site=(%d,%d) avalanche=%d mean=%.4f",
			i, res.Site.X, res.Site.Y, res.AvalancheSize, s.Grid.Mean())

		if s.observer != nil {
			s.observer.ObserveDrop(s.snapshot(i+1, res.Toppled))
		}
	}

	logrus.Infof("simulation ended: %d drops, largest avalanche %d",
		s.Stats.Drops, s.Stats.MaxAvalanche)
}

// snapshot assembles a read-only view of the current state. toppled holds
// the per-cell topple counts of the drop in progress.
func (s *Simulator) snapshot(drop int, toppled map[Cell]int) Snapshot {
	counts := make([][]int, s.Config.GridSize)
	for y := range counts {
		counts[y] = make([]int, s.Config.GridSize)
	}
	for c, n := range toppled {
		counts[c.Y][c.X] = n
	}
	return Snapshot{
		Drop:      drop,
		Heights:   s.Grid.Heights(),
		Toppled:   counts,
		Averages:  s.Stats.Averages(),
		BinCounts: s.Stats.BinCounts(),
	}
}
