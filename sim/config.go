package sim

import "fmt"

// ToppleThreshold is the height at which a cell becomes unstable and
// topples. The reference model fixes it at 4 (one grain per orthogonal
// neighbor); it is not user-configurable.
const ToppleThreshold = 4

// Config groups the simulation parameters consumed by NewSimulator.
type Config struct {
	GridSize   int     // lattice edge length (must be >= 1)
	Iterations int     // number of grain drops (must be >= 0)
	MaxCascade float64 // upper edge of the avalanche-size histogram (must be > 0)
	NumBins    int     // number of equal-width histogram bins (must be > 0)

	// Display and SaveFrames independently enable per-event observer
	// notifications (after every individual toppling, not just after each
	// completed drop). With both false the run is headless and only the
	// per-drop notification fires.
	Display    bool
	SaveFrames bool
}

// DefaultConfig returns the parameters of the reference simulation.
func DefaultConfig() Config {
	return Config{
		GridSize:   30,
		Iterations: 5000,
		MaxCascade: 100,
		NumBins:    50,
	}
}

// Validate fails fast on malformed configuration so the core components
// never have to re-check it per call.
func (c Config) Validate() error {
	if c.GridSize < 1 {
		return fmt.Errorf("grid size must be >= 1, got %d", c.GridSize)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must be >= 0, got %d", c.Iterations)
	}
	if c.MaxCascade <= 0 {
		return fmt.Errorf("max cascade must be > 0, got %v", c.MaxCascade)
	}
	if c.NumBins <= 0 {
		return fmt.Errorf("num bins must be > 0, got %d", c.NumBins)
	}
	return nil
}
