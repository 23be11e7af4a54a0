// Package sim implements the 2D Abelian sandpile model on a square
// lattice with dissipative (open) boundary conditions.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - grid.go: the lattice, neighbor lookup, and stability queries
//   - engine.go: grain deposition and the wave-by-wave relaxation loop
//   - simulator.go: the drop loop, statistics accumulation, and observer
//     notifications
//
// # Architecture
//
// The sim package is a library with no I/O of its own. One grain is
// dropped on a uniformly random cell; any cell reaching the topple
// threshold is zeroed and sheds one grain to each in-bounds orthogonal
// neighbor, possibly cascading over several waves until the lattice is
// stable again. Sand pushed across a lattice edge is lost, which is what
// makes the process converge.
//
// Derived series (running mean height, avalanche-size histogram) live in
// stats.go. External consumers (renderers, frame recorders) receive
// read-only snapshots through the Observer interface in observer.go and
// never share the grid's backing storage.
//
// All randomness flows from a single seed via PartitionedRNG (rng.go),
// so a run is reproducible bit-for-bit given the same seed and
// configuration.
package sim
