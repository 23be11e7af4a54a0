package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sandpile-sim/sandpile-sim/anim"
	"github.com/sandpile-sim/sandpile-sim/render"
	sim "github.com/sandpile-sim/sandpile-sim/sim"
)

var (
	// CLI flags for the simulation run
	seed        int64   // Seed for grid initialization and drop-site selection
	logLevel    string  // Log verbosity level
	gridSize    int     // Lattice edge length
	iterations  int     // Number of grain drops
	maxCascade  float64 // Upper edge of the avalanche-size histogram
	numBins     int     // Number of equal-width histogram bins
	display     bool    // Live lattice view in the terminal, updated per event
	saveFrames  bool    // Persist a PNG frame per event and per drop
	framesDir   string  // Directory for persisted frames
	presetName  string  // Named preset from the presets file, overrides size flags
	presetsPath string  // Path to the presets YAML file

	// CLI flags for the encode subcommand
	encodeOut string // Output animation path
	encodeFPS int    // Animation frame rate
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sandpile-sim",
	Short: "2D Abelian sandpile simulator with avalanche statistics",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sandpile simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sim.Config{
			GridSize:   gridSize,
			Iterations: iterations,
			MaxCascade: maxCascade,
			NumBins:    numBins,
			Display:    display,
			SaveFrames: saveFrames,
		}
		if presetName != "" {
			cfg, err = applyPreset(cfg, presetsPath, presetName)
			if err != nil {
				logrus.Fatalf("Unable to apply preset: %v", err)
			}
		}

		s, err := sim.NewSimulator(cfg, seed)
		if err != nil {
			logrus.Fatalf("Unable to build simulation: %v", err)
		}

		var observers sim.MultiObserver
		if display {
			observers = append(observers, render.NewConsoleObserver(os.Stdout))
		}
		if saveFrames {
			fw, err := render.NewFrameWriter(framesDir)
			if err != nil {
				logrus.Fatalf("Unable to prepare frames directory: %v", err)
			}
			observers = append(observers, render.NewFrameObserver(render.NewRenderer(), fw))
		}
		if len(observers) > 0 {
			s.SetObserver(observers)
		}

		logrus.Infof("Starting %dx%d sandpile, %d drops, seed %d",
			cfg.GridSize, cfg.GridSize, cfg.Iterations, seed)
		startTime := time.Now()

		s.Run()
		s.Stats.Print()

		logrus.Infof("Simulation complete in %s.", time.Since(startTime).Round(time.Millisecond))
	},
}

// encodeCmd assembles previously saved frames into an animation
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode saved frames into an animated GIF",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		n, err := anim.EncodeGIF(framesDir, encodeOut, encodeFPS)
		if err != nil {
			logrus.Fatalf("Unable to encode animation: %v", err)
		}
		logrus.Infof("Encoded %d frames into %s at %d fps", n, encodeOut, encodeFPS)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for grid initialization and drop sites")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Simulation configs
	runCmd.Flags().IntVar(&gridSize, "grid-size", 30, "Lattice edge length")
	runCmd.Flags().IntVar(&iterations, "iterations", 5000, "Number of grain drops")
	runCmd.Flags().Float64Var(&maxCascade, "max-cascade", 100, "Histogram upper edge for avalanche sizes")
	runCmd.Flags().IntVar(&numBins, "num-bins", 50, "Number of histogram bins")
	runCmd.Flags().StringVar(&presetName, "preset", "", "Named preset from the presets file")
	runCmd.Flags().StringVar(&presetsPath, "presets-file", "presets.yaml", "Path to the presets file")

	// Output configs
	runCmd.Flags().BoolVar(&display, "display", false, "Show a live lattice view in the terminal")
	runCmd.Flags().BoolVar(&saveFrames, "save-frames", false, "Persist a PNG frame per toppling event")
	runCmd.Flags().StringVar(&framesDir, "frames-dir", "images", "Directory for persisted frames")

	encodeCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	encodeCmd.Flags().StringVar(&framesDir, "frames-dir", "images", "Directory holding persisted frames")
	encodeCmd.Flags().StringVar(&encodeOut, "out", "sandpile_2d.gif", "Output animation path")
	encodeCmd.Flags().IntVar(&encodeFPS, "fps", 64, "Animation frames per second")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(encodeCmd)
}
