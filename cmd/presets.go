package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sandpile-sim/sandpile-sim/sim"
)

// Preset is a named simulation configuration in presets.yaml.
type Preset struct {
	GridSize   int     `yaml:"grid_size"`
	Iterations int     `yaml:"iterations"`
	MaxCascade float64 `yaml:"max_cascade"`
	NumBins    int     `yaml:"num_bins"`
}

// PresetsFile is the full presets.yaml structure. All fields must be
// listed to satisfy KnownFields(true) strict parsing.
type PresetsFile struct {
	Version string            `yaml:"version"`
	Presets map[string]Preset `yaml:"presets"`
}

// loadPresets parses a presets file with strict field checking, so typos
// in the YAML cause errors instead of silently dropped settings.
func loadPresets(path string) (PresetsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PresetsFile{}, fmt.Errorf("read presets file: %w", err)
	}
	var pf PresetsFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&pf); err != nil {
		return PresetsFile{}, fmt.Errorf("parse presets file: %w", err)
	}
	return pf, nil
}

// applyPreset overlays the named preset from path onto cfg. Zero-valued
// preset fields leave the corresponding flag value untouched.
func applyPreset(cfg sim.Config, path, name string) (sim.Config, error) {
	pf, err := loadPresets(path)
	if err != nil {
		return cfg, err
	}
	p, ok := pf.Presets[name]
	if !ok {
		return cfg, fmt.Errorf("preset %q not found in %s", name, path)
	}
	if p.GridSize != 0 {
		cfg.GridSize = p.GridSize
	}
	if p.Iterations != 0 {
		cfg.Iterations = p.Iterations
	}
	if p.MaxCascade != 0 {
		cfg.MaxCascade = p.MaxCascade
	}
	if p.NumBins != 0 {
		cfg.NumBins = p.NumBins
	}
	return cfg, nil
}
