package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandpile-sim/sandpile-sim/sim"
)

func writePresets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApplyPreset_OverlaysNamedPreset(t *testing.T) {
	path := writePresets(t, `
version: "1"
presets:
  quick:
    grid_size: 16
    iterations: 500
    max_cascade: 50
    num_bins: 25
`)

	base := sim.DefaultConfig()
	base.Display = true

	cfg, err := applyPreset(base, path, "quick")
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.GridSize)
	assert.Equal(t, 500, cfg.Iterations)
	assert.Equal(t, 50.0, cfg.MaxCascade)
	assert.Equal(t, 25, cfg.NumBins)
	assert.True(t, cfg.Display, "output switches are not preset-controlled")
}

func TestApplyPreset_PartialPresetKeepsFlagValues(t *testing.T) {
	path := writePresets(t, `
version: "1"
presets:
  bins-only:
    max_cascade: 400
    num_bins: 100
`)

	cfg, err := applyPreset(sim.DefaultConfig(), path, "bins-only")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.GridSize, "unset preset field keeps the flag value")
	assert.Equal(t, 400.0, cfg.MaxCascade)
	assert.Equal(t, 100, cfg.NumBins)
}

func TestApplyPreset_UnknownPresetName(t *testing.T) {
	path := writePresets(t, `
version: "1"
presets:
  quick:
    grid_size: 16
`)

	_, err := applyPreset(sim.DefaultConfig(), path, "nope")
	assert.ErrorContains(t, err, `preset "nope" not found`)
}

func TestLoadPresets_StrictFieldChecking(t *testing.T) {
	// A typo in a field name must fail parsing, not silently drop the
	// setting.
	path := writePresets(t, `
version: "1"
presets:
  quick:
    grid_sise: 16
`)

	_, err := loadPresets(path)
	assert.Error(t, err)
}

func TestLoadPresets_MissingFile(t *testing.T) {
	_, err := loadPresets(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "read presets file")
}

func TestLoadPresets_RepositoryPresetsFileIsValid(t *testing.T) {
	pf, err := loadPresets("../presets.yaml")
	require.NoError(t, err)

	require.Contains(t, pf.Presets, "reference")
	ref := pf.Presets["reference"]
	assert.Equal(t, 30, ref.GridSize)
	assert.Equal(t, 5000, ref.Iterations)

	// Every shipped preset must be a valid simulation configuration.
	for name, p := range pf.Presets {
		cfg, err := applyPreset(sim.DefaultConfig(), "../presets.yaml", name)
		require.NoError(t, err)
		assert.NoError(t, cfg.Validate(), "preset %q (%+v)", name, p)
	}
}
