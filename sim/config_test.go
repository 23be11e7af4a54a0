package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	valid := Config{GridSize: 30, Iterations: 5000, MaxCascade: 100, NumBins: 50}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"reference configuration is valid", func(c *Config) {}, ""},
		{"single-cell lattice is valid", func(c *Config) { c.GridSize = 1 }, ""},
		{"zero iterations is valid", func(c *Config) { c.Iterations = 0 }, ""},
		{"zero grid size", func(c *Config) { c.GridSize = 0 }, "grid size"},
		{"negative grid size", func(c *Config) { c.GridSize = -3 }, "grid size"},
		{"negative iterations", func(c *Config) { c.Iterations = -1 }, "iterations"},
		{"zero max cascade", func(c *Config) { c.MaxCascade = 0 }, "max cascade"},
		{"zero bins", func(c *Config) { c.NumBins = 0 }, "num bins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig_MatchesReferenceRun(t *testing.T) {
	cfg := DefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 30, cfg.GridSize)
	assert.Equal(t, 5000, cfg.Iterations)
	assert.Equal(t, 100.0, cfg.MaxCascade)
	assert.Equal(t, 50, cfg.NumBins)
	assert.False(t, cfg.Display)
	assert.False(t, cfg.SaveFrames)
}
