package experiment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
data: trials/soy.csv
seed: 7
split:
  test_fraction: 0.25
bagging:
  resamples: 20
svm:
  cost: 4
  cost_grid: [0.5, 1, 4]
`)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "trials/soy.csv", cfg.DataPath)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 0.25, cfg.Split.TestFraction)
	assert.Equal(t, 20, cfg.Bagging.Resamples)
	assert.Equal(t, 4.0, cfg.SVM.Cost)
	assert.Equal(t, []float64{0.5, 1, 4}, cfg.SVM.CostGrid)

	// untouched keys keep their defaults
	assert.Equal(t, 10, cfg.CV.Folds)
	assert.Equal(t, 5, cfg.PCA.Components)
	assert.Equal(t, 0.1, cfg.SVM.Epsilon)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("split:\n  test_fraction: 2\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero test fraction", func(c *Config) { c.Split.TestFraction = 0 }},
		{"full test fraction", func(c *Config) { c.Split.TestFraction = 1 }},
		{"no resamples", func(c *Config) { c.Bagging.Resamples = 0 }},
		{"single fold", func(c *Config) { c.CV.Folds = 1 }},
		{"non-positive cost", func(c *Config) { c.SVM.Cost = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}

	assert.NoError(t, DefaultConfig().validate())
}
