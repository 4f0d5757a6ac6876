// Package experiment drives the full comparison: load the trial data,
// derive the three model-family views, fit and score the base models,
// build both ensembles and emit the report.
package experiment

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agrolab/soyield/pkg/errors"
)

// Config holds every tunable of one experiment run. All randomized
// stages derive their seeds from Seed, so two runs with the same config
// and data are identical.
type Config struct {
	// DataPath locates the trial CSV.
	DataPath string `yaml:"data"`
	// Seed drives the split, the bootstrap draws, the fold shuffle and
	// the SVR coordinate order.
	Seed uint64 `yaml:"seed"`

	Split struct {
		// TestFraction of rows held out; the holdout gets
		// floor(TestFraction * rows) rows.
		TestFraction float64 `yaml:"test_fraction"`
	} `yaml:"split"`

	Bagging struct {
		Resamples int `yaml:"resamples"`
	} `yaml:"bagging"`

	CV struct {
		Folds int `yaml:"folds"`
	} `yaml:"cv"`

	Tree struct {
		MinSplit int `yaml:"min_split"`
		MinLeaf  int `yaml:"min_leaf"`
		MaxDepth int `yaml:"max_depth"`
	} `yaml:"tree"`

	SVM struct {
		Cost    float64 `yaml:"cost"`
		Epsilon float64 `yaml:"epsilon"`
		Gamma   float64 `yaml:"gamma"`
		// CostGrid, when non-empty, is swept on the holdout and the
		// argmin cost replaces Cost for the final fit.
		CostGrid []float64 `yaml:"cost_grid"`
	} `yaml:"svm"`

	PCA struct {
		Components int `yaml:"components"`
	} `yaml:"pca"`

	Report struct {
		// Path receives the JSON-lines report; empty writes to stdout.
		Path string `yaml:"path"`
		// Chart, when set, receives an RMSE bar chart (.png/.svg).
		Chart string `yaml:"chart"`
	} `yaml:"report"`
}

// DefaultConfig returns the configuration of the reference run.
func DefaultConfig() Config {
	var cfg Config
	cfg.DataPath = "soybeans.csv"
	cfg.Seed = 42
	cfg.Split.TestFraction = 0.3
	cfg.Bagging.Resamples = 50
	cfg.CV.Folds = 10
	cfg.Tree.MinSplit = 5
	cfg.Tree.MinLeaf = 2
	cfg.SVM.Cost = 1.0
	cfg.SVM.Epsilon = 0.1
	cfg.PCA.Components = 5
	return cfg
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "experiment.LoadConfig")
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrap(err, "experiment.LoadConfig")
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Split.TestFraction <= 0 || c.Split.TestFraction >= 1 {
		return errors.NewValueError("experiment.Config", "split.test_fraction must be in (0, 1)")
	}
	if c.Bagging.Resamples < 1 {
		return errors.NewValueError("experiment.Config", "bagging.resamples must be positive")
	}
	if c.CV.Folds < 2 {
		return errors.NewValueError("experiment.Config", "cv.folds must be at least 2")
	}
	if c.SVM.Cost <= 0 {
		return errors.NewValueError("experiment.Config", "svm.cost must be positive")
	}
	return nil
}
