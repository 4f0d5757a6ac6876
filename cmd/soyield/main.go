// Command soyield runs the soybean yield model comparison: three base
// regressors, a bagged tree and a heterogeneous average, scored by
// holdout RMSE and k-fold cross-validation.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/agrolab/soyield/experiment"
	"github.com/agrolab/soyield/pkg/log"
	"github.com/agrolab/soyield/report"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file; defaults apply when empty")
		dataPath   = flag.String("data", "", "trial CSV path, overrides the config")
		chartPath  = flag.String("chart", "", "RMSE chart output path, overrides the config")
		logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()

	log.Setup(*logLevel)

	cfg := experiment.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = experiment.LoadConfig(*configPath)
		if err != nil {
			slog.Error("config load failed", log.ErrAttr(err))
			os.Exit(1)
		}
	}
	if *dataPath != "" {
		cfg.DataPath = *dataPath
	}
	if *chartPath != "" {
		cfg.Report.Chart = *chartPath
	}

	result, err := experiment.Run(cfg)
	if err != nil {
		slog.Error("experiment failed", log.ErrAttr(err))
		os.Exit(1)
	}

	out := os.Stdout
	if cfg.Report.Path != "" {
		f, err := os.Create(cfg.Report.Path)
		if err != nil {
			slog.Error("report open failed", log.ErrAttr(err))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := report.Write(out, result.Records); err != nil {
		slog.Error("report write failed", log.ErrAttr(err))
		os.Exit(1)
	}

	if cfg.Report.Chart != "" {
		if err := report.SaveRMSEChart(result.Records, cfg.Report.Chart); err != nil {
			slog.Error("chart write failed", log.ErrAttr(err))
			os.Exit(1)
		}
	}
}
