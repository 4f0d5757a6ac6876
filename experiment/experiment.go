package experiment

import (
	"log/slog"
	"time"

	"github.com/agrolab/soyield/adapter"
	"github.com/agrolab/soyield/core/model"
	"github.com/agrolab/soyield/dataset"
	"github.com/agrolab/soyield/ensemble"
	"github.com/agrolab/soyield/linear"
	"github.com/agrolab/soyield/metrics"
	"github.com/agrolab/soyield/modelselection"
	"github.com/agrolab/soyield/pkg/errors"
	"github.com/agrolab/soyield/pkg/log"
	"github.com/agrolab/soyield/report"
	"github.com/agrolab/soyield/svm"
	"github.com/agrolab/soyield/tree"
)

// Result carries everything a caller needs to compare the models.
type Result struct {
	Records []report.Record

	// BestCost is the SVR cost selected by the sweep (or the configured
	// cost when no grid was given).
	BestCost float64
	// SweepScores maps each swept cost to its holdout RMSE.
	SweepScores map[float64]float64

	// Combined is the heterogeneous ensemble's prediction on the
	// holdout, aligned with TestRowIDs.
	Combined   []float64
	TestRowIDs []int
}

// Run loads the trial file named by cfg and executes the comparison.
func Run(cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rows, err := dataset.LoadSoybean(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	return RunRows(cfg, rows)
}

// RunRows executes the comparison on already-loaded rows.
//
// Every model is scored on the same physical holdout rows; the split is
// drawn once and applied to all three views, so the positional alignment
// the heterogeneous ensemble needs holds by construction and is still
// verified by row identifiers when combining.
func RunRows(cfg Config, rows []dataset.SoybeanRow) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	views, err := BuildViews(rows, cfg.PCA.Components)
	if err != nil {
		return nil, err
	}
	n := views.Tree.Len()
	slog.Info("views built", log.RowsKey, n, log.SeedKey, cfg.Seed)

	trainIdx, testIdx, err := dataset.SplitIndices(n, cfg.Split.TestFraction, cfg.Seed)
	if err != nil {
		return nil, err
	}

	split := func(t *dataset.Table) (*dataset.Table, *dataset.Table, error) {
		tr, err := t.Subset(trainIdx)
		if err != nil {
			return nil, nil, err
		}
		te, err := t.Subset(testIdx)
		if err != nil {
			return nil, nil, err
		}
		return tr, te, nil
	}

	treeTrain, treeTest, err := split(views.Tree)
	if err != nil {
		return nil, err
	}
	regTrain, regTest, err := split(views.Regression)
	if err != nil {
		return nil, err
	}
	svmTrain, svmTest, err := split(views.SVM)
	if err != nil {
		return nil, err
	}

	linearAd := adapter.New("linear", func() model.Regressor {
		return linear.NewRegression()
	})
	treeAd := adapter.New("tree", func() model.Regressor {
		return tree.NewRegressor(cfg.Tree.MinSplit, cfg.Tree.MinLeaf, cfg.Tree.MaxDepth)
	})
	svrAdapter := func(cost float64) adapter.Adapter {
		return adapter.New("svr", func() model.Regressor {
			s := svm.NewSVR(cost, cfg.Seed)
			s.Epsilon = cfg.SVM.Epsilon
			s.Gamma = cfg.SVM.Gamma
			return s
		})
	}

	result := &Result{BestCost: cfg.SVM.Cost, TestRowIDs: svmTest.RowIDs()}

	// sweep the SVR cost on the holdout before the final fits
	if len(cfg.SVM.CostGrid) > 0 {
		scores, err := modelselection.Sweep(svrAdapter, svmTrain, svmTest, cfg.SVM.CostGrid)
		if err != nil {
			return nil, err
		}
		best, bestRMSE := modelselection.ArgMin(scores)
		slog.Info("cost sweep finished",
			log.OperationKey, "sweep",
			"best_cost", best,
			log.RMSEKey, bestRMSE)
		result.BestCost = best
		result.SweepScores = scores
	}
	svmAd := svrAdapter(result.BestCost)

	kf := modelselection.NewKFold(cfg.CV.Folds, true, cfg.Seed)

	type baseRun struct {
		ad          adapter.Adapter
		train, test *dataset.Table
		view        *dataset.Table
	}
	runs := []baseRun{
		{linearAd, regTrain, regTest, views.Regression},
		{treeAd, treeTrain, treeTest, views.Tree},
		{svmAd, svmTrain, svmTest, views.SVM},
	}

	fitted := make(map[string]*adapter.Fitted, len(runs))
	for _, run := range runs {
		rec, f, err := scoreBase(run.ad, run.train, run.test, run.view, kf)
		if err != nil {
			return nil, err
		}
		fitted[run.ad.Name()] = f
		result.Records = append(result.Records, rec)
	}

	// homogeneous ensemble: bagged regression tree
	bagging := ensemble.Bagging{Adapter: treeAd, Resamples: cfg.Bagging.Resamples, Seed: cfg.Seed}
	bagged, baggedMean, err := bagging.Build(treeTrain, treeTest)
	if err != nil {
		return nil, err
	}
	baggedRMSE, err := metrics.RMSE(treeTest.YSlice(), baggedMean)
	if err != nil {
		return nil, err
	}
	slog.Info("bagging built",
		log.ModelNameKey, "bagging",
		"resamples", bagged.Size(),
		log.RMSEKey, baggedRMSE)
	result.Records = append(result.Records, report.Record{
		Name:        "bagging_tree",
		HoldoutRMSE: baggedRMSE,
		TestRows:    treeTest.Len(),
	})

	// heterogeneous ensemble over the aligned holdout views
	combined, err := ensemble.CombineAverage(fitted["linear"], regTest, baggedMean, fitted["svr"], svmTest)
	if err != nil {
		return nil, err
	}
	combinedRMSE, err := metrics.RMSE(svmTest.YSlice(), combined)
	if err != nil {
		return nil, err
	}
	result.Combined = combined
	result.Records = append(result.Records, report.Record{
		Name:        "ensemble_average",
		HoldoutRMSE: combinedRMSE,
		TestRows:    svmTest.Len(),
	})

	slog.Info("experiment finished",
		log.DurationKey, time.Since(start).Milliseconds(),
		"models", len(result.Records))
	return result, nil
}

// scoreBase fits one family on its training view, scores the holdout and
// cross-validates on the full view.
func scoreBase(ad adapter.Adapter, train, test, view *dataset.Table, kf modelselection.KFold) (report.Record, *adapter.Fitted, error) {
	f, err := ad.Fit(train)
	if err != nil {
		return report.Record{}, nil, err
	}
	pred, err := f.Predict(test)
	if err != nil {
		return report.Record{}, nil, err
	}
	rmse, err := metrics.RMSE(test.YSlice(), pred)
	if err != nil {
		return report.Record{}, nil, errors.Wrapf(err, "%s holdout", ad.Name())
	}

	cv, err := modelselection.CrossValidate(ad, view, kf)
	if err != nil {
		return report.Record{}, nil, errors.Wrapf(err, "%s cross-validation", ad.Name())
	}

	slog.Info("base model scored",
		log.ModelNameKey, ad.Name(),
		log.RMSEKey, rmse,
		"cv_mean_rmse", cv.MeanRMSE,
		log.MAEKey, cv.MeanMAE)

	return report.Record{
		Name:        ad.Name(),
		HoldoutRMSE: rmse,
		CVMeanRMSE:  cv.MeanRMSE,
		CVStdRMSE:   cv.StdRMSE,
		CVMeanMAE:   cv.MeanMAE,
		CVStdMAE:    cv.StdMAE,
		TestRows:    test.Len(),
	}, f, nil
}
