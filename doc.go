// Package soyield is an exploratory analysis and model-comparison pipeline
// for a soybean cultivar trial (40 cultivars, two seasons, four repetitions,
// 320 observations). It fits three regressors on grain yield (ordinary
// least squares, a CART regression tree and an RBF-kernel support vector
// regressor), scores them with holdout RMSE and 10-fold cross-validation,
// sweeps the SVR cost parameter, and builds two ensembles on top of the
// base models:
//
//   - a homogeneous bagging ensemble of regression trees (bootstrap
//     resampling with replacement, elementwise-mean aggregation), and
//   - a heterogeneous ensemble that averages the linear, bagged-tree and
//     SVR predictions over row-aligned test views.
//
// Each model family consumes its own feature-engineered view of the same
// physical dataset (raw for the tree, PCA-reduced for the regression,
// scaled and target-encoded for the SVR). Views carry stable row
// identifiers so that cross-view alignment is verified, never assumed.
//
// The runnable entry point lives in cmd/soyield; experiment drives the
// full pipeline from a YAML configuration.
package soyield
