package log

// Standard attribute keys used across the pipeline. Keys follow a
// hierarchical naming convention ("model.name", "data.rows") so log
// records from different stages stay filterable.
const (
	// ModelNameKey identifies a model family ("linear", "tree", "svr")
	// or ensemble ("bagging", "average").
	ModelNameKey = "model.name"

	// OperationKey names the stage: "fit", "predict", "bagging",
	// "cross_validation", "sweep", "combine".
	OperationKey = "ml.operation"

	// RowsKey and FeaturesKey describe the table being processed.
	RowsKey     = "data.rows"
	FeaturesKey = "data.features"

	// SeedKey records the deterministic seed driving a randomized stage.
	SeedKey = "ml.seed"

	// RMSEKey and MAEKey carry metric values in report-style records.
	RMSEKey = "metric.rmse"
	MAEKey  = "metric.mae"

	// DurationKey carries wall-clock duration in milliseconds.
	DurationKey = "duration_ms"
)
