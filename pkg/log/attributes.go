package log

// Shared attribute keys. Using constants keeps field names identical across
// packages so log records stay queryable.
const (
	// ModelNameKey identifies the estimator type emitting the record.
	ModelNameKey = "model.name"
	// ComponentKey identifies the package or subsystem.
	ComponentKey = "component"
	// OperationKey identifies the ML operation in progress.
	OperationKey = "ml.operation"
	// PhaseKey identifies the pipeline phase.
	PhaseKey = "ml.phase"

	// SamplesKey is the row count of the data being processed.
	SamplesKey = "data.samples"
	// FeaturesKey is the column count of the data being processed.
	FeaturesKey = "data.features"
	// PredsKey is the number of predictions produced.
	PredsKey = "data.predictions"
	// PathKey is the input file path.
	PathKey = "data.path"

	// DurationMsKey is elapsed wall time in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey is the coefficient of determination of a fit.
	R2ScoreKey = "metric.r2"
	// CondKey is the design-matrix condition number.
	CondKey = "metric.cond"

	// RunIDKey ties all records of one diagnostics run together.
	RunIDKey = "run.id"
	// CheckKey is the title of the diagnostic check being executed.
	CheckKey = "diag.check"

	// ErrAttrKey is the conventional key for attached errors.
	ErrAttrKey = "error"
)

// Values for OperationKey.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"
)

// Values for PhaseKey.
const (
	PhasePreprocessing = "preprocessing"
	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhaseDiagnostics   = "diagnostics"
)
