// Standard attribute keys for recipe operations. Using these keys
// consistently enables filtering and analysis of preprocessing logs:
// which step ran, over which columns, on how many rows.

package log

// Component and operation context.
const (
	// ComponentKey identifies which package is performing the operation.
	// Examples: "recipe", "linear", "metrics"
	ComponentKey = "component"

	// OperationKey specifies the operation being performed.
	// Standard values: OperationPrep, OperationBake, OperationFit, OperationPredict.
	OperationKey = "operation"

	// StepKindKey identifies the transformation step kind.
	// Examples: "log_transform", "dummy_encode"
	StepKindKey = "step.kind"

	// ModelNameKey identifies the type of model or component instance.
	ModelNameKey = "model.name"
)

// Standard operation values.
const (
	OperationPrep    = "prep"
	OperationBake    = "bake"
	OperationFit     = "fit"
	OperationPredict = "predict"
)

// Data shape and content.
const (
	// RowsKey indicates the number of rows in the dataset being processed.
	RowsKey = "data.rows"

	// ColumnsKey indicates the number of columns in the dataset.
	ColumnsKey = "data.columns"

	// ColumnKey names a single column an operation or warning refers to.
	ColumnKey = "data.column"

	// LevelKey names a categorical level, e.g. an unseen level at bake time.
	LevelKey = "data.level"

	// LevelsKey indicates how many distinct levels a step learned.
	LevelsKey = "data.levels"

	// StepsKey indicates how many steps a recipe carries.
	StepsKey = "recipe.steps"

	// OutcomeKey names the declared outcome column.
	OutcomeKey = "recipe.outcome"
)

// Performance and evaluation.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// RMSEKey records a root-mean-squared-error value.
	RMSEKey = "metrics.rmse"
)
