package recipe

import (
	"github.com/cdbale/recipes/core/table"
)

// Step is a declared transformation with configuration but no learned
// parameters. Step values are immutable: fitting produces a separate
// PreparedStep and leaves the declared step untouched, so an unprepared
// recipe snapshot stays valid after preparation.
//
// New step kinds implement this pair of interfaces; LogTransform and
// DummyEncode are the built-in kinds.
type Step interface {
	// Kind returns the step's kind name, e.g. "log_transform".
	Kind() string

	// Selector returns the step's target selector. Resolution happens at
	// preparation time.
	Selector() Selector

	// Fit learns the step's parameters from the selected columns of the
	// reference dataset and returns the prepared form of the step. Steps
	// without learned parameters still validate that the selected columns
	// have the kind they require.
	Fit(columns []string, ref *table.Table) (PreparedStep, error)
}

// PreparedStep is a step whose parameters are frozen. Apply never mutates
// its input or the step itself, so a prepared step can transform any
// number of datasets concurrently with identical results.
type PreparedStep interface {
	// Kind returns the step's kind name.
	Kind() string

	// Columns returns the column names the selection was frozen to at
	// preparation time.
	Columns() []string

	// Apply transforms the dataset, returning a new one. Frozen columns
	// absent from t are skipped; the recipe decides beforehand which
	// absences are legal.
	Apply(t *table.Table) (*table.Table, error)
}

// Invertible is implemented by prepared steps that can undo their forward
// transformation on a single value, e.g. exponentiation reversing a log
// transform. Callers use Recipe.InverseTransform rather than matching
// steps to inverses by hand.
type Invertible interface {
	// Invert maps a transformed value of the named column back to the
	// original scale. The column is one of the step's frozen columns;
	// steps with per-column parameters look them up by name.
	Invert(column string, value float64) float64
}
