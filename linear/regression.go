// Package linear provides ordinary least squares regression over baked
// tables.
//
// The Regression model consumes a dataset with one designated outcome
// column and treats every remaining column as a numeric predictor, which
// is exactly the shape a prepared recipe produces: continuous columns log
// transformed, categorical columns expanded into 0/1 indicators.
//
// Example usage:
//
//	m := linear.NewRegression()
//	err := m.Fit(bakedTrain, "Sales")
//	preds, err := m.Predict(bakedTest)
package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/cdbale/recipes/core/model"
	"github.com/cdbale/recipes/core/parallel"
	"github.com/cdbale/recipes/core/table"
	recipesErrors "github.com/cdbale/recipes/pkg/errors"
	"github.com/cdbale/recipes/pkg/log"
)

// Regression is an ordinary least squares linear regression model.
type Regression struct {
	State    *model.StateManager // public for gob encoding
	Weights  *mat.VecDense       // coefficient per feature, in feature order
	Bias     float64             // intercept term
	Features []string            // predictor column order frozen at fit time
	outcome  string
	logger   log.Logger
}

// NewRegression creates a new untrained regression model.
func NewRegression() *Regression {
	return &Regression{
		State: model.NewStateManager(),
		logger: log.GetLoggerWithName("linear").With(
			log.ModelNameKey, "Regression",
			log.ComponentKey, "linear",
		),
	}
}

// Fit trains the model on a table with the named outcome column. Every
// other column is used as a predictor and must be continuous.
//
// The normal equations (X^T X) w = X^T y are solved with an explicit
// intercept column prepended to the design matrix.
//
// Returns a SchemaError when the outcome is missing or any predictor
// column is categorical, and an error wrapping ErrSingularMatrix when the
// design matrix cannot be inverted.
func (m *Regression) Fit(t *table.Table, outcome string) (err error) {
	defer recipesErrors.Recover(&err, "Regression.Fit")

	start := time.Now()

	if !t.HasColumn(outcome) {
		return recipesErrors.NewSchemaError("Regression.Fit", "",
			[]string{outcome}, "outcome column not present in dataset")
	}

	var features []string
	var categorical []string
	for _, name := range t.ColumnNames() {
		if name == outcome {
			continue
		}
		kind, kerr := t.KindOf(name)
		if kerr != nil {
			return kerr
		}
		if kind != table.Continuous {
			categorical = append(categorical, name)
			continue
		}
		features = append(features, name)
	}
	if len(categorical) > 0 {
		return recipesErrors.NewSchemaError("Regression.Fit", "",
			categorical, "predictor column is categorical; encode it before fitting")
	}
	if len(features) == 0 {
		return recipesErrors.Wrap(recipesErrors.ErrEmptyData, "Regression.Fit: no predictor columns")
	}
	if t.NumRows() == 0 {
		return recipesErrors.Wrap(recipesErrors.ErrEmptyData, "Regression.Fit: no rows")
	}

	X, err := t.Matrix(features)
	if err != nil {
		return err
	}
	y, err := t.Vector(outcome)
	if err != nil {
		return err
	}

	r, c := X.Dims()

	m.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.RowsKey, r,
		log.ColumnsKey, c,
	)

	// Design matrix with an explicit intercept column: [1, X].
	design := mat.NewDense(r, c+1, nil)

	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(rowStart, rowEnd int) {
		for i := rowStart; i < rowEnd; i++ {
			design.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				design.Set(i, j+1, X.At(i, j))
			}
		}
	})

	var designT mat.Dense
	designT.CloneFrom(design.T())

	var gram mat.Dense
	gram.Mul(&designT, design)

	var gramInv mat.Dense
	if err := gramInv.Inverse(&gram); err != nil {
		return recipesErrors.Wrap(recipesErrors.ErrSingularMatrix,
			"Regression.Fit: design matrix is singular")
	}

	var xty mat.VecDense
	xty.MulVec(&designT, y)

	solution := mat.NewVecDense(c+1, nil)
	solution.MulVec(&gramInv, &xty)

	m.Bias = solution.AtVec(0)
	m.Weights = mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		m.Weights.SetVec(j, solution.AtVec(j+1))
	}
	m.Features = features
	m.outcome = outcome

	m.State.SetFitted()
	m.State.SetDimensions(r, c)

	m.logger.Info("Training finished",
		log.OperationKey, log.OperationFit,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return nil
}

// Predict returns predictions for every row of t. The table must contain
// all predictor columns seen at fit time; an outcome column, present or
// not, is ignored.
func (m *Regression) Predict(t *table.Table) (_ *mat.VecDense, err error) {
	defer recipesErrors.Recover(&err, "Regression.Predict")

	if !m.State.IsFitted() {
		return nil, recipesErrors.NewNotFittedError("Regression", "Predict")
	}

	X, err := t.Matrix(m.Features)
	if err != nil {
		return nil, err
	}

	r, _ := X.Dims()
	preds := mat.NewVecDense(r, nil)
	preds.MulVec(X, m.Weights)
	for i := 0; i < r; i++ {
		preds.SetVec(i, preds.AtVec(i)+m.Bias)
	}

	m.logger.Debug("Prediction finished",
		log.OperationKey, log.OperationPredict,
		log.RowsKey, r,
	)

	return preds, nil
}

// Intercept returns the fitted intercept term.
func (m *Regression) Intercept() float64 {
	return m.Bias
}

// Coefficients returns the fitted coefficient for each predictor column.
func (m *Regression) Coefficients() map[string]float64 {
	if !m.State.IsFitted() {
		return nil
	}
	out := make(map[string]float64, len(m.Features))
	for j, name := range m.Features {
		out[name] = m.Weights.AtVec(j)
	}
	return out
}

// Outcome returns the outcome column name seen at fit time.
func (m *Regression) Outcome() string {
	return m.outcome
}
