// Package metrics provides regression evaluation metrics.
//
// Implemented metrics:
//
//   - MSE: Mean Squared Error
//   - RMSE: Root Mean Squared Error (same units as the outcome)
//   - MAE: Mean Absolute Error
//   - R2Score: coefficient of determination
//
// The functions compare a vector of true outcomes against a vector of
// predictions. When predictions were made on a transformed scale (for
// example after a log transform on the outcome), the caller decides
// whether to invert them first, typically through the recipe's
// InverseTransform, before comparing against original-scale outcomes.
// Nothing here inverts automatically.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cdbale/recipes/core/table"
	recipesErrors "github.com/cdbale/recipes/pkg/errors"
)

// MSE calculates the mean squared error between true and predicted values.
//
// Returns a ValueError on empty input and a DimensionError when the two
// vectors differ in length.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, recipesErrors.NewValueError("MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, recipesErrors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}

	return sum / float64(n), nil
}

// RMSE calculates the root mean squared error, the square root of MSE.
// RMSE is in the same units as the outcome, which makes it the natural
// report for model accuracy on the original scale.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE calculates the mean absolute error between true and predicted values.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, recipesErrors.NewValueError("MAE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, recipesErrors.NewDimensionError("MAE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}

	return sum / float64(n), nil
}

// R2Score calculates the coefficient of determination.
//
// R² = 1 - SS_res / SS_tot. A constant yTrue makes the score undefined;
// by convention a perfect prediction of a constant scores 1 and anything
// else scores 0.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, recipesErrors.NewValueError("R2Score", "empty vector")
	}
	if yPred.Len() != n {
		return 0, recipesErrors.NewDimensionError("R2Score", n, yPred.Len(), 0)
	}

	var mean float64
	for i := 0; i < n; i++ {
		mean += yTrue.AtVec(i)
	}
	mean /= float64(n)

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		resid := yTrue.AtVec(i) - yPred.AtVec(i)
		dev := yTrue.AtVec(i) - mean
		ssRes += resid * resid
		ssTot += dev * dev
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1.0, nil
		}
		return 0.0, nil
	}

	return 1 - ssRes/ssTot, nil
}

// RMSEColumns calculates RMSE between two continuous columns of a table,
// typically an actual outcome column and a prediction column appended by
// the caller.
func RMSEColumns(t *table.Table, actual, predicted string) (float64, error) {
	yTrue, err := t.Vector(actual)
	if err != nil {
		return 0, err
	}
	yPred, err := t.Vector(predicted)
	if err != nil {
		return 0, err
	}
	return RMSE(yTrue, yPred)
}
