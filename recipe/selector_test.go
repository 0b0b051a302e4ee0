package recipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdbale/recipes/core/table"
	recipesErrors "github.com/cdbale/recipes/pkg/errors"
	"github.com/cdbale/recipes/recipe"
)

func TestAllPredictors_ExcludesOutcome(t *testing.T) {
	r, err := recipe.Declare("Sales", "TVSpend", "WebSpend")
	require.NoError(t, err)
	r, err = r.AddStep(recipe.Standardize(recipe.AllPredictors()))
	require.NoError(t, err)

	train, err := table.New(
		table.NewContinuous("Sales", []float64{100, 200, 300}),
		table.NewContinuous("TVSpend", []float64{0, 10, 20}),
		table.NewContinuous("WebSpend", []float64{0, 4, 8}),
	)
	require.NoError(t, err)

	prepped, err := r.Prep(train)
	require.NoError(t, err)
	baked, err := prepped.Bake(train)
	require.NoError(t, err)

	// Both predictors are standardized; the outcome passes through.
	sales, err := baked.Column("Sales")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200, 300}, sales.Floats)

	for _, name := range []string{"TVSpend", "WebSpend"} {
		col, err := baked.Column(name)
		require.NoError(t, err)
		var sum float64
		for _, v := range col.Floats {
			sum += v
		}
		assert.InDelta(t, 0, sum, 1e-12, "%s should be centered", name)
	}

	require.Len(t, prepped.PreparedSteps(), 1)
	assert.Equal(t, []string{"TVSpend", "WebSpend"}, prepped.PreparedSteps()[0].Columns())
}

func TestAllPredictors_ConsumedPredictorFailsAtPrep(t *testing.T) {
	// Dummy encoding replaces Category with indicator columns, so a later
	// all-predictors step can no longer find the declared predictor.
	r, err := recipe.Declare("Sales", "Spend", "Category")
	require.NoError(t, err)
	r, err = r.AddStep(recipe.DummyEncode(recipe.Columns("Category")))
	require.NoError(t, err)
	r, err = r.AddStep(recipe.Standardize(recipe.AllPredictors()))
	require.NoError(t, err)

	train, err := table.New(
		table.NewContinuous("Sales", []float64{100, 200}),
		table.NewContinuous("Spend", []float64{10, 20}),
		table.NewCategorical("Category", []string{"A", "B"}),
	)
	require.NoError(t, err)

	_, err = r.Prep(train)
	var schemaErr *recipesErrors.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Columns, "Category")
}
