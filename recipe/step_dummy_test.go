package recipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdbale/recipes/core/table"
	recipesErrors "github.com/cdbale/recipes/pkg/errors"
	"github.com/cdbale/recipes/recipe"
)

func dummyRecipe(t *testing.T) *recipe.Recipe {
	t.Helper()
	r, err := recipe.Declare("Sales", "Category")
	require.NoError(t, err)
	r, err = r.AddStep(recipe.DummyEncode(recipe.Columns("Category")))
	require.NoError(t, err)
	return r
}

func categoryTable(t *testing.T, levels []string) *table.Table {
	t.Helper()
	sales := make([]float64, len(levels))
	tbl, err := table.New(
		table.NewContinuous("Sales", sales),
		table.NewCategorical("Category", levels),
	)
	require.NoError(t, err)
	return tbl
}

func TestDummyEncode_BaselineIsLexicographicFirst(t *testing.T) {
	// Observation order must not matter: Z seen first, A last.
	prepped, err := dummyRecipe(t).Prep(categoryTable(t, []string{"Z", "M", "A"}))
	require.NoError(t, err)

	baked, err := prepped.Bake(categoryTable(t, []string{"A", "M", "Z"}))
	require.NoError(t, err)

	// A is the baseline, so only M and Z get indicator columns.
	assert.Equal(t, []string{"Sales", "Category_M", "Category_Z"}, baked.ColumnNames())

	catM, err := baked.Column("Category_M")
	require.NoError(t, err)
	catZ, err := baked.Column("Category_Z")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, catM.Floats)
	assert.Equal(t, []float64{0, 0, 1}, catZ.Floats)
}

func TestDummyEncode_BaselineRowIsAllZeros(t *testing.T) {
	prepped, err := dummyRecipe(t).Prep(categoryTable(t, []string{"A", "B", "C"}))
	require.NoError(t, err)

	baked, err := prepped.Bake(categoryTable(t, []string{"A"}))
	require.NoError(t, err)

	catB, err := baked.Column("Category_B")
	require.NoError(t, err)
	catC, err := baked.Column("Category_C")
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, catB.Floats)
	assert.Equal(t, []float64{0}, catC.Floats)
}

func TestDummyEncode_SingleLevelFailsAtPrep(t *testing.T) {
	_, err := dummyRecipe(t).Prep(categoryTable(t, []string{"A", "A", "A"}))
	var schemaErr *recipesErrors.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Columns, "Category")
}

func TestDummyEncode_RejectsContinuousColumn(t *testing.T) {
	r, err := recipe.Declare("Sales", "Spend")
	require.NoError(t, err)
	r, err = r.AddStep(recipe.DummyEncode(recipe.Columns("Spend")))
	require.NoError(t, err)

	tbl, err := table.New(
		table.NewContinuous("Sales", []float64{1, 2}),
		table.NewContinuous("Spend", []float64{3, 4}),
	)
	require.NoError(t, err)

	_, err = r.Prep(tbl)
	var schemaErr *recipesErrors.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestDummyEncode_IndicatorsReplaceColumnInPlace(t *testing.T) {
	r, err := recipe.Declare("Sales", "Region", "Spend")
	require.NoError(t, err)
	r, err = r.AddStep(recipe.DummyEncode(recipe.Columns("Region")))
	require.NoError(t, err)

	tbl, err := table.New(
		table.NewContinuous("Sales", []float64{1, 2}),
		table.NewCategorical("Region", []string{"East", "West"}),
		table.NewContinuous("Spend", []float64{3, 4}),
	)
	require.NoError(t, err)

	prepped, err := r.Prep(tbl)
	require.NoError(t, err)
	baked, err := prepped.Bake(tbl)
	require.NoError(t, err)

	// Region sat between Sales and Spend; its indicators take that slot.
	assert.Equal(t, []string{"Sales", "Region_West", "Spend"}, baked.ColumnNames())
}

func TestDummyEncode_SelectorByClass(t *testing.T) {
	r, err := recipe.Declare("Sales", "Region", "Channel", "Spend")
	require.NoError(t, err)
	r, err = r.AddStep(recipe.DummyEncode(recipe.AllCategorical()))
	require.NoError(t, err)

	tbl, err := table.New(
		table.NewContinuous("Sales", []float64{1, 2}),
		table.NewCategorical("Region", []string{"East", "West"}),
		table.NewCategorical("Channel", []string{"TV", "Web"}),
		table.NewContinuous("Spend", []float64{3, 4}),
	)
	require.NoError(t, err)

	prepped, err := r.Prep(tbl)
	require.NoError(t, err)
	baked, err := prepped.Bake(tbl)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"Sales", "Region_West", "Channel_Web", "Spend"},
		baked.ColumnNames())
}

func TestDummyEncode_ExplicitSelectorMustBeDeclared(t *testing.T) {
	r, err := recipe.Declare("Sales", "Spend")
	require.NoError(t, err)
	r, err = r.AddStep(recipe.DummyEncode(recipe.Columns("Region")))
	require.NoError(t, err)

	tbl, err := table.New(
		table.NewContinuous("Sales", []float64{1}),
		table.NewContinuous("Spend", []float64{2}),
		table.NewCategorical("Region", []string{"East"}),
	)
	require.NoError(t, err)

	// Region exists in the data but was never declared in the recipe.
	_, err = r.Prep(tbl)
	var schemaErr *recipesErrors.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Columns, "Region")
}
