// Package recipe implements a declarative preprocessing pipeline for
// tabular modeling data.
//
// A Recipe binds one outcome column and a set of predictor columns to an
// ordered list of transformation steps. It moves through a strict
// lifecycle:
//
//  1. Unprepared: the declaration plus steps with configuration only.
//  2. Prepared: every step fitted, in declaration order, against a single
//     reference dataset; learned parameters frozen.
//  3. Applied, repeatably: Bake transforms any schema-compatible dataset
//     with the frozen parameters, never refitting.
//
// The separation exists to prevent data leakage: parameters learned from
// the training data (for example the level set of a categorical column)
// are replayed identically on testing and future data, no matter what
// those datasets contain.
//
// Example usage:
//
//	r, err := recipe.Formula("Sales ~ Spend + Category")
//	r, err = r.AddStep(recipe.LogTransform(1, recipe.AllContinuous()))
//	r, err = r.AddStep(recipe.DummyEncode(recipe.AllCategorical()))
//	prepped, err := r.Prep(train)
//	bakedTrain, err := prepped.Bake(train)
//	bakedTest, err := prepped.Bake(test)
//
// A prepared recipe never mutates itself or its inputs, so it is safe to
// Bake concurrently from multiple goroutines.
package recipe

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/cdbale/recipes/core/model"
	"github.com/cdbale/recipes/core/table"
	recipesErrors "github.com/cdbale/recipes/pkg/errors"
	"github.com/cdbale/recipes/pkg/log"
)

// Recipe is an ordered preprocessing pipeline bound to an outcome and
// predictor declaration. Composition methods return new values; a Recipe
// already handed out is never changed underneath its holder.
type Recipe struct {
	outcome    string
	predictors []string

	steps    []Step
	prepared []PreparedStep

	state  *model.StateManager
	logger log.Logger
}

// Declare creates an unprepared recipe with an empty step list.
//
// Exactly one outcome column and at least one predictor column are
// required, and all names must be distinct. Whether the columns exist is
// checked later, at preparation time, against the reference dataset.
//
// Returns a SchemaError when the outcome is also listed as a predictor or
// a predictor is listed twice, and a ValueError on empty names.
func Declare(outcome string, predictors ...string) (*Recipe, error) {
	if outcome == "" {
		return nil, recipesErrors.NewValueError("recipe.Declare", "outcome column name is empty")
	}
	if len(predictors) == 0 {
		return nil, recipesErrors.NewValueError("recipe.Declare", "at least one predictor is required")
	}

	seen := map[string]bool{outcome: true}
	for _, p := range predictors {
		if p == "" {
			return nil, recipesErrors.NewValueError("recipe.Declare", "predictor column name is empty")
		}
		if p == outcome {
			return nil, recipesErrors.NewSchemaError("recipe.Declare", "",
				[]string{p}, "column is declared as both outcome and predictor")
		}
		if seen[p] {
			return nil, recipesErrors.NewSchemaError("recipe.Declare", "",
				[]string{p}, "predictor declared twice")
		}
		seen[p] = true
	}

	return &Recipe{
		outcome:    outcome,
		predictors: append([]string(nil), predictors...),
		state:      model.NewStateManager(),
		logger: log.GetLoggerWithName("recipe").With(
			log.ComponentKey, "recipe",
			log.OutcomeKey, outcome,
		),
	}, nil
}

// Outcome returns the declared outcome column name.
func (r *Recipe) Outcome() string {
	return r.outcome
}

// Predictors returns the declared predictor column names.
func (r *Recipe) Predictors() []string {
	out := make([]string, len(r.predictors))
	copy(out, r.predictors)
	return out
}

// IsPrepared reports whether the recipe has been prepared.
func (r *Recipe) IsPrepared() bool {
	return r.state.IsFitted()
}

// Steps returns the declared steps in order.
func (r *Recipe) Steps() []Step {
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// PreparedSteps returns the prepared steps in order, or nil when the
// recipe is unprepared.
func (r *Recipe) PreparedSteps() []PreparedStep {
	out := make([]PreparedStep, len(r.prepared))
	copy(out, r.prepared)
	return out
}

// AddStep appends a step to the recipe's ordered list, returning a new
// recipe. The receiver is unchanged, so earlier snapshots stay valid.
//
// Returns a StateError when called on a prepared recipe: the step list is
// fixed before preparation so learned parameters can never be silently
// invalidated by late composition.
func (r *Recipe) AddStep(step Step) (*Recipe, error) {
	if r.state.IsFitted() {
		return nil, recipesErrors.NewStateError("Recipe", "AddStep",
			"recipe is already prepared; steps must be added before Prep")
	}
	if step == nil {
		return nil, recipesErrors.NewValueError("Recipe.AddStep", "step is nil")
	}

	next := r.shallowCopy()
	next.steps = append(next.steps, step)
	return next, nil
}

// Clone returns a fresh unprepared recipe with the same declaration and
// step list. This is the sanctioned path to re-preparation: a prepared
// recipe cannot be prepared again, but its clone can.
func (r *Recipe) Clone() *Recipe {
	clone := r.shallowCopy()
	clone.prepared = nil
	clone.state = model.NewStateManager()
	return clone
}

// shallowCopy duplicates the recipe with a fresh state manager and copied
// slices. Step values themselves are immutable and safely shared.
func (r *Recipe) shallowCopy() *Recipe {
	next := &Recipe{
		outcome:    r.outcome,
		predictors: append([]string(nil), r.predictors...),
		steps:      append([]Step(nil), r.steps...),
		prepared:   append([]PreparedStep(nil), r.prepared...),
		state:      model.NewStateManager(),
		logger:     r.logger,
	}
	if r.state.IsFitted() {
		next.state.SetFitted()
	}
	return next
}

// declared returns the outcome followed by the predictors.
func (r *Recipe) declared() []string {
	return append([]string{r.outcome}, r.predictors...)
}

// Prep fits every step, in declaration order, against the reference
// dataset, and returns a new prepared recipe. The receiver stays
// unprepared and reusable.
//
// Each step is fitted against the dataset as transformed by the steps
// before it, and class selectors are resolved at that same point, then
// frozen as explicit column names. All learned parameters derive from
// ref alone; datasets baked later contribute nothing to them.
//
// Returns a SchemaError when a declared column is absent from ref, and a
// StateError when the recipe is already prepared (preparation is
// one-shot; use Clone for a fresh unprepared copy).
func (r *Recipe) Prep(ref *table.Table) (_ *Recipe, err error) {
	defer recipesErrors.Recover(&err, "Recipe.Prep")

	if r.state.IsFitted() {
		return nil, recipesErrors.NewStateError("Recipe", "Prep",
			"recipe is already prepared; preparation is one-shot, Clone() for a fresh copy")
	}

	start := time.Now()

	var missing []string
	for _, name := range r.declared() {
		if !ref.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, recipesErrors.NewSchemaError("Recipe.Prep", "",
			missing, "declared column not present in reference dataset")
	}

	prepared := make([]PreparedStep, 0, len(r.steps))
	current := ref.Clone()

	for _, step := range r.steps {
		columns, err := step.Selector().resolve(step.Kind(), r.declared(), current)
		if err != nil {
			return nil, err
		}

		fitted, err := step.Fit(columns, current)
		if err != nil {
			return nil, recipesErrors.Wrapf(err, "fitting step %s", step.Kind())
		}
		prepared = append(prepared, fitted)

		current, err = fitted.Apply(current)
		if err != nil {
			return nil, recipesErrors.Wrapf(err, "applying step %s during preparation", step.Kind())
		}
	}

	next := r.shallowCopy()
	next.prepared = prepared
	next.state = model.NewStateManager()
	next.state.SetFitted()
	next.state.SetDimensions(ref.NumRows(), ref.NumCols())

	r.logger.Info("Preparation finished",
		log.OperationKey, log.OperationPrep,
		log.StepsKey, len(prepared),
		log.RowsKey, ref.NumRows(),
		log.ColumnsKey, ref.NumCols(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return next, nil
}

// Bake applies the frozen transformations, in declaration order, to a
// dataset and returns the transformed dataset. The input is not mutated,
// and baking the preparation reference dataset or a disjoint dataset with
// the same schema goes through identical parameters.
//
// Every predictor column a step references must be present; the outcome
// column is optional, since prediction-time data typically omits it.
// Untouched columns keep their position in the output and expanded
// columns appear where the original column was.
//
// Returns a StateError on an unprepared recipe and a SchemaError when a
// required column is missing. If any step fails, Bake returns no output.
func (r *Recipe) Bake(t *table.Table) (_ *table.Table, err error) {
	defer recipesErrors.Recover(&err, "Recipe.Bake")

	if !r.state.IsFitted() {
		return nil, recipesErrors.NewStateError("Recipe", "Bake",
			"recipe is not prepared; call Prep with a reference dataset first")
	}

	for _, step := range r.prepared {
		var missing []string
		for _, name := range step.Columns() {
			if name == r.outcome {
				continue // outcome is optional at application time
			}
			if !t.HasColumn(name) {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return nil, recipesErrors.NewSchemaError("Recipe.Bake", step.Kind(),
				missing, "required column not present in dataset")
		}
	}

	current := t.Clone()
	for _, step := range r.prepared {
		current, err = step.Apply(current)
		if err != nil {
			return nil, recipesErrors.Wrapf(err, "applying step %s", step.Kind())
		}
	}

	r.logger.Debug("Bake finished",
		log.OperationKey, log.OperationBake,
		log.StepsKey, len(r.prepared),
		log.RowsKey, t.NumRows(),
	)

	return current, nil
}

// InverseTransform maps values of a transformed column back to the
// original scale by undoing, in reverse declaration order, every prepared
// step that transformed the column and declares an inverse.
//
// This is how predictions on a transformed outcome are compared against
// original-scale data: the caller inverts explicitly rather than matching
// forward transforms to inverses by hand.
//
// Returns a StateError when the recipe is unprepared or when a step that
// transformed the column has no inverse (dummy encoding, for example).
// A column no step transformed is returned unchanged.
func (r *Recipe) InverseTransform(column string, values *mat.VecDense) (*mat.VecDense, error) {
	if !r.state.IsFitted() {
		return nil, recipesErrors.NewStateError("Recipe", "InverseTransform",
			"recipe is not prepared")
	}

	out := mat.NewVecDense(values.Len(), nil)
	out.CopyVec(values)

	for i := len(r.prepared) - 1; i >= 0; i-- {
		step := r.prepared[i]
		if !containsColumn(step.Columns(), column) {
			continue
		}
		inv, ok := step.(Invertible)
		if !ok {
			return nil, recipesErrors.NewStateError("Recipe", "InverseTransform",
				"step "+step.Kind()+" transformed column \""+column+"\" but declares no inverse")
		}
		for j := 0; j < out.Len(); j++ {
			out.SetVec(j, inv.Invert(column, out.AtVec(j)))
		}
	}

	return out, nil
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
