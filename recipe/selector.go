package recipe

import (
	"fmt"

	"github.com/cdbale/recipes/core/table"
	recipesErrors "github.com/cdbale/recipes/pkg/errors"
)

type selectorKind int

const (
	selectExplicit selectorKind = iota
	selectContinuous
	selectCategorical
	selectPredictors
)

// Selector chooses which of a recipe's declared columns a step operates
// on. Class selectors ("all continuous", "all categorical") are resolved
// lazily during preparation, against the reference dataset's schema as it
// stands when the step is fitted, and are then frozen as explicit column
// names for every later application.
type Selector struct {
	kind  selectorKind
	names []string
}

// Columns selects the named columns explicitly.
func Columns(names ...string) Selector {
	return Selector{kind: selectExplicit, names: names}
}

// AllContinuous selects every declared column whose kind is continuous,
// including the outcome.
func AllContinuous() Selector {
	return Selector{kind: selectContinuous}
}

// AllCategorical selects every declared column whose kind is categorical.
func AllCategorical() Selector {
	return Selector{kind: selectCategorical}
}

// AllPredictors selects every declared predictor column, regardless of kind.
func AllPredictors() Selector {
	return Selector{kind: selectPredictors}
}

// String describes the selector for error messages and logs.
func (s Selector) String() string {
	switch s.kind {
	case selectExplicit:
		return fmt.Sprintf("columns(%v)", s.names)
	case selectContinuous:
		return "all_continuous"
	case selectCategorical:
		return "all_categorical"
	case selectPredictors:
		return "all_predictors"
	default:
		return "unknown"
	}
}

// resolve evaluates the selector against a dataset schema, restricted to
// the recipe's declared columns. The result preserves table column order.
func (s Selector) resolve(stepKind string, declared []string, t *table.Table) ([]string, error) {
	declaredSet := make(map[string]bool, len(declared))
	for _, name := range declared {
		declaredSet[name] = true
	}

	switch s.kind {
	case selectExplicit:
		var missing []string
		for _, name := range s.names {
			if !declaredSet[name] {
				return nil, recipesErrors.NewSchemaError("Recipe.Prep", stepKind,
					[]string{name}, "column is not declared in the recipe formula")
			}
			if !t.HasColumn(name) {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return nil, recipesErrors.NewSchemaError("Recipe.Prep", stepKind,
				missing, "column not present in reference dataset")
		}
		// Preserve the caller's explicit order.
		out := make([]string, len(s.names))
		copy(out, s.names)
		return out, nil

	case selectContinuous, selectCategorical:
		want := table.Continuous
		if s.kind == selectCategorical {
			want = table.Categorical
		}
		var out []string
		for _, name := range t.ColumnNames() {
			if !declaredSet[name] {
				continue
			}
			kind, err := t.KindOf(name)
			if err != nil {
				return nil, err
			}
			if kind == want {
				out = append(out, name)
			}
		}
		return out, nil

	case selectPredictors:
		// Declared order is formula order minus the outcome, which sits
		// at the head of the declared slice.
		var out []string
		for _, name := range declared[1:] {
			if !t.HasColumn(name) {
				return nil, recipesErrors.NewSchemaError("Recipe.Prep", stepKind,
					[]string{name}, "column not present in reference dataset")
			}
			out = append(out, name)
		}
		return out, nil

	default:
		return nil, recipesErrors.NewValueError("Recipe.Prep", "unknown selector kind")
	}
}
