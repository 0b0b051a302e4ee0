package recipe

import (
	"strings"

	recipesErrors "github.com/cdbale/recipes/pkg/errors"
)

// Formula declares a recipe from an R-style model formula, e.g.
//
//	r, err := recipe.Formula("Sales ~ Spend + Category")
//
// The left-hand side names the outcome column, the right-hand side the
// predictor columns joined by "+". Whitespace around names is ignored.
// This is sugar over Declare; the same validation applies.
func Formula(formula string) (*Recipe, error) {
	parts := strings.Split(formula, "~")
	if len(parts) != 2 {
		return nil, recipesErrors.NewValueError("recipe.Formula",
			"formula must have the form \"outcome ~ predictor_1 + predictor_2 + ...\"")
	}

	outcome := strings.TrimSpace(parts[0])

	var predictors []string
	for _, raw := range strings.Split(parts[1], "+") {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, recipesErrors.NewValueError("recipe.Formula",
				"empty predictor name in formula")
		}
		predictors = append(predictors, name)
	}

	return Declare(outcome, predictors...)
}
