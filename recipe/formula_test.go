package recipe_test

import (
	"testing"

	recipesErrors "github.com/cdbale/recipes/pkg/errors"
	"github.com/cdbale/recipes/recipe"
)

func TestFormula(t *testing.T) {
	tests := []struct {
		name       string
		formula    string
		outcome    string
		predictors []string
		wantErr    bool
	}{
		{
			name:       "two predictors",
			formula:    "Sales ~ Spend + Category",
			outcome:    "Sales",
			predictors: []string{"Spend", "Category"},
		},
		{
			name:       "single predictor",
			formula:    "y ~ x",
			outcome:    "y",
			predictors: []string{"x"},
		},
		{
			name:       "whitespace tolerant",
			formula:    "  Sales~Spend+  Category ",
			outcome:    "Sales",
			predictors: []string{"Spend", "Category"},
		},
		{name: "missing tilde", formula: "Sales Spend", wantErr: true},
		{name: "two tildes", formula: "a ~ b ~ c", wantErr: true},
		{name: "empty outcome", formula: "~ Spend", wantErr: true},
		{name: "empty predictor term", formula: "Sales ~ Spend + ", wantErr: true},
		{name: "no predictors", formula: "Sales ~", wantErr: true},
		{name: "empty string", formula: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := recipe.Formula(tt.formula)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Formula(%q) succeeded, want error", tt.formula)
				}
				return
			}
			if err != nil {
				t.Fatalf("Formula(%q) failed: %v", tt.formula, err)
			}
			if r.Outcome() != tt.outcome {
				t.Errorf("outcome = %q, want %q", r.Outcome(), tt.outcome)
			}
			got := r.Predictors()
			if len(got) != len(tt.predictors) {
				t.Fatalf("predictors = %v, want %v", got, tt.predictors)
			}
			for i := range got {
				if got[i] != tt.predictors[i] {
					t.Errorf("predictor[%d] = %q, want %q", i, got[i], tt.predictors[i])
				}
			}
		})
	}
}

func TestFormula_MalformedReturnsValueError(t *testing.T) {
	_, err := recipe.Formula("no tilde here")
	var valueErr *recipesErrors.ValueError
	if !recipesErrors.As(err, &valueErr) {
		t.Fatalf("expected ValueError, got %v", err)
	}
}
