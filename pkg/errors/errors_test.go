package errors_test

import (
	"strings"
	"testing"

	recipesErrors "github.com/cdbale/recipes/pkg/errors"
)

func TestSchemaError_NamesColumnsAndStep(t *testing.T) {
	err := recipesErrors.NewSchemaError("Recipe.Prep", "dummy_encode",
		[]string{"Category", "Region"}, "column not present in reference dataset")

	msg := err.Error()
	for _, want := range []string{"Recipe.Prep", "dummy_encode", "Category", "Region"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should contain %q", msg, want)
		}
	}

	var schemaErr *recipesErrors.SchemaError
	if !recipesErrors.As(err, &schemaErr) {
		t.Fatal("As should unwrap to *SchemaError through the stack trace wrapper")
	}
	if schemaErr.StepKind != "dummy_encode" {
		t.Errorf("StepKind: expected dummy_encode, got %s", schemaErr.StepKind)
	}
}

func TestStateError(t *testing.T) {
	err := recipesErrors.NewStateError("Recipe", "Bake", "recipe is not prepared")

	var stateErr *recipesErrors.StateError
	if !recipesErrors.As(err, &stateErr) {
		t.Fatal("As should unwrap to *StateError")
	}
	if stateErr.Component != "Recipe" || stateErr.Method != "Bake" {
		t.Errorf("unexpected fields: %+v", stateErr)
	}
}

func TestNotFittedErrorIsStateError(t *testing.T) {
	err := recipesErrors.NewNotFittedError("Regression", "Predict")

	var stateErr *recipesErrors.StateError
	if !recipesErrors.As(err, &stateErr) {
		t.Fatal("NewNotFittedError should produce a StateError")
	}
	if !strings.Contains(err.Error(), "Predict") {
		t.Errorf("message should name the refused method: %q", err.Error())
	}
}

func TestDomainError_NamesColumnRowAndValue(t *testing.T) {
	err := recipesErrors.NewDomainError("log_transform", "Spend", 4, -1,
		"plus offset 1 is not positive; logarithm undefined")

	msg := err.Error()
	for _, want := range []string{"log_transform", "Spend", "row 4", "-1"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should contain %q", msg, want)
		}
	}

	var domainErr *recipesErrors.DomainError
	if !recipesErrors.As(err, &domainErr) {
		t.Fatal("As should unwrap to *DomainError")
	}
	if domainErr.Row != 4 || domainErr.Value != -1 {
		t.Errorf("unexpected fields: %+v", domainErr)
	}
}

func TestDimensionError_AxisNames(t *testing.T) {
	rows := recipesErrors.NewDimensionError("table.New", 3, 2, 0)
	if !strings.Contains(rows.Error(), "rows") {
		t.Errorf("axis 0 should read as rows: %q", rows.Error())
	}

	features := recipesErrors.NewDimensionError("Regression.Predict", 5, 4, 1)
	if !strings.Contains(features.Error(), "features") {
		t.Errorf("axis 1 should read as features: %q", features.Error())
	}
}

func TestWrapPreservesType(t *testing.T) {
	base := recipesErrors.NewDomainError("log_transform", "Spend", 0, -2, "negative")
	wrapped := recipesErrors.Wrapf(base, "applying step %s", "log_transform")

	var domainErr *recipesErrors.DomainError
	if !recipesErrors.As(wrapped, &domainErr) {
		t.Error("wrapping should not hide the underlying DomainError")
	}
}

func TestCommonErrorVariables(t *testing.T) {
	err := recipesErrors.Wrap(recipesErrors.ErrSingularMatrix, "Regression.Fit")
	if !recipesErrors.Is(err, recipesErrors.ErrSingularMatrix) {
		t.Error("Is should match the wrapped sentinel")
	}
}
