package recipe

import (
	"fmt"
	"math"

	"github.com/cdbale/recipes/core/table"
	recipesErrors "github.com/cdbale/recipes/pkg/errors"
)

// KindLogTransform is the kind name of the log transform step.
const KindLogTransform = "log_transform"

// logTransformStep replaces each selected continuous value v with
// ln(v + offset).
type logTransformStep struct {
	offset   float64
	selector Selector
}

// LogTransform creates a step that replaces each value v of the selected
// continuous columns with ln(v + offset). A non-zero offset, typically 1,
// keeps zero-valued observations in the transform's domain.
//
// The step has no learned parameters, but preparation still validates
// that the selected columns are continuous. Application fails with a
// DomainError when v + offset <= 0 for any row, naming the column and row;
// a non-numeric stand-in is never produced silently.
func LogTransform(offset float64, selector Selector) Step {
	return &logTransformStep{offset: offset, selector: selector}
}

func (s *logTransformStep) Kind() string       { return KindLogTransform }
func (s *logTransformStep) Selector() Selector { return s.selector }

// Fit validates the selected columns and freezes the selection.
func (s *logTransformStep) Fit(columns []string, ref *table.Table) (PreparedStep, error) {
	for _, name := range columns {
		kind, err := ref.KindOf(name)
		if err != nil {
			return nil, err
		}
		if kind != table.Continuous {
			return nil, recipesErrors.NewSchemaError("Recipe.Prep", KindLogTransform,
				[]string{name}, "column is categorical, log transform requires continuous")
		}
	}

	frozen := make([]string, len(columns))
	copy(frozen, columns)
	return &preparedLogTransform{offset: s.offset, columns: frozen}, nil
}

// preparedLogTransform is the frozen form of the log transform step.
type preparedLogTransform struct {
	offset  float64
	columns []string
}

func (p *preparedLogTransform) Kind() string { return KindLogTransform }

func (p *preparedLogTransform) Columns() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}

// Apply replaces each value v of the frozen columns with ln(v + offset).
func (p *preparedLogTransform) Apply(t *table.Table) (*table.Table, error) {
	selected := make(map[string]bool, len(p.columns))
	for _, name := range p.columns {
		if t.HasColumn(name) {
			selected[name] = true
		}
	}

	cols := t.Columns()
	for i, col := range cols {
		if !selected[col.Name] {
			continue
		}
		out := make([]float64, len(col.Floats))
		for r, v := range col.Floats {
			shifted := v + p.offset
			if shifted <= 0 {
				return nil, recipesErrors.NewDomainError(KindLogTransform, col.Name, r, v,
					fmt.Sprintf("plus offset %g is not positive; logarithm undefined", p.offset))
			}
			out[r] = math.Log(shifted)
		}
		cols[i] = table.NewContinuous(col.Name, out)
	}

	return table.New(cols...)
}

// Invert maps a transformed value back to the original scale:
// exp(value) - offset. The offset is the same for every column.
func (p *preparedLogTransform) Invert(_ string, value float64) float64 {
	return math.Exp(value) - p.offset
}
