package recipe

import (
	"math"

	"github.com/cdbale/recipes/core/table"
	recipesErrors "github.com/cdbale/recipes/pkg/errors"
)

// KindStandardize is the kind name of the standardize step.
const KindStandardize = "standardize"

// standardizeStep replaces each selected continuous value v with
// (v - mean) / std, with per-column statistics learned at preparation.
type standardizeStep struct {
	selector Selector
}

// Standardize creates a step that centers the selected continuous columns
// at zero and scales them to unit variance. The per-column mean and
// standard deviation are computed once from the preparation data and
// reused verbatim on every subsequent dataset.
func Standardize(selector Selector) Step {
	return &standardizeStep{selector: selector}
}

func (s *standardizeStep) Kind() string       { return KindStandardize }
func (s *standardizeStep) Selector() Selector { return s.selector }

// Fit computes each selected column's mean and standard deviation.
func (s *standardizeStep) Fit(columns []string, ref *table.Table) (PreparedStep, error) {
	means := make(map[string]float64, len(columns))
	stds := make(map[string]float64, len(columns))

	for _, name := range columns {
		kind, err := ref.KindOf(name)
		if err != nil {
			return nil, err
		}
		if kind != table.Continuous {
			return nil, recipesErrors.NewSchemaError("Recipe.Prep", KindStandardize,
				[]string{name}, "column is categorical, standardize requires continuous")
		}

		col, err := ref.Column(name)
		if err != nil {
			return nil, err
		}
		n := float64(len(col.Floats))
		if n == 0 {
			return nil, recipesErrors.Wrap(recipesErrors.ErrEmptyData,
				"standardize: column "+name+" has no rows")
		}

		var sum float64
		for _, v := range col.Floats {
			sum += v
		}
		mean := sum / n

		var sumSquares float64
		for _, v := range col.Floats {
			diff := v - mean
			sumSquares += diff * diff
		}
		std := math.Sqrt(sumSquares / n)
		// A constant column gets unit scale to avoid division by zero.
		if math.Abs(std) < 1e-8 {
			std = 1.0
		}

		means[name] = mean
		stds[name] = std
	}

	frozen := make([]string, len(columns))
	copy(frozen, columns)
	return &preparedStandardize{columns: frozen, means: means, stds: stds}, nil
}

// preparedStandardize is the frozen form of the standardize step.
type preparedStandardize struct {
	columns []string
	means   map[string]float64
	stds    map[string]float64
}

func (p *preparedStandardize) Kind() string { return KindStandardize }

func (p *preparedStandardize) Columns() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}

// Mean returns the frozen mean of a column.
func (p *preparedStandardize) Mean(column string) float64 { return p.means[column] }

// Std returns the frozen standard deviation of a column.
func (p *preparedStandardize) Std(column string) float64 { return p.stds[column] }

// Apply replaces each value v of the frozen columns with (v - mean) / std.
func (p *preparedStandardize) Apply(t *table.Table) (*table.Table, error) {
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
		mean := p.means[col.Name]
		std := p.stds[col.Name]
		out := make([]float64, len(col.Floats))
		for r, v := range col.Floats {
			out[r] = (v - mean) / std
		}
		cols[i] = table.NewContinuous(col.Name, out)
	}

	return table.New(cols...)
}

// Invert maps a standardized value back to the original scale:
// value*std + mean, with the named column's frozen statistics.
func (p *preparedStandardize) Invert(column string, value float64) float64 {
	return value*p.stds[column] + p.means[column]
}
