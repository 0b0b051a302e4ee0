package recipe

import (
	"fmt"
	"sort"

	"github.com/cdbale/recipes/core/table"
	recipesErrors "github.com/cdbale/recipes/pkg/errors"
	"github.com/cdbale/recipes/pkg/log"
)

// KindDummyEncode is the kind name of the dummy encoding step.
const KindDummyEncode = "dummy_encode"

// dummyEncodeStep replaces selected categorical columns with binary
// indicator columns for every non-baseline level.
type dummyEncodeStep struct {
	selector Selector
}

// DummyEncode creates a step that dummy-codes the selected categorical
// columns.
//
// Preparation learns the distinct levels observed in each selected column
// of the reference dataset, ordered lexicographically. The first level in
// that ordering is the baseline: it is represented by all indicators being
// zero and gets no column of its own. Application replaces each encoded
// column, in its original position, with one 0/1 column per non-baseline
// level, named "<column>_<level>".
//
// A level observed at application time but absent from the learned level
// set produces all-zero indicators and a warning log; the output column
// set never changes after preparation.
func DummyEncode(selector Selector) Step {
	return &dummyEncodeStep{selector: selector}
}

func (s *dummyEncodeStep) Kind() string       { return KindDummyEncode }
func (s *dummyEncodeStep) Selector() Selector { return s.selector }

// Fit learns the sorted level set of each selected column.
func (s *dummyEncodeStep) Fit(columns []string, ref *table.Table) (PreparedStep, error) {
	levels := make(map[string][]string, len(columns))

	for _, name := range columns {
		col, err := ref.Column(name)
		if err != nil {
			return nil, err
		}
		if col.Kind != table.Categorical {
			return nil, recipesErrors.NewSchemaError("Recipe.Prep", KindDummyEncode,
				[]string{name}, "column is continuous, dummy encoding requires categorical")
		}

		seen := make(map[string]bool)
		for _, level := range col.Strings {
			seen[level] = true
		}
		if len(seen) < 2 {
			return nil, recipesErrors.NewSchemaError("Recipe.Prep", KindDummyEncode,
				[]string{name}, "column has fewer than two observed levels")
		}

		distinct := make([]string, 0, len(seen))
		for level := range seen {
			distinct = append(distinct, level)
		}
		sort.Strings(distinct)
		levels[name] = distinct
	}

	frozen := make([]string, len(columns))
	copy(frozen, columns)
	return &preparedDummyEncode{
		columns: frozen,
		levels:  levels,
		logger:  log.GetLoggerWithName("recipe").With(log.StepKindKey, KindDummyEncode),
	}, nil
}

// preparedDummyEncode is the frozen form of the dummy encoding step.
// levels maps each encoded column to its sorted level set; index 0 is the
// baseline.
type preparedDummyEncode struct {
	columns []string
	levels  map[string][]string
	logger  log.Logger
}

func (p *preparedDummyEncode) Kind() string { return KindDummyEncode }

func (p *preparedDummyEncode) Columns() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}

// Levels returns the learned level set of an encoded column, baseline
// first. The second return value is false when the column was not encoded
// by this step.
func (p *preparedDummyEncode) Levels(column string) ([]string, bool) {
	levels, ok := p.levels[column]
	if !ok {
		return nil, false
	}
	out := make([]string, len(levels))
	copy(out, levels)
	return out, true
}

// Apply replaces each frozen categorical column with its indicator
// columns, keeping the original column's position.
func (p *preparedDummyEncode) Apply(t *table.Table) (*table.Table, error) {
	encoded := make(map[string]bool, len(p.columns))
	for _, name := range p.columns {
		if t.HasColumn(name) {
			encoded[name] = true
		}
	}

	var cols []table.Column
	for _, col := range t.Columns() {
		if !encoded[col.Name] {
			cols = append(cols, col)
			continue
		}
		if col.Kind != table.Categorical {
			return nil, recipesErrors.NewSchemaError("Recipe.Bake", KindDummyEncode,
				[]string{col.Name}, "column is continuous, expected the categorical column seen at preparation")
		}

		levels := p.levels[col.Name]
		index := make(map[string]int, len(levels))
		for i, level := range levels {
			index[level] = i
		}

		// One indicator per non-baseline level, all zero by default.
		indicators := make([][]float64, len(levels)-1)
		for i := range indicators {
			indicators[i] = make([]float64, len(col.Strings))
		}

		unseen := 0
		for r, level := range col.Strings {
			idx, known := index[level]
			if !known {
				// Unseen level: all indicators stay zero. Logged so that
				// data drift is visible to the caller.
				unseen++
				p.logger.Warn("level not seen at preparation, encoding as all-zero indicators",
					log.ColumnKey, col.Name,
					log.LevelKey, level,
				)
				continue
			}
			if idx > 0 {
				indicators[idx-1][r] = 1.0
			}
		}
		if unseen > 0 {
			p.logger.Warn("column contained levels unseen at preparation",
				log.ColumnKey, col.Name,
				log.RowsKey, unseen,
			)
		}

		for i, level := range levels[1:] {
			cols = append(cols, table.NewContinuous(
				fmt.Sprintf("%s_%s", col.Name, level), indicators[i]))
		}
	}

	return table.New(cols...)
}
