package table

import (
	"math"
	"math/rand"

	recipesErrors "github.com/cdbale/recipes/pkg/errors"
)

// TrainTestSplit partitions t into a training table and a testing table.
//
// Rows are shuffled with the given seed before splitting, so the same
// (table, testRatio, seed) triple always produces the same partition.
//
// Parameters:
//   - t: the table to split
//   - testRatio: fraction of rows assigned to the test table, in (0, 1)
//   - seed: seed for the shuffle
//
// Returns:
//   - train, test: new tables; t is not modified
//   - error: ValueError if testRatio is outside (0, 1) or t has no rows
func TrainTestSplit(t *Table, testRatio float64, seed int64) (train, test *Table, err error) {
	if t.NumRows() == 0 {
		return nil, nil, recipesErrors.NewValueError("table.TrainTestSplit", "table has no rows")
	}
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, recipesErrors.NewValueError("table.TrainTestSplit",
			"testRatio must be in the open interval (0, 1)")
	}

	n := t.NumRows()
	nTest := int(math.Round(float64(n) * testRatio))
	if nTest == 0 {
		nTest = 1
	}
	if nTest == n {
		nTest = n - 1
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	testRows := perm[:nTest]
	trainRows := perm[nTest:]

	train, err = t.takeRows(trainRows)
	if err != nil {
		return nil, nil, err
	}
	test, err = t.takeRows(testRows)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// takeRows builds a new table from the given row indices, preserving
// column order and kinds.
func (t *Table) takeRows(rows []int) (*Table, error) {
	cols := make([]Column, len(t.columns))
	for j, col := range t.columns {
		out := Column{Name: col.Name, Kind: col.Kind}
		if col.Kind == Continuous {
			out.Floats = make([]float64, len(rows))
			for i, r := range rows {
				out.Floats[i] = col.Floats[r]
			}
		} else {
			out.Strings = make([]string, len(rows))
			for i, r := range rows {
				out.Strings[i] = col.Strings[r]
			}
		}
		cols[j] = out
	}
	return New(cols...)
}
