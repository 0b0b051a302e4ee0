package table_test

import (
	"testing"

	"github.com/cdbale/recipes/core/table"
)

func sequentialTable(t *testing.T, n int) *table.Table {
	t.Helper()
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)
	}
	tbl, err := table.New(table.NewContinuous("X", values))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tbl
}

func TestTrainTestSplit_Sizes(t *testing.T) {
	tbl := sequentialTable(t, 10)

	train, test, err := table.TrainTestSplit(tbl, 0.3, 42)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	if train.NumRows() != 7 || test.NumRows() != 3 {
		t.Errorf("expected 7/3 split, got %d/%d", train.NumRows(), test.NumRows())
	}
	if tbl.NumRows() != 10 {
		t.Error("input table was modified")
	}

	// Together the partitions cover every row exactly once.
	seen := make(map[float64]bool)
	for _, part := range []*table.Table{train, test} {
		col, err := part.Column("X")
		if err != nil {
			t.Fatalf("Column failed: %v", err)
		}
		for _, v := range col.Floats {
			if seen[v] {
				t.Errorf("row %v appears twice", v)
			}
			seen[v] = true
		}
	}
	if len(seen) != 10 {
		t.Errorf("expected 10 distinct rows across partitions, got %d", len(seen))
	}
}

func TestTrainTestSplit_Deterministic(t *testing.T) {
	tbl := sequentialTable(t, 20)

	train1, test1, err := table.TrainTestSplit(tbl, 0.25, 7)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}
	train2, test2, err := table.TrainTestSplit(tbl, 0.25, 7)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	for _, pair := range []struct{ a, b *table.Table }{{train1, train2}, {test1, test2}} {
		colA, _ := pair.a.Column("X")
		colB, _ := pair.b.Column("X")
		if len(colA.Floats) != len(colB.Floats) {
			t.Fatal("partition sizes differ between runs with the same seed")
		}
		for i := range colA.Floats {
			if colA.Floats[i] != colB.Floats[i] {
				t.Fatalf("row order differs between runs with the same seed")
			}
		}
	}
}

func TestTrainTestSplit_InvalidRatio(t *testing.T) {
	tbl := sequentialTable(t, 5)

	for _, ratio := range []float64{0, 1, -0.1, 1.5} {
		if _, _, err := table.TrainTestSplit(tbl, ratio, 1); err == nil {
			t.Errorf("ratio %v should be rejected", ratio)
		}
	}

	empty, err := table.New(table.NewContinuous("X", nil))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, _, err := table.TrainTestSplit(empty, 0.5, 1); err == nil {
		t.Error("empty table should be rejected")
	}
}

func TestTrainTestSplit_TinyTableKeepsBothSides(t *testing.T) {
	tbl := sequentialTable(t, 2)

	train, test, err := table.TrainTestSplit(tbl, 0.5, 3)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}
	if train.NumRows() == 0 || test.NumRows() == 0 {
		t.Errorf("both partitions must be non-empty, got %d/%d", train.NumRows(), test.NumRows())
	}
}
