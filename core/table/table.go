// Package table provides the column-oriented dataset abstraction consumed
// by recipes and models.
//
// A Table is an ordered set of named columns of equal length. Every column
// declares a kind: continuous (float64 values) or categorical (string
// levels). Tables are value-like: operations that change a table return a
// new one, and a table handed to a recipe or model is never retained or
// mutated by it.
//
// Example usage:
//
//	t, err := table.New(
//	    table.NewContinuous("Spend", []float64{100, 200, 300}),
//	    table.NewCategorical("Category", []string{"A", "B", "A"}),
//	)
package table

import (
	"gonum.org/v1/gonum/mat"

	recipesErrors "github.com/cdbale/recipes/pkg/errors"
)

// Kind declares how a column's values are stored and interpreted.
type Kind int

const (
	// Continuous marks a real-valued column.
	Continuous Kind = iota
	// Categorical marks a column drawn from a finite set of string levels.
	Categorical
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Column is a single named column. Exactly one of Floats and Strings is
// populated, according to Kind.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
}

// NewContinuous creates a continuous column.
func NewContinuous(name string, values []float64) Column {
	return Column{Name: name, Kind: Continuous, Floats: values}
}

// NewCategorical creates a categorical column.
func NewCategorical(name string, values []string) Column {
	return Column{Name: name, Kind: Categorical, Strings: values}
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	if c.Kind == Continuous {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// clone returns a deep copy of the column.
func (c Column) clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Floats != nil {
		out.Floats = make([]float64, len(c.Floats))
		copy(out.Floats, c.Floats)
	}
	if c.Strings != nil {
		out.Strings = make([]string, len(c.Strings))
		copy(out.Strings, c.Strings)
	}
	return out
}

// Table is an ordered collection of equally sized columns.
type Table struct {
	columns []Column
	index   map[string]int
	nRows   int
}

// New creates a table from the given columns.
//
// Returns a SchemaError if two columns share a name or the columns have
// differing lengths.
func New(columns ...Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		if _, exists := t.index[col.Name]; exists {
			return nil, recipesErrors.NewSchemaError("table.New", "",
				[]string{col.Name}, "duplicate column name")
		}
		if i == 0 {
			t.nRows = col.Len()
		} else if col.Len() != t.nRows {
			return nil, recipesErrors.NewDimensionError("table.New", t.nRows, col.Len(), 0)
		}
		t.index[col.Name] = len(t.columns)
		t.columns = append(t.columns, col.clone())
	}

	return t, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return t.nRows
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.columns)
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// HasColumn reports whether the table contains a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a deep copy of the named column.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, recipesErrors.NewSchemaError("table.Column", "",
			[]string{name}, "column not found")
	}
	return t.columns[i].clone(), nil
}

// KindOf returns the declared kind of the named column.
func (t *Table) KindOf(name string) (Kind, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, recipesErrors.NewSchemaError("table.KindOf", "",
			[]string{name}, "column not found")
	}
	return t.columns[i].Kind, nil
}

// Columns returns deep copies of all columns in table order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	for i, col := range t.columns {
		out[i] = col.clone()
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	clone, _ := New(t.columns...)
	return clone
}

// WithColumn returns a new table with col appended.
//
// Returns a SchemaError if a column with the same name already exists, or
// a DimensionError if the column length does not match the table.
func (t *Table) WithColumn(col Column) (*Table, error) {
	if t.HasColumn(col.Name) {
		return nil, recipesErrors.NewSchemaError("table.WithColumn", "",
			[]string{col.Name}, "duplicate column name")
	}
	if len(t.columns) > 0 && col.Len() != t.nRows {
		return nil, recipesErrors.NewDimensionError("table.WithColumn", t.nRows, col.Len(), 0)
	}
	cols := append(t.Columns(), col)
	return New(cols...)
}

// Select returns a new table containing only the named columns, in the
// given order.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return New(cols...)
}

// Drop returns a new table without the named columns. Names not present
// are ignored, so dropping an optional outcome column is safe.
func (t *Table) Drop(names ...string) (*Table, error) {
	dropped := make(map[string]bool, len(names))
	for _, name := range names {
		dropped[name] = true
	}
	cols := make([]Column, 0, len(t.columns))
	for _, col := range t.columns {
		if !dropped[col.Name] {
			cols = append(cols, col)
		}
	}
	return New(cols...)
}

// Matrix assembles the named continuous columns into a dense matrix of
// shape (rows, len(columns)), in the given column order.
//
// Returns a SchemaError if a column is missing or categorical, and an
// error wrapping ErrEmptyData on a zero-row table.
func (t *Table) Matrix(columns []string) (*mat.Dense, error) {
	if len(columns) == 0 {
		return nil, recipesErrors.NewValueError("table.Matrix", "no columns requested")
	}
	if t.nRows == 0 {
		return nil, recipesErrors.Wrap(recipesErrors.ErrEmptyData, "table.Matrix: table has no rows")
	}

	for _, name := range columns {
		i, ok := t.index[name]
		if !ok {
			return nil, recipesErrors.NewSchemaError("table.Matrix", "",
				[]string{name}, "column not found")
		}
		if t.columns[i].Kind != Continuous {
			return nil, recipesErrors.NewSchemaError("table.Matrix", "",
				[]string{name}, "column is categorical, expected continuous")
		}
	}

	result := mat.NewDense(t.nRows, len(columns), nil)
	for j, name := range columns {
		col := t.columns[t.index[name]]
		for i := 0; i < t.nRows; i++ {
			result.Set(i, j, col.Floats[i])
		}
	}
	return result, nil
}

// Vector returns a single continuous column as a dense vector.
//
// Returns a SchemaError if the column is missing or categorical, and an
// error wrapping ErrEmptyData on a zero-row table.
func (t *Table) Vector(column string) (*mat.VecDense, error) {
	if t.nRows == 0 {
		return nil, recipesErrors.Wrap(recipesErrors.ErrEmptyData, "table.Vector: table has no rows")
	}
	i, ok := t.index[column]
	if !ok {
		return nil, recipesErrors.NewSchemaError("table.Vector", "",
			[]string{column}, "column not found")
	}
	col := t.columns[i]
	if col.Kind != Continuous {
		return nil, recipesErrors.NewSchemaError("table.Vector", "",
			[]string{column}, "column is categorical, expected continuous")
	}

	vec := mat.NewVecDense(t.nRows, nil)
	for r := 0; r < t.nRows; r++ {
		vec.SetVec(r, col.Floats[r])
	}
	return vec, nil
}
