package engine

import (
	"fmt"

	"github.com/samber/lo"
)

// ColumnType is the XML Schema type a column is declared with.
type ColumnType string

// Column types written to rowset schemas.
const (
	TypeString   ColumnType = "xsd:string"
	TypeInt      ColumnType = "xsd:int"
	TypeLong     ColumnType = "xsd:long"
	TypeDouble   ColumnType = "xsd:double"
	TypeDecimal  ColumnType = "xsd:decimal"
	TypeBoolean  ColumnType = "xsd:boolean"
	TypeDateTime ColumnType = "xsd:dateTime"
)

// Numeric reports whether values of t are written through numeric
// normalization.
func (t ColumnType) Numeric() bool {
	switch t {
	case TypeInt, TypeLong, TypeDouble, TypeDecimal:
		return true
	}
	return false
}

// Column describes one rowset column. Name is the logical name; the writer
// encodes it into a legal XML element name.
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
}

// Row maps column names to values. A missing key is a null.
type Row map[string]string

// Rowset is a tabular result.
type Rowset struct {
	Columns []Column
	Rows    []Row
}

// NewRowset creates an empty rowset with the given columns.
func NewRowset(columns ...Column) *Rowset {
	return &Rowset{Columns: columns}
}

// Append adds a row after checking its keys against the declared columns.
func (r *Rowset) Append(row Row) error {
	names := lo.Map(r.Columns, func(c Column, _ int) string { return c.Name })
	for k := range row {
		if !lo.Contains(names, k) {
			return fmt.Errorf("row has undeclared column %q", k)
		}
	}
	r.Rows = append(r.Rows, row)
	return nil
}

// Validate reports the first null in a non-nullable column.
func (r *Rowset) Validate() error {
	for i, row := range r.Rows {
		for _, c := range r.Columns {
			if _, ok := row[c.Name]; !ok && !c.Nullable {
				return &NullColumnError{Row: i, Column: c.Name}
			}
		}
	}
	return nil
}

// NullColumnError reports a missing value in a non-nullable column.
type NullColumnError struct {
	Row    int
	Column string
}

func (e *NullColumnError) Error() string {
	return fmt.Sprintf("row %d: column %s is not nullable", e.Row, e.Column)
}

// Result is the outcome of an Execute. A nil Rowset produces an empty
// result in the empty namespace.
type Result struct {
	Rowset *Rowset
}

// Empty returns a result with no rowset.
func Empty() *Result {
	return &Result{}
}
