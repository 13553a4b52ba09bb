package stmtmock

import (
	"database/sql/driver"
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// CSVColumnParser is a function which converts trimmed csv
// column string to a []byte representation. Currently
// transforms NULL to nil
var CSVColumnParser = func(s string) []byte {
	switch {
	case strings.ToLower(s) == "null":
		return nil
	}
	return []byte(s)
}

var (
	_ driver.Rows                           = (*rowSets)(nil)
	_ driver.RowsNextResultSet              = (*rowSets)(nil)
	_ driver.RowsColumnTypeDatabaseTypeName = (*rowSets)(nil)
	_ driver.RowsColumnTypeScanType         = (*rowSets)(nil)
	_ driver.RowsColumnTypeLength           = (*rowSets)(nil)
	_ driver.RowsColumnTypeNullable         = (*rowSets)(nil)
	_ driver.RowsColumnTypePrecisionScale   = (*rowSets)(nil)
)

// rowSets iterates over prepared result sets. Prepared Rows are
// shared between queries, the read position lives here.
type rowSets struct {
	sets []*Rows
	pos  int
	row  int
}

func (rs *rowSets) Columns() []string {
	return rs.sets[rs.pos].cols
}

func (rs *rowSets) Close() error {
	return rs.sets[rs.pos].closeErr
}

// advances to next row
func (rs *rowSets) Next(dest []driver.Value) error {
	r := rs.sets[rs.pos]
	rs.row++
	if rs.row > len(r.rows) {
		return io.EOF
	}

	for i, col := range r.rows[rs.row-1] {
		dest[i] = col
	}

	return r.nextErr[rs.row-1]
}

// HasNextResultSet is defined from driver.RowsNextResultSet
func (rs *rowSets) HasNextResultSet() bool {
	return rs.pos+1 < len(rs.sets)
}

// NextResultSet is defined from driver.RowsNextResultSet
func (rs *rowSets) NextResultSet() error {
	if !rs.HasNextResultSet() {
		return io.EOF
	}

	rs.pos++
	rs.row = 0
	return nil
}

// ColumnTypeLength is defined from driver.RowsColumnTypeLength
func (rs *rowSets) ColumnTypeLength(index int) (length int64, ok bool) {
	return rs.sets[rs.pos].def[index].length, false
}

// ColumnTypeNullable is defined from driver.RowsColumnTypeNullable
func (rs *rowSets) ColumnTypeNullable(index int) (nullable, ok bool) {
	return rs.sets[rs.pos].def[index].nullable, false
}

// ColumnTypePrecisionScale is defined from driver.RowsColumnTypePrecisionScale
func (rs *rowSets) ColumnTypePrecisionScale(index int) (precision, scale int64, ok bool) {
	c := rs.sets[rs.pos].def[index]
	return c.precision, c.scale, false
}

// ColumnTypeScanType is defined from driver.RowsColumnTypeScanType
func (rs *rowSets) ColumnTypeScanType(index int) reflect.Type {
	return rs.sets[rs.pos].def[index].scanType
}

// ColumnTypeDatabaseTypeName is defined from driver.RowsColumnTypeDatabaseTypeName
func (rs *rowSets) ColumnTypeDatabaseTypeName(index int) string {
	return rs.sets[rs.pos].def[index].dbTyp
}

// Column is a mocked column metadata for rows.ColumnTypes()
type Column struct {
	name, dbTyp              string
	nullable                 bool
	length, precision, scale int64
	scanType                 reflect.Type
}

// NewColumn allows to create a Column metadata definition.
func NewColumn(name, dbTyp string, exampleValue interface{}, nullable bool, length, precision, scale int64) *Column {
	return &Column{name, dbTyp, nullable, length, precision, scale, reflect.TypeOf(exampleValue)}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// DbType returns the database type name.
func (c *Column) DbType() string { return c.dbTyp }

// Rows is a mocked result set prepared as the answer
// to a statement. It can be returned by any number of queries.
type Rows struct {
	converter driver.ValueConverter
	cols      []string
	def       []*Column
	rows      [][]driver.Value
	nextErr   map[int]error
	closeErr  error
}

// NewRows allows Rows to be created from a
// sql driver.Value slice or from the CSV string.
// Use Mock.NewRows instead if using a custom converter
func NewRows(columns []string) *Rows {
	definition := make([]*Column, len(columns))
	for i, column := range columns {
		definition[i] = &Column{name: column}
	}

	return &Rows{
		cols:      columns,
		def:       definition,
		nextErr:   make(map[int]error),
		converter: driver.DefaultParameterConverter,
	}
}

// NewRowsWithColumnDefinition creates Rows whose columns
// carry type metadata.
func NewRowsWithColumnDefinition(columns ...*Column) *Rows {
	cols := make([]string, len(columns))
	for i, column := range columns {
		cols[i] = column.name
	}

	return &Rows{
		cols:      cols,
		def:       columns,
		nextErr:   make(map[int]error),
		converter: driver.DefaultParameterConverter,
	}
}

// Columns returns the column names.
func (r *Rows) Columns() []string { return r.cols }

// Len returns the number of rows.
func (r *Rows) Len() int { return len(r.rows) }

// CloseError allows to set an error
// which will be returned by rows.Close
// function.
//
// The close error will be triggered only in cases
// when rows.Next() EOF was not yet reached, that is
// a default sql library behavior
func (r *Rows) CloseError(err error) *Rows {
	r.closeErr = err
	return r
}

// RowError allows to set an error
// which will be returned when a given
// row number is read
func (r *Rows) RowError(row int, err error) *Rows {
	r.nextErr[row] = err
	return r
}

// AddRow composed from database driver.Value slice
// return the same instance to perform subsequent actions.
// Note that the number of values must match the number
// of columns
func (r *Rows) AddRow(values ...driver.Value) *Rows {
	if len(values) != len(r.cols) {
		panic(fmt.Sprintf("expected %d values to match the number of columns, got %d", len(r.cols), len(values)))
	}

	row := make([]driver.Value, len(r.cols))
	for i, v := range values {
		// Convert user-friendly values (such as int or driver.Valuer)
		// to database/sql native value (driver.Value such as int64)
		var err error
		v, err = r.converter.ConvertValue(v)
		if err != nil {
			panic(fmt.Errorf(
				"row #%d, column #%d (%q) type %T: %s",
				len(r.rows)+1, i, r.cols[i], values[i], err,
			))
		}

		row[i] = v
	}

	r.rows = append(r.rows, row)
	return r
}

// FromCSVString build rows from csv string.
// return the same instance to perform subsequent actions.
// Note that the number of values must match the number
// of columns
func (r *Rows) FromCSVString(s string) *Rows {
	res := strings.NewReader(strings.TrimSpace(s))
	csvReader := csv.NewReader(res)

	for {
		res, err := csvReader.Read()
		if err != nil || res == nil {
			break
		}

		row := make([]driver.Value, len(r.cols))
		for i, v := range res {
			row[i] = CSVColumnParser(strings.TrimSpace(v))
		}
		r.rows = append(r.rows, row)
	}
	return r
}

// transforms to debuggable printable string
func (r *Rows) String() string {
	if len(r.rows) == 0 {
		return fmt.Sprintf("empty rows %v", r.cols)
	}

	msg := fmt.Sprintf("rows %v:\n", r.cols)
	for n, row := range r.rows {
		msg += fmt.Sprintf("    row %d - %+v\n", n, row)
	}
	return strings.TrimSpace(msg)
}
