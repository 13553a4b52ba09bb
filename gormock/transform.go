package gormock

import (
	"context"
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/pubgo/stmtmock"
	"gorm.io/gorm/schema"
)

// operation is the kind of statement an expectation is prepared for.
type operation int

const (
	opNone operation = iota
	opFind
	opCreate
	opUpdate
	opDelete
)

var schemaCache = &sync.Map{}

func parseSchema(model interface{}) (*schema.Schema, bool) {
	s, err := schema.Parse(model, schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, false
	}
	return s, true
}

// parseColumn lists the database columns of model in field order.
func parseColumn(model interface{}) []string {
	columns := make([]string, 0)
	s, ok := parseSchema(model)
	if !ok {
		return columns
	}
	for _, f := range s.Fields {
		if f.DBName != "" {
			columns = append(columns, f.DBName)
		}
	}
	return columns
}

func columnValues(model interface{}, skipZero bool, visit func(column string, value driver.Value)) {
	s, ok := parseSchema(model)
	if !ok {
		return
	}

	rv := reflect.ValueOf(model)
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		v, zero := f.ValueOf(context.Background(), rv)
		if zero && skipZero {
			continue
		}
		visit(f.DBName, v)
	}
}

// parseValue returns the values of model for columns, in that order.
func parseValue(model interface{}, columns []string) []driver.Value {
	byColumn := make(map[string]driver.Value, len(columns))
	columnValues(model, false, func(column string, value driver.Value) { byColumn[column] = value })

	row := make([]driver.Value, 0, len(columns))
	for _, col := range columns {
		row = append(row, byColumn[col])
	}
	return row
}

// parseField returns the non zero fields of model by column.
func parseField(model interface{}) map[string]driver.Value {
	fields := make(map[string]driver.Value)
	columnValues(model, true, func(column string, value driver.Value) { fields[column] = value })
	return fields
}

// ModelToRows converts a model, or a slice of models, to the rows a query
// for them returns. Columns are the model's database field names.
func ModelToRows(dst interface{}) *stmtmock.Rows {
	if dst == nil {
		return stmtmock.NewRows(nil)
	}

	rv := reflect.Indirect(reflect.ValueOf(dst))
	var models []interface{}
	switch rv.Kind() {
	case reflect.Array, reflect.Slice:
		if rv.Len() == 0 {
			return stmtmock.NewRows(parseColumn(reflect.New(rv.Type().Elem()).Elem().Interface()))
		}
		for i := 0; i < rv.Len(); i++ {
			models = append(models, rv.Index(i).Interface())
		}
	default:
		models = append(models, dst)
	}

	columns := parseColumn(models[0])
	rows := stmtmock.NewRows(columns)
	for _, model := range models {
		rows.AddRow(parseValue(model, columns)...)
	}
	return rows
}

// statementGlob is the glob matching the SQL gorm's postgres dialector
// writes for op on table. where lists "column *" conditions.
func statementGlob(op operation, table, where string) string {
	switch op {
	case opFind:
		if where == "" {
			return fmt.Sprintf(`SELECT * FROM "%s"*`, table)
		}
		return fmt.Sprintf(`SELECT * FROM "%s" WHERE %s*`, table, where)
	case opCreate:
		return fmt.Sprintf(`INSERT INTO "%s" *%s VALUES *`, table, strings.ReplaceAll(where, " ", ""))
	case opUpdate:
		if where == "" {
			return fmt.Sprintf(`UPDATE "%s" SET`, table)
		}
		return fmt.Sprintf(`UPDATE "%s" SET * WHERE %s*`, table, where)
	case opDelete:
		if where == "" {
			return fmt.Sprintf(`DELETE FROM "%s"*`, table)
		}
		return fmt.Sprintf(`DELETE FROM "%s" WHERE %s*`, table, where)
	}
	return where
}

// flattenValue expands slices and arrays, an IN condition binds one
// parameter per element.
func flattenValue(val interface{}) []driver.Value {
	if val == nil {
		return []driver.Value{nil}
	}

	rv := reflect.ValueOf(val)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Array, reflect.Slice:
		values := make([]driver.Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			values = append(values, rv.Index(i).Interface())
		}
		return values
	}
	return []driver.Value{val}
}

// convertArgs brings expected values to the form the driver receives them
// in, so a *time.Time field matches the time.Time bound by database/sql.
func convertArgs(args []driver.Value) []driver.Value {
	converted := make([]driver.Value, len(args))
	for i, arg := range args {
		if _, ok := arg.(stmtmock.Argument); ok {
			converted[i] = arg
			continue
		}

		v, err := driver.DefaultParameterConverter.ConvertValue(arg)
		if err != nil {
			converted[i] = arg
			continue
		}
		converted[i] = v
	}
	return converted
}
