// Package fixture declares modules for the adapter generator tests.
package fixture

import (
	"context"
	"database/sql"
	"io"
	"strings"
)

type Factory struct {
	DSN string
}

// RecorderModule records statements.
type RecorderModule struct {
	factory *Factory
	stmts   []string
}

func NewRecorderModule(factory *Factory) *RecorderModule {
	return &RecorderModule{factory: factory}
}

func (m *RecorderModule) Record(stmt string) {
	m.stmts = append(m.stmts, stmt)
}

func (m *RecorderModule) Statements() []string {
	return m.stmts
}

func (m *RecorderModule) Lookup(context.Context, string, string) (*sql.Rows, error) {
	return nil, sql.ErrNoRows
}

func (m *RecorderModule) Options(opts struct {
	Name  string `json:"name"`
	Limit int
}) interface {
	io.Reader
	Close() error
} {
	return io.NopCloser(strings.NewReader(opts.Name))
}

func (m *RecorderModule) Count(a int, args ...interface{}) (int, bool) {
	return a + len(args), true
}

// Reset forgets recorded statements.
//
// Deprecated: use Clear.
func (m *RecorderModule) Reset() {
	m.Clear()
}

func (m *RecorderModule) Clear() {
	m.stmts = nil
}

func (m *RecorderModule) TearDown() {}

func (m *RecorderModule) unexported() {}

// Plain has no constructor.
type Plain struct{}

func (Plain) Do() {}

// Value is built by value.
type Value struct {
	n int
}

func MakeValue(n int) Value {
	return Value{n: n}
}

func (v Value) N() int { return v.n }
