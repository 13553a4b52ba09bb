/*
Package stmtmock is a mock library implementing a sql driver whose answers are
prepared per statement and parameter values.

Outcomes are prepared on a ParamHandler: result sets, update counts or errors
for a SQL string and the parameters it is expected to be executed with. A
statement executed through the driver is answered with the first prepared
outcome whose SQL text and parameters match, according to a MatchConfig.
Prepared outcomes are not consumed, so a statement may be executed any number
of times.

	db, mock, err := stmtmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.PrepareResultSet("SELECT name FROM users", mock.NewRows([]string{"name"}).AddRow("gopher"), stmtmock.Args(1))
	mock.PrepareUpdateCount("UPDATE users", 1, nil)
*/
package stmtmock

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sync"
)

var (
	_ driver.Conn               = (*Mock)(nil)
	_ driver.Tx                 = (*Mock)(nil)
	_ driver.QueryerContext     = (*Mock)(nil)
	_ driver.ExecerContext      = (*Mock)(nil)
	_ driver.ConnPrepareContext = (*Mock)(nil)
	_ driver.ConnBeginTx        = (*Mock)(nil)
	_ driver.Pinger             = (*Mock)(nil)
	_ driver.NamedValueChecker  = (*Mock)(nil)
)

// defaultConverter keeps rune slices intact so they can be matched
// against prepared []rune parameters.
var defaultConverter driver.ValueConverter = NewPassthroughValueConverter([]rune(nil))

// Mock is a driver connection answering statements with the outcomes
// prepared on its embedded ParamHandler. Every executed statement is
// recorded with its parameters, see ExecutedParams.
type Mock struct {
	*ParamHandler

	mu        sync.Mutex
	dsn       string
	drv       *mockDriver
	opened    int
	converter driver.ValueConverter

	// read position of prepared update count sequences
	cursors map[*Outcome]int

	commits   int
	rollbacks int
}

func newMock(dsn string, drv *mockDriver) *Mock {
	return &Mock{
		ParamHandler: NewParamHandler(DefaultMatchConfig()),
		dsn:          dsn,
		drv:          drv,
		converter:    defaultConverter,
		cursors:      make(map[*Outcome]int),
	}
}

func (c *Mock) open(options []func(*Mock) error) (*sql.DB, *Mock, error) {
	for _, option := range options {
		if err := option(c); err != nil {
			return nil, nil, err
		}
	}

	db, err := sql.Open(DriverName, c.dsn)
	if err != nil {
		return db, c, err
	}
	return db, c, db.Ping()
}

// NewRows allows Rows to be created from a
// sql driver.Value slice or from the CSV string,
// using the value converter of the mock.
func (c *Mock) NewRows(columns []string) *Rows {
	r := NewRows(columns)
	r.converter = c.converter
	return r
}

// Commits returns how many transactions were committed.
func (c *Mock) Commits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commits
}

// Rollbacks returns how many transactions were rolled back.
func (c *Mock) Rollbacks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollbacks
}

// ResetSequences rewinds every prepared update count sequence.
func (c *Mock) ResetSequences() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursors = make(map[*Outcome]int)
}

// Close a mock database driver connection.
// meets http://golang.org/pkg/database/sql/driver/#Conn interface
func (c *Mock) Close() error {
	c.drv.Lock()
	defer c.drv.Unlock()

	c.opened--
	if c.opened == 0 {
		delete(c.drv.conns, c.dsn)
	}
	return nil
}

// Begin meets http://golang.org/pkg/database/sql/driver/#Conn interface
//
// Deprecated: Drivers should implement ConnBeginTx instead (or additionally).
func (c *Mock) Begin() (driver.Tx, error) {
	return c, nil
}

// BeginTx implements the "ConnBeginTx" interface
func (c *Mock) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Commit meets http://golang.org/pkg/database/sql/driver/#Tx
func (c *Mock) Commit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commits++
	return nil
}

// Rollback meets http://golang.org/pkg/database/sql/driver/#Tx
func (c *Mock) Rollback() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollbacks++
	return nil
}

// Prepare meets http://golang.org/pkg/database/sql/driver/#Conn interface
func (c *Mock) Prepare(query string) (driver.Stmt, error) {
	return &statement{conn: c, query: query}, nil
}

// PrepareContext implements the "ConnPrepareContext" interface
func (c *Mock) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	return c.Prepare(query)
}

// Ping implements the "Pinger" interface
func (c *Mock) Ping(ctx context.Context) error {
	return cancelled(ctx)
}

// CheckNamedValue meets https://golang.org/pkg/database/sql/driver/#NamedValueChecker
func (c *Mock) CheckNamedValue(nv *driver.NamedValue) (err error) {
	nv.Value, err = c.converter.ConvertValue(nv.Value)
	return err
}

// QueryContext implements the "QueryerContext" interface
func (c *Mock) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	return c.query(query, args)
}

// ExecContext implements the "ExecerContext" interface
func (c *Mock) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	return c.exec(query, args)
}

func (c *Mock) query(query string, args []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	params := NamedArgs(args)
	c.AddExecutedParams(query, params)

	if err := c.Error(query, params); err != nil {
		return nil, err // prepared to fail
	}

	o, ok := c.FindResultSet(query, params)
	if !ok {
		return nil, fmt.Errorf("query '%s' with args %s: %w", query, params, ErrNoExpectation)
	}

	sets := o.ResultSets()
	for _, set := range sets {
		if set == nil {
			return nil, fmt.Errorf("query '%s' with args %s must return a database/sql/driver.Rows, but it was not set for %s", query, params, o)
		}
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("query '%s' with args %s matched %s without result sets", query, params, o)
	}
	return &rowSets{sets: sets}, nil
}

func (c *Mock) exec(query string, args []driver.NamedValue) (driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	params := NamedArgs(args)
	c.AddExecutedParams(query, params)

	if err := c.Error(query, params); err != nil {
		return nil, err // prepared to fail
	}

	o, ok := c.FindUpdateCount(query, params)
	if !ok {
		return nil, fmt.Errorf("exec '%s' with args %s: %w", query, params, ErrNoExpectation)
	}

	counts := o.UpdateCounts()
	if !o.Multiple() {
		return NewResult(0, int64(counts[0])), nil
	}

	i := c.cursors[o]
	if i >= len(counts) {
		return nil, fmt.Errorf("exec '%s' with args %s, %d update counts consumed: %w", query, params, len(counts), ErrSequenceDepleted)
	}
	c.cursors[o] = i + 1
	return NewResult(0, int64(counts[i])), nil
}

func cancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ErrCancelled
	default:
		return nil
	}
}
