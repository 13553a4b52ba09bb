// Package gormock prepares stmtmock outcomes from gorm models, so code
// written against gorm can be tested without a database.
package gormock

import (
	"database/sql/driver"
	"fmt"

	"github.com/pubgo/stmtmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// MatchConfig is the configuration of mocks created by NewMockDB.
// Prepared SQL is a case insensitive glob, parameters match exactly.
var MatchConfig = stmtmock.MatchConfig{
	UseWildcards:        true,
	ExactMatchParameter: true,
}

type dbMock struct {
	tb   TestingTB
	mock *stmtmock.Mock
	db   *gorm.DB

	op        operation
	fields    map[string]driver.Value
	args      []driver.Value
	column    []string
	tableName string
}

func (m *dbMock) Mock() *stmtmock.Mock { return m.mock }
func (m *dbMock) DB() *gorm.DB         { return m.db }

func (m *dbMock) expect(op operation, model schema.Tabler) *dbMock {
	if model == nil {
		m.tb.Fatalf("model is nil")
		return m
	}

	return &dbMock{
		mock:      m.mock,
		db:        m.db,
		tb:        m.tb,
		op:        op,
		tableName: model.TableName(),
		column:    parseColumn(model),
		fields:    parseField(model),
	}
}

// statement builds the SQL glob and expected parameters.
func (m *dbMock) statement() (string, stmtmock.Params) {
	var where string
	var args []driver.Value
	for _, name := range m.column {
		if val, ok := m.fields[name]; ok {
			where += fmt.Sprintf("%s *", name)
			args = append(args, flattenValue(val)...)
		}
	}

	if m.args != nil {
		args = m.args
	}
	return statementGlob(m.op, m.tableName, where), stmtmock.Args(convertArgs(args)...)
}

// WithArgs replaces the parameters derived from the model fields.
func (m *dbMock) WithArgs(args ...driver.Value) *dbMock {
	m.args = append([]driver.Value{}, args...)
	return m
}

func (m *dbMock) ExpectField(name string, value interface{}) *dbMock {
	m.fields[name] = value
	return m
}

func (m *dbMock) ExpectFields(fields map[string]driver.Value) *dbMock {
	for name, value := range fields {
		m.fields[name] = value
	}
	return m
}

// ReturnErr makes the statement fail with err.
func (m *dbMock) ReturnErr(err error) {
	sql, params := m.statement()
	m.mock.PrepareError(sql, err, params)
}

// ReturnResult makes the statement report rowsAffected.
func (m *dbMock) ReturnResult(rowsAffected int) {
	sql, params := m.statement()
	m.mock.PrepareUpdateCount(sql, rowsAffected, params)
}

// Return makes the statement return returns, a model or a slice of models.
func (m *dbMock) Return(returns interface{}) {
	sql, params := m.statement()
	m.mock.PrepareResultSet(sql, ModelToRows(returns), params)
}

// Create expects an INSERT of model.
func (m *dbMock) Create(model schema.Tabler) *dbMock { return m.expect(opCreate, model) }

// Delete expects a DELETE of model.
func (m *dbMock) Delete(model schema.Tabler) *dbMock { return m.expect(opDelete, model) }

// Update expects an UPDATE of model.
func (m *dbMock) Update(model schema.Tabler) *dbMock { return m.expect(opUpdate, model) }

// Find expects a SELECT of model, its non zero fields are the conditions.
func (m *dbMock) Find(model schema.Tabler) *dbMock { return m.expect(opFind, model) }

// NewMockDB opens gorm with the postgres dialector over a new mock
// database configured with MatchConfig. Mock messages go to tb.Logf.
func NewMockDB(tb TestingTB) *dbMock {
	db, mock, err := stmtmock.New(
		stmtmock.MatchConfigOption(MatchConfig),
		stmtmock.LoggerOption(tbLogger{tb}),
	)
	if err != nil {
		tb.Fatalf("%v", err)
		return nil
	}

	tb.Cleanup(func() {
		if err := db.Close(); err != nil {
			tb.Errorf("%v", err)
		}
	})

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  stmtmock.DriverName,
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		tb.Fatalf("%v", err)
		return nil
	}

	return &dbMock{db: gormDB, mock: mock, tb: tb}
}
