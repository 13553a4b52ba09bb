package stmtmock

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sync"
)

// DriverName is the name the mock driver is registered with.
const DriverName = "stmtmock"

var pool *mockDriver

func init() {
	pool = &mockDriver{
		conns: make(map[string]*Mock),
	}
	sql.Register(DriverName, pool)
}

type mockDriver struct {
	sync.Mutex
	counter int
	conns   map[string]*Mock
}

func (d *mockDriver) Open(dsn string) (driver.Conn, error) {
	d.Lock()
	defer d.Unlock()

	c, ok := d.conns[dsn]
	if !ok {
		return c, fmt.Errorf("expected a connection to be available, but it is not")
	}

	c.opened++
	return c, nil
}

// New creates a mock database connection and a Mock to prepare
// the outcomes of statements. Pings db so that the connection
// is established before use.
//
// Options are applied in order, see MatchConfigOption,
// ValueConverterOption and LoggerOption.
func New(options ...func(*Mock) error) (*sql.DB, *Mock, error) {
	pool.Lock()
	dsn := fmt.Sprintf("stmtmock_db_%d", pool.counter)
	pool.counter++

	mock := newMock(dsn, pool)
	pool.conns[dsn] = mock
	pool.Unlock()

	return mock.open(options)
}

// NewWithDSN creates a mock database connection with a specific DSN
// and a Mock to prepare outcomes with.
//
// This method is introduced because of sql abstraction
// libraries, which do not provide a way to initialize
// with sql.DB instance. For example GORM library.
func NewWithDSN(dsn string, options ...func(*Mock) error) (*sql.DB, *Mock, error) {
	pool.Lock()
	if _, ok := pool.conns[dsn]; ok {
		pool.Unlock()
		return nil, nil, fmt.Errorf("cannot create a new mock database with the same dsn: %s", dsn)
	}
	mock := newMock(dsn, pool)
	pool.conns[dsn] = mock
	pool.Unlock()

	return mock.open(options)
}
