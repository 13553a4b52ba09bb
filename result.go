package stmtmock

import "database/sql/driver"

// result is the driver.Result of an exec. Both accessors return err
// when it is set.
type result struct {
	lastInsertID int64
	affected     int64
	err          error
}

// NewResult creates the driver.Result an exec reports, the mock driver
// uses it for prepared update counts.
func NewResult(lastInsertID int64, rowsAffected int64) driver.Result {
	return &result{lastInsertID: lastInsertID, affected: rowsAffected}
}

// NewErrorResult creates a driver.Result failing with err.
func NewErrorResult(err error) driver.Result {
	return &result{err: err}
}

func (r *result) LastInsertId() (int64, error) { return r.lastInsertID, r.err }

func (r *result) RowsAffected() (int64, error) { return r.affected, r.err }
