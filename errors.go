package stmtmock

import (
	"errors"
	"fmt"
)

var (
	// ErrNoExpectation is returned by the driver when a statement
	// does not match any prepared outcome.
	ErrNoExpectation = errors.New("stmtmock: no matching expectation")

	// ErrSequenceDepleted is returned by the driver once every value
	// of a prepared update count sequence was consumed.
	ErrSequenceDepleted = errors.New("stmtmock: prepared sequence depleted")

	// ErrCancelled defines an error value, which can be expected in case of
	// such cancellation error.
	ErrCancelled = errors.New("canceling query due to user request")
)

// StatementError is the error prepared by PrepareGenericError.
type StatementError struct {
	SQL string
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %s was specified to throw an error", e.SQL)
}
