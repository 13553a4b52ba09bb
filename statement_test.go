package stmtmock

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreparedStatementDelegatesToConnection(t *testing.T) {
	t.Parallel()
	db, mock, err := New()
	require.NoError(t, err)
	defer db.Close()

	const query = "UPDATE users SET name = ? WHERE id = ?"
	mock.PrepareUpdateCount(query, 1, Args("john", 5))

	stmt, err := db.Prepare(query)
	require.NoError(t, err)

	res, err := stmt.Exec("john", 5)
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = stmt.Exec("jane", 5)
	assert.ErrorIs(t, err, ErrNoExpectation)

	assert.NoError(t, stmt.Close())
	assert.Equal(t, 2, mock.ExecutedParams(query).Len())
}

func TestPreparedStatementInTransaction(t *testing.T) {
	t.Parallel()
	db, mock, err := New()
	require.NoError(t, err)
	defer db.Close()

	const query = "SELECT name FROM users WHERE id = ?"
	mock.PrepareResultSet(query, NewRows([]string{"name"}).AddRow("john"), Args(1))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	stmt, err := tx.Prepare(query)
	require.NoError(t, err)
	defer stmt.Close()

	var name string
	require.NoError(t, stmt.QueryRow(1).Scan(&name))
	assert.Equal(t, "john", name)

	require.NoError(t, tx.Rollback())
	assert.Equal(t, 1, mock.Rollbacks())
	assert.Equal(t, 0, mock.Commits())
}

func TestConvertValueToNamedValue(t *testing.T) {
	named := convertValueToNamedValue([]driver.Value{"a", int64(2)})
	require.Len(t, named, 2)
	assert.Equal(t, 1, named[0].Ordinal)
	assert.Equal(t, "a", named[0].Value)
	assert.Equal(t, 2, named[1].Ordinal)
}
