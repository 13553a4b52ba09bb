package stmtmock

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NullInt and NullTime are user defined Scanner and Valuer types,
// as applications pass them to database/sql.
type NullInt struct {
	Integer int
	Valid   bool
}

type NullTime struct {
	Time  time.Time
	Valid bool
}

func (ni *NullInt) Scan(value interface{}) (err error) {
	ni.Integer, ni.Valid = 0, value != nil
	switch v := value.(type) {
	case nil:
	case int64:
		ni.Integer = int(v)
	case []byte:
		ni.Integer, err = strconv.Atoi(string(v))
	case string:
		ni.Integer, err = strconv.Atoi(v)
	default:
		err = fmt.Errorf("can't convert %T to integer", value)
	}
	return err
}

func (ni NullInt) Value() (driver.Value, error) {
	if !ni.Valid {
		return nil, nil
	}
	return int64(ni.Integer), nil
}

func (nt *NullTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		nt.Time, nt.Valid = time.Time{}, false
	case time.Time:
		nt.Time, nt.Valid = v, true
	default:
		return fmt.Errorf("can't convert %T to time.Time", value)
	}
	return nil
}

func (nt NullTime) Value() (driver.Value, error) {
	if !nt.Valid {
		return nil, nil
	}
	return nt.Time, nil
}

func TestScanIntoUserTypes(t *testing.T) {
	db, mock, err := New()
	require.NoError(t, err)
	defer db.Close()

	seen := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.PrepareResultSet("SELECT age, seen FROM users", NewRows([]string{"age", "seen"}).
		AddRow(int64(33), seen).
		AddRow("41", nil).
		AddRow(nil, nil), nil)

	rows, err := db.Query("SELECT age, seen FROM users")
	require.NoError(t, err)
	defer rows.Close()

	var ages []NullInt
	var times []NullTime
	for rows.Next() {
		var age NullInt
		var at NullTime
		require.NoError(t, rows.Scan(&age, &at))
		ages = append(ages, age)
		times = append(times, at)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []NullInt{{33, true}, {41, true}, {0, false}}, ages)
	assert.Equal(t, []NullTime{{seen, true}, {}, {}}, times)
}
