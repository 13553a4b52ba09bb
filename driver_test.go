package stmtmock

import (
	"fmt"
	"testing"
)

func ExampleNew() {
	db, mock, err := New()
	if err != nil {
		fmt.Println("expected no error, but got:", err)
		return
	}
	defer db.Close()
	// now we can prepare outcomes of statements executed on db
	mock.PrepareGenericError("DELETE FROM users WHERE id = ?", Args(1))

	_, err = db.Exec("DELETE FROM users WHERE id = ?", 1)
	fmt.Println(err)
	// Output: statement DELETE FROM users WHERE id = ? was specified to throw an error
}

func TestShouldOpenConnectionIssue15(t *testing.T) {
	db, mock, err := New()
	if err != nil {
		t.Errorf("expected no error, but got: %s", err)
	}

	pool.Lock()
	_, registered := pool.conns[mock.dsn]
	pool.Unlock()
	if !registered {
		t.Errorf("expected the mock to be registered in the pool under %s", mock.dsn)
	}

	if mock.opened != 1 {
		t.Errorf("expected 1 connection on mock to be opened, but there is: %d", mock.opened)
	}

	// defer so the rows gets closed first
	defer func() {
		if mock.opened != 0 {
			t.Errorf("expected no connections on mock to be opened, but there is: %d", mock.opened)
		}
	}()

	mock.PrepareResultSet("SELECT", NewRows([]string{"one", "two"}).AddRow("val1", "val2"), nil)
	rows, err := db.Query("SELECT")
	if err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	defer rows.Close()

	mock.PrepareUpdateCount("UPDATE", 1, nil)
	if _, err = db.Exec("UPDATE"); err != nil {
		t.Errorf("unexpected error: %s", err)
	}

	// now there should be two connections open
	if mock.opened != 2 {
		t.Errorf("expected 2 connection on mock to be opened, but there is: %d", mock.opened)
	}

	if err = db.Close(); err != nil {
		t.Errorf("expected no error on close, but got: %s", err)
	}

	// one is still reserved for rows
	if mock.opened != 1 {
		t.Errorf("expected 1 connection on mock to be still reserved for rows, but there is: %d", mock.opened)
	}
}

func TestTwoOpenConnectionsOnTheSameDSN(t *testing.T) {
	db, mock, err := New()
	if err != nil {
		t.Errorf("expected no error, but got: %s", err)
	}
	defer db.Close()

	db2, mock2, err := New()
	if err != nil {
		t.Errorf("expected no error, but got: %s", err)
	}
	defer db2.Close()

	if db == db2 {
		t.Errorf("expected not the same database instance, but it is the same")
	}
	if mock == mock2 {
		t.Errorf("expected not the same mock instance, but it is the same")
	}
	if mock.dsn == mock2.dsn {
		t.Errorf("expected different dsn, but both are %s", mock.dsn)
	}
}

func TestNewWithDSN(t *testing.T) {
	db, mock, err := NewWithDSN("stmtmock_custom_dsn")
	if err != nil {
		t.Fatalf("expected no error, but got: %s", err)
	}
	defer db.Close()

	if mock.dsn != "stmtmock_custom_dsn" {
		t.Errorf("unexpected dsn: %s", mock.dsn)
	}

	if _, _, err := NewWithDSN("stmtmock_custom_dsn"); err == nil {
		t.Error("expected an error when reusing a dsn")
	}
}

func TestWrongDSN(t *testing.T) {
	t.Parallel()
	if _, err := pool.Open("stmtmock_no_such_dsn"); err == nil {
		t.Error("expected an error opening an unknown dsn")
	}
}

func TestFailingOption(t *testing.T) {
	if _, _, err := New(ValueConverterOption(nil)); err == nil {
		t.Error("expected a nil converter to be rejected")
	}
	if _, _, err := New(LoggerOption(nil)); err == nil {
		t.Error("expected a nil logger to be rejected")
	}
}
