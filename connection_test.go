package main

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestWithinTxCommitsOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO t (id) VALUES (1)").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	session := newSessionFromDB(db, Endpoint{})
	err = session.WithinTx(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO t (id) VALUES (1)")
		return err
	})
	if err != nil {
		t.Fatalf("WithinTx() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	session := newSessionFromDB(db, Endpoint{})
	wantErr := errors.New("boom")
	err = session.WithinTx(context.Background(), func(tx *sql.Tx) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithinTx() error = %v, want %v", err, wantErr)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestWithinTxRollsBackOnPanic(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	session := newSessionFromDB(db, Endpoint{})
	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic should propagate")
			}
		}()
		session.WithinTx(context.Background(), func(tx *sql.Tx) error {
			panic("boom")
		})
	}()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSessionExec(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM t").WillReturnResult(sqlmock.NewResult(0, 3))

	session := newSessionFromDB(db, Endpoint{})
	n, err := session.Exec(context.Background(), "DELETE FROM t")
	if err != nil {
		t.Fatalf("Exec() error: %v", err)
	}
	if n != 3 {
		t.Errorf("rows affected = %d, want 3", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"users", "`users`"},
		{"weird`name", "`weird``name`"},
	}
	for _, tt := range tests {
		if got := quoteIdent(tt.in); got != tt.want {
			t.Errorf("quoteIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpenSessionConnectError(t *testing.T) {
	// Port 1 on localhost is not a MySQL server; the ping must fail fast
	// and surface as a ConnectError.
	ep := Endpoint{Host: "127.0.0.1", Port: 1, User: "u", Password: "p", Database: "d"}
	_, err := openSession(context.Background(), ep)
	if err == nil {
		t.Fatal("expected connection error")
	}
	var cerr *ConnectError
	if !errors.As(err, &cerr) {
		t.Fatalf("want *ConnectError, got %T", err)
	}
	if cerr.Endpoint != "127.0.0.1:1" {
		t.Errorf("endpoint = %q, want 127.0.0.1:1", cerr.Endpoint)
	}
}
