package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Session owns exactly one live connection to a database. Closing releases it
// unconditionally.
type Session struct {
	db       *sql.DB
	endpoint Endpoint
}

// openSession connects to the endpoint and verifies the connection with a
// ping. Network or authentication failures surface as *ConnectError.
func openSession(ctx context.Context, ep Endpoint) (*Session, error) {
	db, err := sql.Open("mysql", ep.dsn())
	if err != nil {
		return nil, &ConnectError{Endpoint: ep.Addr(), Err: err}
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &ConnectError{Endpoint: ep.Addr(), Err: err}
	}
	return &Session{db: db, endpoint: ep}, nil
}

// newSessionFromDB wraps an existing database handle. Used by tests.
func newSessionFromDB(db *sql.DB, ep Endpoint) *Session {
	return &Session{db: db, endpoint: ep}
}

func (s *Session) Close() error {
	return s.db.Close()
}

// Exec runs a single statement outside any explicit transaction.
func (s *Session) Exec(ctx context.Context, stmt string) (int64, error) {
	res, err := s.db.ExecContext(ctx, stmt)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// StreamRows starts a full-table read. The returned rows are fetched from the
// wire incrementally as Next() advances; the result set is never materialized
// client-side.
func (s *Session) StreamRows(ctx context.Context, table string, columns []string) (*sql.Rows, error) {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = quoteIdent(c)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), quoteIdent(table))
	return s.db.QueryContext(ctx, query)
}

// WithinTx runs fn inside a transaction. The transaction commits if fn
// returns nil and rolls back on error or panic.
func (s *Session) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(tx)
}

// quoteIdent quotes a MySQL identifier with backticks.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
