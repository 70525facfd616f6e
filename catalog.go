package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// backupRun is one row in the local run catalog.
type backupRun struct {
	ID         int64
	Database   string
	Path       string
	StartedAt  time.Time
	FinishedAt time.Time
	Tables     int
	Rows       int64
	Bytes      int64
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS backup_runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	database    TEXT NOT NULL,
	path        TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	tables      INTEGER NOT NULL,
	rows        INTEGER NOT NULL,
	bytes       INTEGER NOT NULL
)`

func openCatalog(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init catalog: %w", err)
	}
	return db, nil
}

// recordBackupRun appends one completed run to the catalog.
func recordBackupRun(ctx context.Context, path string, run backupRun) error {
	db, err := openCatalog(path)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO backup_runs (database, path, started_at, finished_at, tables, rows, bytes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Database, run.Path,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.Tables, run.Rows, run.Bytes,
	)
	if err != nil {
		return fmt.Errorf("record backup run: %w", err)
	}
	return nil
}

// listBackupRuns returns up to limit runs, newest first.
func listBackupRuns(ctx context.Context, path string, limit int) ([]backupRun, error) {
	db, err := openCatalog(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, database, path, started_at, finished_at, tables, rows, bytes
		 FROM backup_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list backup runs: %w", err)
	}
	defer rows.Close()

	var runs []backupRun
	for rows.Next() {
		var r backupRun
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Database, &r.Path, &started, &finished, &r.Tables, &r.Rows, &r.Bytes); err != nil {
			return nil, fmt.Errorf("scan backup run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			r.StartedAt = t
		}
		if t, err := time.Parse(time.RFC3339, finished); err == nil {
			r.FinishedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
