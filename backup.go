package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// backupOptions carries the per-run knobs the CLI resolves from config and
// flags.
type backupOptions struct {
	OutputPath  string
	BatchSize   int
	Incremental int    // keep N timestamped backups; 0 disables rotation
	CatalogPath string // empty disables the run catalog
}

// runBackup dumps one database to a SQL file and returns the path actually
// written. In incremental mode the output name gains a timestamp prefix and
// older siblings beyond the retention count are pruned afterwards.
func runBackup(ctx context.Context, ep Endpoint, opts backupOptions) (string, error) {
	start := time.Now()

	outPath := opts.OutputPath
	if opts.Incremental > 0 {
		outPath = resolveIncrementalPath(opts.OutputPath, start)
	} else if _, err := os.Stat(outPath); err == nil {
		return "", fmt.Errorf("backup path already exists: %s", outPath)
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create backup directory: %w", err)
		}
	}

	log.Infof("connecting to %s...", ep.Addr())
	session, err := openSession(ctx, ep)
	if err != nil {
		return "", err
	}
	defer session.Close()

	log.Infof("introspecting schema '%s'...", ep.Database)
	schema, err := introspectSchema(ctx, session, ep.Database)
	if err != nil {
		return "", err
	}
	log.Infof("found %d tables", len(schema.Tables))

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create dump file: %w", err)
	}

	stats, err := writeDump(ctx, session, schema, opts.BatchSize, f, start)
	if err != nil {
		// The partial dump stays on disk for inspection.
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close dump file: %w", err)
	}

	info, statErr := os.Stat(outPath)
	var size int64
	if statErr == nil {
		size = info.Size()
	}
	log.Infof("backup written to %s (%d tables, %d rows) in %s",
		outPath, stats.Tables, stats.Rows, time.Since(start).Round(time.Millisecond))

	if opts.CatalogPath != "" {
		run := backupRun{
			Database:   ep.Database,
			Path:       outPath,
			StartedAt:  start.UTC(),
			FinishedAt: time.Now().UTC(),
			Tables:     stats.Tables,
			Rows:       stats.Rows,
			Bytes:      size,
		}
		if err := recordBackupRun(ctx, opts.CatalogPath, run); err != nil {
			log.Warnf("catalog: %v", err)
		}
	}

	if opts.Incremental > 0 {
		if err := pruneOldBackups(opts.OutputPath, opts.Incremental); err != nil {
			var rerr *RetentionError
			if errors.As(err, &rerr) {
				log.Warnf("%v", rerr)
			} else {
				log.Warnf("retention: %v", err)
			}
		}
	}

	return outPath, nil
}
