package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// backupTimestampFormat is fixed-width and sorts lexicographically, so file
// names double as the retention sort key.
const backupTimestampFormat = "20060102_150405"

// resolveIncrementalPath prepends a UTC timestamp to the base file name.
// backups/db.sql becomes backups/20260213_143022_db.sql.
func resolveIncrementalPath(basePath string, now time.Time) string {
	dir := filepath.Dir(basePath)
	name := now.UTC().Format(backupTimestampFormat) + "_" + filepath.Base(basePath)
	return filepath.Join(dir, name)
}

// pruneOldBackups deletes incremental backups beyond the keep count. Siblings
// are matched by the *_<basename> convention and sorted by name, newest last.
// Deletion failures are collected into a *RetentionError; the files that
// could be deleted are still gone.
func pruneOldBackups(basePath string, keep int) error {
	if keep <= 0 {
		return nil
	}
	pattern := filepath.Join(filepath.Dir(basePath), "*_"+filepath.Base(basePath))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}
	sort.Strings(matches)

	if len(matches) <= keep {
		return nil
	}

	var failed []string
	var firstErr error
	for _, old := range matches[:len(matches)-keep] {
		log.Debugf("retention: deleting %s", old)
		if err := os.Remove(old); err != nil {
			failed = append(failed, old)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if len(failed) > 0 {
		return &RetentionError{Paths: failed, Err: firstErr}
	}
	return nil
}
