package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"
)

// tableMarker is the structural comment that opens each table's section in a
// dump file. The restore engine groups statements by it.
const tableMarker = "-- Table: "

// dumpStats summarizes a completed dump for logging and the run catalog.
type dumpStats struct {
	Tables int
	Rows   int64
}

// writeDump writes the full statement stream for a schema: header, then per
// table in dependency order a marker, DROP TABLE, CREATE TABLE, and the
// batched inserts, then the footer. Writes are strictly sequential, so an
// interrupted dump leaves a prefix-valid file.
func writeDump(ctx context.Context, s *Session, schema *Schema, batchSize int, out io.Writer, now time.Time) (dumpStats, error) {
	var stats dumpStats
	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "-- sql-backup dump\n")
	fmt.Fprintf(w, "-- Database: %s\n", schema.Database)
	fmt.Fprintf(w, "-- Date: %s\n\n", now.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(w, "SET FOREIGN_KEY_CHECKS=0;\n\n")

	for _, t := range schema.Tables {
		log.Infof("dumping table %s...", t.Name)
		fmt.Fprintf(w, "%s%s\n", tableMarker, t.Name)
		fmt.Fprintf(w, "DROP TABLE IF EXISTS %s;\n", quoteIdent(t.Name))
		fmt.Fprintf(w, "%s;\n\n", emitCreateTable(t))

		rows, err := dumpTableData(ctx, s, t, batchSize, w)
		if err != nil {
			w.Flush()
			return stats, err
		}
		log.Infof("  %s: %d rows", t.Name, rows)
		stats.Tables++
		stats.Rows += rows
	}

	fmt.Fprintf(w, "SET FOREIGN_KEY_CHECKS=1;\n\n")
	fmt.Fprintf(w, "-- Dump completed\n")

	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("flush dump: %w", err)
	}
	return stats, nil
}
