package main

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// dumpTableData streams one table's rows through the session and writes
// batched INSERT statements to w. At most batchSize rows are held in memory
// at a time; every row read appears in exactly one batch, in cursor order.
// Returns the number of rows written.
func dumpTableData(ctx context.Context, s *Session, t TableSchema, batchSize int, w io.Writer) (int64, error) {
	rows, err := s.StreamRows(ctx, t.Name, t.ColumnNames())
	if err != nil {
		return 0, &DumpError{Table: t.Name, Err: err}
	}
	defer rows.Close()

	insertPrefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES\n", quoteIdent(t.Name), identList(t.ColumnNames()))

	var written int64
	batch := make([]string, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, insertPrefix); err != nil {
			return err
		}
		if _, err := io.WriteString(w, strings.Join(batch, ",\n")); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ";\n\n"); err != nil {
			return err
		}
		written += int64(len(batch))
		log.Debugf("  %s: wrote batch of %d rows (%d total)", t.Name, len(batch), written)
		batch = batch[:0]
		return nil
	}

	values := make([]any, len(t.Columns))
	scanTargets := make([]any, len(t.Columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return written, &DumpError{Table: t.Name, RowsEmitted: written, Err: err}
		}

		batch = append(batch, encodeRowTuple(values, t.Columns))
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return written, &DumpError{Table: t.Name, RowsEmitted: written, Err: err}
			}
		}
	}
	if err := rows.Err(); err != nil {
		return written, &DumpError{Table: t.Name, RowsEmitted: written, Err: err}
	}

	if err := flush(); err != nil {
		return written, &DumpError{Table: t.Name, RowsEmitted: written, Err: err}
	}
	return written, nil
}

// encodeRowTuple renders one row as a parenthesized value tuple aligned to
// the table's column order.
func encodeRowTuple(values []any, cols []Column) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(encodeLiteral(v, cols[i]))
	}
	b.WriteByte(')')
	return b.String()
}
