package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// dumpReader yields semicolon-terminated statements from a dump stream one at
// a time, tracking which table section each belongs to via the structural
// markers. Semicolons inside quoted strings, quoted identifiers, and comments
// do not terminate statements.
type dumpReader struct {
	r     *bufio.Reader
	table string // current section; empty before the first marker
}

func newDumpReader(r io.Reader) *dumpReader {
	return &dumpReader{r: bufio.NewReader(r)}
}

// Next returns the next statement and the table section it belongs to.
// io.EOF signals a clean end of stream.
func (d *dumpReader) Next() (string, string, error) {
	var current strings.Builder
	var quote byte // active quote char: ', " or `; 0 when outside

	for {
		c, err := d.r.ReadByte()
		if err == io.EOF {
			if s := strings.TrimSpace(current.String()); s != "" {
				return s, d.table, nil
			}
			return "", "", io.EOF
		}
		if err != nil {
			return "", "", fmt.Errorf("read dump: %w", err)
		}

		switch {
		case quote != 0:
			current.WriteByte(c)
			if c == '\\' && quote != '`' {
				next, err := d.r.ReadByte()
				if err == nil {
					current.WriteByte(next)
				}
				continue
			}
			if c == quote {
				// Doubled quote chars stay inside the literal.
				if peek, err := d.r.Peek(1); err == nil && peek[0] == quote {
					d.r.ReadByte()
					current.WriteByte(quote)
					continue
				}
				quote = 0
			}

		case c == '\'' || c == '"' || c == '`':
			quote = c
			current.WriteByte(c)

		case c == '-' && atLineStart(current.String()):
			if peek, err := d.r.Peek(1); err == nil && peek[0] == '-' {
				d.r.ReadByte()
				if err := d.skipComment(); err != nil {
					return "", "", err
				}
				continue
			}
			current.WriteByte(c)

		case c == '#' && atLineStart(current.String()):
			if err := d.skipComment(); err != nil {
				return "", "", err
			}

		case c == ';':
			if s := strings.TrimSpace(current.String()); s != "" {
				return s, d.table, nil
			}
			current.Reset()

		default:
			current.WriteByte(c)
		}
	}
}

// skipComment consumes the rest of a comment line and records table markers.
func (d *dumpReader) skipComment() error {
	line, err := d.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read dump: %w", err)
	}
	text := strings.TrimSpace(line)
	if name, ok := strings.CutPrefix(text, "Table:"); ok {
		if t := strings.TrimSpace(name); t != "" {
			d.table = t
		}
	}
	return nil
}

// atLineStart reports whether the pending statement text has no content on
// the current line, i.e. a comment opener here starts a comment.
func atLineStart(pending string) bool {
	if i := strings.LastIndexByte(pending, '\n'); i >= 0 {
		pending = pending[i+1:]
	}
	return strings.TrimSpace(pending) == ""
}

// runRestore replays a dump file against the endpoint. Each table section
// runs inside its own transaction: a table either restores completely or not
// at all, and the first failing table aborts the rest of the run.
func runRestore(ctx context.Context, ep Endpoint, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dump file: %w", err)
	}
	defer f.Close()

	log.Infof("connecting to %s...", ep.Addr())
	session, err := openSession(ctx, ep)
	if err != nil {
		return err
	}
	defer session.Close()

	start := time.Now()
	tables, err := replayDump(ctx, session, f)
	if err != nil {
		return err
	}

	log.Infof("restore completed: %d tables in %s", tables, time.Since(start).Round(time.Millisecond))
	return nil
}

// replayDump executes a dump stream against the session, one transaction per
// table section.
func replayDump(ctx context.Context, session *Session, r io.Reader) (int, error) {
	reader := newDumpReader(r)

	var (
		group      []string
		groupTable string
		tables     int
	)

	replayGroup := func() error {
		if len(group) == 0 {
			return nil
		}
		name := groupTable
		if name == "" {
			name = "(preamble)"
		}
		log.Infof("restoring %s (%d statements)...", name, len(group))

		// Statements before the first table marker are session-scoped
		// (SET FOREIGN_KEY_CHECKS and the like); they run outside any
		// transaction so they stay in effect for the whole replay.
		if groupTable == "" {
			for i, stmt := range group {
				if _, err := session.Exec(ctx, stmt); err != nil {
					return &RestoreError{Table: name, StatementIndex: i, Err: err}
				}
			}
			group = group[:0]
			return nil
		}

		err := session.WithinTx(ctx, func(tx *sql.Tx) error {
			for i, stmt := range group {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return &RestoreError{Table: name, StatementIndex: i, Err: err}
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		tables++
		group = group[:0]
		return nil
	}

	for {
		stmt, table, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return tables, err
		}
		if table != groupTable {
			if err := replayGroup(); err != nil {
				return tables, err
			}
			groupTable = table
		}
		group = append(group, stmt)
	}
	if err := replayGroup(); err != nil {
		return tables, err
	}
	return tables, nil
}
