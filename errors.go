package main

import "fmt"

// ConfigError reports a missing or invalid configuration field, detected
// before any connection is opened.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// ConnectError reports a failure to reach or authenticate to the database.
type ConnectError struct {
	Endpoint string
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// IntrospectError reports a catalog read failure or an unresolvable foreign
// key reference. Table is empty for database-level failures.
type IntrospectError struct {
	Table string
	Err   error
}

func (e *IntrospectError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("introspect: %v", e.Err)
	}
	return fmt.Sprintf("introspect %s: %v", e.Table, e.Err)
}

func (e *IntrospectError) Unwrap() error { return e.Err }

// DumpError reports a streaming read failure while dumping a table's data.
// RowsEmitted counts the rows already written to the dump before the failure;
// the partial dump file is left on disk.
type DumpError struct {
	Table       string
	RowsEmitted int64
	Err         error
}

func (e *DumpError) Error() string {
	return fmt.Sprintf("dump %s: after %d rows: %v", e.Table, e.RowsEmitted, e.Err)
}

func (e *DumpError) Unwrap() error { return e.Err }

// RestoreError reports a statement execution failure during restore.
// StatementIndex is the zero-based position of the failed statement within the
// table's section; the table's transaction has already been rolled back.
type RestoreError struct {
	Table          string
	StatementIndex int
	Err            error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore %s: statement %d: %v", e.Table, e.StatementIndex, e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }

// RetentionError reports files that could not be deleted during pruning.
// It is non-fatal: the backup that was already written stays valid.
type RetentionError struct {
	Paths []string
	Err   error
}

func (e *RetentionError) Error() string {
	return fmt.Sprintf("retention: failed to delete %d file(s): %v", len(e.Paths), e.Err)
}

func (e *RetentionError) Unwrap() error { return e.Err }
