package main

import (
	"fmt"
	"strconv"
	"strings"
)

// emitCreateTable produces an executable CREATE TABLE statement from an
// introspected table definition. It is a pure transformation: the same input
// always yields byte-identical output. Column types are reproduced verbatim.
func emitCreateTable(t TableSchema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", quoteIdent(t.Name))

	var lines []string
	for _, col := range t.Columns {
		lines = append(lines, "  "+emitColumn(col))
	}

	if t.PrimaryKey != nil {
		lines = append(lines, "  PRIMARY KEY ("+identList(t.PrimaryKey.Columns)+")")
	}
	for _, idx := range t.Indexes {
		lines = append(lines, "  "+emitIndex(idx))
	}
	for _, fk := range t.ForeignKeys {
		lines = append(lines, "  "+emitForeignKey(fk))
	}

	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n)")
	return b.String()
}

func emitColumn(col Column) string {
	var b strings.Builder
	b.WriteString(quoteIdent(col.Name))
	b.WriteByte(' ')
	b.WriteString(col.ColumnType)

	if !col.Nullable {
		b.WriteString(" NOT NULL")
	}
	if col.Default != nil {
		b.WriteString(" DEFAULT ")
		b.WriteString(emitDefault(*col.Default, isExpressionDefault(col.Extra)))
	}
	if extra := emitExtra(col.Extra); extra != "" {
		b.WriteByte(' ')
		b.WriteString(extra)
	}
	return b.String()
}

// emitDefault renders an INFORMATION_SCHEMA COLUMN_DEFAULT value as a DDL
// default expression. The catalog value is dialect-dependent: MariaDB reports
// string defaults pre-quoted ('abc') and expressions verbatim, MySQL 8 marks
// expression defaults with DEFAULT_GENERATED in EXTRA. Both forms pass
// through unchanged; only a bare MySQL string default gains quoting.
func emitDefault(raw string, expression bool) string {
	if expression {
		return raw
	}
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch lower {
	case "null":
		return "NULL"
	case "current_timestamp", "current_timestamp()", "now()":
		return "CURRENT_TIMESTAMP"
	}
	if strings.HasPrefix(lower, "current_timestamp(") && strings.HasSuffix(lower, ")") {
		return strings.ToUpper(raw)
	}
	if len(raw) >= 2 && strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'") {
		return raw
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		return raw
	}
	return quoteString(raw)
}

// isExpressionDefault reports whether EXTRA marks the column's default as an
// expression rather than a literal (MySQL 8's DEFAULT_GENERATED).
func isExpressionDefault(extra string) bool {
	return strings.Contains(strings.ToLower(extra), "default_generated")
}

// emitExtra normalizes the EXTRA catalog column into DDL attributes.
// MySQL 8 reports DEFAULT_GENERATED noise there; it is not valid DDL.
func emitExtra(extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return ""
	}
	lower := strings.ToLower(extra)
	if i := strings.Index(lower, "default_generated"); i >= 0 {
		extra = strings.TrimSpace(extra[:i] + extra[i+len("default_generated"):])
		if extra == "" {
			return ""
		}
		lower = strings.ToLower(extra)
	}
	switch {
	case lower == "auto_increment":
		return "AUTO_INCREMENT"
	case strings.HasPrefix(lower, "on update "):
		return "ON UPDATE " + extra[len("on update "):]
	default:
		return extra
	}
}

func emitIndex(idx Index) string {
	cols := identList(idx.Columns)
	switch {
	case idx.Unique:
		return fmt.Sprintf("UNIQUE KEY %s (%s)", quoteIdent(idx.Name), cols)
	case idx.Type == "FULLTEXT":
		return fmt.Sprintf("FULLTEXT KEY %s (%s)", quoteIdent(idx.Name), cols)
	case idx.Type == "SPATIAL":
		return fmt.Sprintf("SPATIAL KEY %s (%s)", quoteIdent(idx.Name), cols)
	default:
		return fmt.Sprintf("KEY %s (%s)", quoteIdent(idx.Name), cols)
	}
}

func emitForeignKey(fk ForeignKey) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		quoteIdent(fk.Name), identList(fk.Columns), quoteIdent(fk.RefTable), identList(fk.RefColumns))
	if rule := strings.ToUpper(fk.DeleteRule); rule != "" && rule != "RESTRICT" && rule != "NO ACTION" {
		b.WriteString(" ON DELETE " + rule)
	}
	if rule := strings.ToUpper(fk.UpdateRule); rule != "" && rule != "RESTRICT" && rule != "NO ACTION" {
		b.WriteString(" ON UPDATE " + rule)
	}
	return b.String()
}

func identList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ",")
}
