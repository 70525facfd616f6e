package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// encodeLiteral renders one row value as a MySQL literal. The column's
// introspected type decides whether []byte payloads are binary (hex literal)
// or text (quoted string) — the driver hands both back as []byte.
func encodeLiteral(val any, col Column) string {
	if val == nil {
		return "NULL"
	}

	switch v := val.(type) {
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case time.Time:
		if v.IsZero() {
			return "NULL"
		}
		return "'" + v.UTC().Format("2006-01-02 15:04:05") + "'"
	case []byte:
		if isBinaryColumn(col) {
			return encodeHex(v)
		}
		return quoteString(string(v))
	case string:
		if isBinaryColumn(col) {
			return encodeHex([]byte(v))
		}
		return quoteString(v)
	default:
		return quoteString(fmt.Sprint(v))
	}
}

// isBinaryColumn reports whether a column stores raw bytes rather than text.
func isBinaryColumn(col Column) bool {
	switch col.DataType {
	case "binary", "varbinary", "blob", "tinyblob", "mediumblob", "longblob", "bit",
		"geometry", "point", "linestring", "polygon":
		return true
	}
	return false
}

// encodeHex renders bytes as a MySQL hex literal (X'...'), lossless for any
// payload including empty.
func encodeHex(b []byte) string {
	return "X'" + hex.EncodeToString(b) + "'"
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	"\x1a", `\Z`,
)

// quoteString escapes and single-quotes a string per MySQL literal rules.
func quoteString(s string) string {
	return "'" + stringEscaper.Replace(s) + "'"
}
