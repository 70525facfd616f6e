package main

import (
	"testing"
	"time"
)

func TestEncodeLiteral(t *testing.T) {
	textCol := Column{Name: "name", DataType: "varchar"}
	blobCol := Column{Name: "payload", DataType: "blob"}
	intCol := Column{Name: "id", DataType: "int"}

	ts := time.Date(2026, 2, 13, 14, 30, 22, 0, time.UTC)

	tests := []struct {
		name string
		val  any
		col  Column
		want string
	}{
		{"nil", nil, textCol, "NULL"},
		{"int64", int64(-42), intCol, "-42"},
		{"uint64", uint64(18446744073709551615), intCol, "18446744073709551615"},
		{"float", float64(1.5), intCol, "1.5"},
		{"bool true", true, intCol, "1"},
		{"bool false", false, intCol, "0"},
		{"string", "hello", textCol, "'hello'"},
		{"empty string", "", textCol, "''"},
		{"quote escaped", "it's", textCol, `'it\'s'`},
		{"backslash escaped", `a\b`, textCol, `'a\\b'`},
		{"newline escaped", "a\nb", textCol, `'a\nb'`},
		{"nul escaped", "a\x00b", textCol, `'a\0b'`},
		{"text bytes", []byte("abc"), textCol, "'abc'"},
		{"binary bytes", []byte{0xde, 0xad}, blobCol, "X'dead'"},
		{"empty binary", []byte{}, blobCol, "X''"},
		{"time", ts, Column{Name: "at", DataType: "datetime"}, "'2026-02-13 14:30:22'"},
		{"zero time", time.Time{}, Column{Name: "at", DataType: "datetime"}, "NULL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeLiteral(tt.val, tt.col); got != tt.want {
				t.Errorf("encodeLiteral(%v) = %s, want %s", tt.val, got, tt.want)
			}
		})
	}
}

func TestEncodeLiteralNullVsEmptyString(t *testing.T) {
	col := Column{Name: "email", DataType: "varchar"}
	if encodeLiteral(nil, col) == encodeLiteral("", col) {
		t.Error("NULL and empty string must encode differently")
	}
}

func TestIsBinaryColumn(t *testing.T) {
	tests := []struct {
		dataType string
		want     bool
	}{
		{"binary", true},
		{"varbinary", true},
		{"blob", true},
		{"longblob", true},
		{"bit", true},
		{"varchar", false},
		{"text", false},
		{"int", false},
		{"json", false},
	}
	for _, tt := range tests {
		col := Column{DataType: tt.dataType}
		if got := isBinaryColumn(col); got != tt.want {
			t.Errorf("isBinaryColumn(%s) = %v, want %v", tt.dataType, got, tt.want)
		}
	}
}
