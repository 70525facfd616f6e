package main

import (
	"strings"
	"testing"
)

func usersTableSchema() TableSchema {
	dflt := "0"
	return TableSchema{
		Name: "users",
		Columns: []Column{
			{Name: "id", DataType: "int", ColumnType: "int(11)", Nullable: false, Extra: "auto_increment", OrdinalPos: 1},
			{Name: "name", DataType: "varchar", ColumnType: "varchar(50)", Nullable: false, OrdinalPos: 2},
			{Name: "email", DataType: "varchar", ColumnType: "varchar(100)", Nullable: true, OrdinalPos: 3},
			{Name: "active", DataType: "tinyint", ColumnType: "tinyint(1)", Nullable: false, Default: &dflt, OrdinalPos: 4},
		},
		PrimaryKey: &Index{Name: "PRIMARY", Columns: []string{"id"}, Unique: true, IsPrimary: true, Type: "BTREE"},
		Indexes: []Index{
			{Name: "idx_email", Columns: []string{"email"}, Unique: true, Type: "BTREE"},
		},
	}
}

func TestEmitCreateTable(t *testing.T) {
	ddl := emitCreateTable(usersTableSchema())

	wants := []string{
		"CREATE TABLE `users` (",
		"`id` int(11) NOT NULL AUTO_INCREMENT",
		"`name` varchar(50) NOT NULL",
		"`email` varchar(100)",
		"`active` tinyint(1) NOT NULL DEFAULT 0",
		"PRIMARY KEY (`id`)",
		"UNIQUE KEY `idx_email` (`email`)",
	}
	for _, want := range wants {
		if !strings.Contains(ddl, want) {
			t.Errorf("DDL missing %q:\n%s", want, ddl)
		}
	}

	if strings.Contains(ddl, "`email` varchar(100) NOT NULL") {
		t.Errorf("nullable column must not be NOT NULL:\n%s", ddl)
	}
}

func TestEmitCreateTableIdempotent(t *testing.T) {
	table := usersTableSchema()
	first := emitCreateTable(table)
	second := emitCreateTable(table)
	if first != second {
		t.Errorf("emission is not idempotent:\n%s\n----\n%s", first, second)
	}
}

func TestEmitCreateTableForeignKeys(t *testing.T) {
	table := TableSchema{
		Name: "orders",
		Columns: []Column{
			{Name: "id", DataType: "int", ColumnType: "int(11)", OrdinalPos: 1},
			{Name: "user_id", DataType: "int", ColumnType: "int(11)", OrdinalPos: 2},
		},
		ForeignKeys: []ForeignKey{
			{
				Name:       "fk_orders_user",
				Columns:    []string{"user_id"},
				RefTable:   "users",
				RefColumns: []string{"id"},
				UpdateRule: "RESTRICT",
				DeleteRule: "CASCADE",
			},
		},
	}

	ddl := emitCreateTable(table)
	want := "CONSTRAINT `fk_orders_user` FOREIGN KEY (`user_id`) REFERENCES `users` (`id`) ON DELETE CASCADE"
	if !strings.Contains(ddl, want) {
		t.Errorf("DDL missing %q:\n%s", want, ddl)
	}
	if strings.Contains(ddl, "ON UPDATE RESTRICT") {
		t.Errorf("RESTRICT rule should be omitted:\n%s", ddl)
	}
}

func TestEmitDefault(t *testing.T) {
	tests := []struct {
		in         string
		expression bool
		want       string
	}{
		{"0", false, "0"},
		{"42.5", false, "42.5"},
		{"NULL", false, "NULL"},
		{"CURRENT_TIMESTAMP", false, "CURRENT_TIMESTAMP"},
		{"current_timestamp()", false, "CURRENT_TIMESTAMP"},
		{"current_timestamp(6)", false, "CURRENT_TIMESTAMP(6)"},
		{"pending", false, "'pending'"},
		{"it's", false, `'it\'s'`},
		// MariaDB reports string defaults pre-quoted; they must not be
		// quoted a second time.
		{"'abc'", false, "'abc'"},
		{"'it''s'", false, "'it''s'"},
		{"''", false, "''"},
		// MariaDB reports expressions verbatim, without quotes.
		{"uuid()", true, "uuid()"},
		{"(json_object())", true, "(json_object())"},
	}
	for _, tt := range tests {
		if got := emitDefault(tt.in, tt.expression); got != tt.want {
			t.Errorf("emitDefault(%q, %v) = %q, want %q", tt.in, tt.expression, got, tt.want)
		}
	}
}

func TestEmitColumnExpressionDefault(t *testing.T) {
	dflt := "uuid()"
	col := Column{
		Name:       "token",
		DataType:   "varchar",
		ColumnType: "varchar(36)",
		Nullable:   true,
		Default:    &dflt,
		Extra:      "DEFAULT_GENERATED",
	}

	got := emitColumn(col)
	want := "`token` varchar(36) DEFAULT uuid()"
	if got != want {
		t.Errorf("emitColumn() = %q, want %q", got, want)
	}
}

func TestEmitExtra(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"auto_increment", "AUTO_INCREMENT"},
		{"on update CURRENT_TIMESTAMP", "ON UPDATE CURRENT_TIMESTAMP"},
		{"DEFAULT_GENERATED", ""},
		{"DEFAULT_GENERATED on update CURRENT_TIMESTAMP", "ON UPDATE CURRENT_TIMESTAMP"},
	}
	for _, tt := range tests {
		if got := emitExtra(tt.in); got != tt.want {
			t.Errorf("emitExtra(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmitIndexKinds(t *testing.T) {
	tests := []struct {
		idx  Index
		want string
	}{
		{Index{Name: "k", Columns: []string{"a", "b"}, Type: "BTREE"}, "KEY `k` (`a`,`b`)"},
		{Index{Name: "u", Columns: []string{"a"}, Unique: true, Type: "BTREE"}, "UNIQUE KEY `u` (`a`)"},
		{Index{Name: "ft", Columns: []string{"body"}, Type: "FULLTEXT"}, "FULLTEXT KEY `ft` (`body`)"},
		{Index{Name: "sp", Columns: []string{"geo"}, Type: "SPATIAL"}, "SPATIAL KEY `sp` (`geo`)"},
	}
	for _, tt := range tests {
		if got := emitIndex(tt.idx); got != tt.want {
			t.Errorf("emitIndex(%s) = %q, want %q", tt.idx.Name, got, tt.want)
		}
	}
}
