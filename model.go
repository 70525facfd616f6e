package main

// Column represents a single column from MySQL INFORMATION_SCHEMA.
type Column struct {
	Name       string
	DataType   string // base type, e.g. "int", "varchar", "blob"
	ColumnType string // full declared type, e.g. "int(11) unsigned", "enum('a','b')"
	Nullable   bool
	Default    *string
	Extra      string // e.g. "auto_increment", "on update CURRENT_TIMESTAMP"
	OrdinalPos int
}

// Index represents a MySQL index (may span multiple columns).
type Index struct {
	Name      string
	Columns   []string // ordered by SEQ_IN_INDEX
	Unique    bool
	IsPrimary bool
	Type      string // BTREE, FULLTEXT, SPATIAL, HASH
}

// ForeignKey represents a MySQL foreign key constraint.
type ForeignKey struct {
	Name       string
	Columns    []string
	RefTable   string
	RefColumns []string
	UpdateRule string // CASCADE, SET NULL, etc.
	DeleteRule string
}

// TableSchema holds the full introspected definition of one table.
// Columns are ordered by ORDINAL_POSITION; that order is the contract between
// emitted column lists and dumped value tuples.
type TableSchema struct {
	Name        string
	Columns     []Column
	PrimaryKey  *Index
	Indexes     []Index // non-primary indexes
	ForeignKeys []ForeignKey
}

// ColumnNames returns the column names in ordinal order.
func (t *TableSchema) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Schema holds all introspected tables for one database, ordered so that no
// table appears before a table it references via a foreign key.
type Schema struct {
	Database string
	Tables   []TableSchema
}
