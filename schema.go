package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// introspectSchema reads all tables, columns, indexes, and foreign keys for
// one database and returns them in foreign-key dependency order.
func introspectSchema(ctx context.Context, s *Session, dbName string) (*Schema, error) {
	tables, err := introspectTables(ctx, s.db, dbName)
	if err != nil {
		return nil, &IntrospectError{Err: fmt.Errorf("introspect tables: %w", err)}
	}

	for i := range tables {
		t := &tables[i]

		cols, err := introspectColumns(ctx, s.db, dbName, t.Name)
		if err != nil {
			return nil, &IntrospectError{Table: t.Name, Err: fmt.Errorf("introspect columns: %w", err)}
		}
		if len(cols) == 0 {
			return nil, &IntrospectError{Table: t.Name, Err: fmt.Errorf("no columns in catalog")}
		}
		t.Columns = cols

		indexes, err := introspectIndexes(ctx, s.db, dbName, t.Name)
		if err != nil {
			return nil, &IntrospectError{Table: t.Name, Err: fmt.Errorf("introspect indexes: %w", err)}
		}
		for _, idx := range indexes {
			if idx.IsPrimary {
				pk := idx
				t.PrimaryKey = &pk
			} else {
				t.Indexes = append(t.Indexes, idx)
			}
		}

		fks, err := introspectForeignKeys(ctx, s.db, dbName, t.Name)
		if err != nil {
			return nil, &IntrospectError{Table: t.Name, Err: fmt.Errorf("introspect foreign keys: %w", err)}
		}
		t.ForeignKeys = fks
	}

	ordered, err := orderByDependency(tables)
	if err != nil {
		return nil, err
	}

	return &Schema{Database: dbName, Tables: ordered}, nil
}

func introspectTables(ctx context.Context, db *sql.DB, dbName string) ([]TableSchema, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
		 WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
		 ORDER BY TABLE_NAME`,
		dbName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []TableSchema
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, TableSchema{Name: name})
	}
	return tables, rows.Err()
}

func introspectColumns(ctx context.Context, db *sql.DB, dbName, tableName string) ([]Column, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT COLUMN_NAME, DATA_TYPE, COLUMN_TYPE, IS_NULLABLE,
		        COLUMN_DEFAULT, EXTRA, ORDINAL_POSITION
		 FROM INFORMATION_SCHEMA.COLUMNS
		 WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		 ORDER BY ORDINAL_POSITION`,
		dbName, tableName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var c Column
		var nullable string
		var dflt sql.NullString
		if err := rows.Scan(
			&c.Name, &c.DataType, &c.ColumnType,
			&nullable, &dflt, &c.Extra, &c.OrdinalPos,
		); err != nil {
			return nil, err
		}
		c.Nullable = nullable == "YES"
		if dflt.Valid {
			c.Default = &dflt.String
		}
		c.DataType = strings.ToLower(c.DataType)
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func introspectIndexes(ctx context.Context, db *sql.DB, dbName, tableName string) ([]Index, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT INDEX_NAME, COLUMN_NAME, NON_UNIQUE, SEQ_IN_INDEX, INDEX_TYPE
		 FROM INFORMATION_SCHEMA.STATISTICS
		 WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		 ORDER BY INDEX_NAME, SEQ_IN_INDEX`,
		dbName, tableName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	indexMap := make(map[string]*Index)
	var indexOrder []string

	for rows.Next() {
		var idxName, colName, indexType string
		var nonUnique, seqInIndex int
		if err := rows.Scan(&idxName, &colName, &nonUnique, &seqInIndex, &indexType); err != nil {
			return nil, err
		}

		idx, ok := indexMap[idxName]
		if !ok {
			idx = &Index{
				Name:      idxName,
				Unique:    nonUnique == 0,
				IsPrimary: idxName == "PRIMARY",
				Type:      strings.ToUpper(indexType),
			}
			indexMap[idxName] = idx
			indexOrder = append(indexOrder, idxName)
		}
		idx.Columns = append(idx.Columns, colName)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var indexes []Index
	for _, name := range indexOrder {
		indexes = append(indexes, *indexMap[name])
	}
	return indexes, nil
}

func introspectForeignKeys(ctx context.Context, db *sql.DB, dbName, tableName string) ([]ForeignKey, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT kcu.CONSTRAINT_NAME, kcu.COLUMN_NAME,
		        kcu.REFERENCED_TABLE_NAME, kcu.REFERENCED_COLUMN_NAME,
		        rc.UPDATE_RULE, rc.DELETE_RULE
		 FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
		 JOIN INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS rc
		   ON kcu.CONSTRAINT_NAME = rc.CONSTRAINT_NAME
		   AND kcu.TABLE_SCHEMA = rc.CONSTRAINT_SCHEMA
		 WHERE kcu.TABLE_SCHEMA = ? AND kcu.TABLE_NAME = ?
		   AND kcu.REFERENCED_TABLE_NAME IS NOT NULL
		 ORDER BY kcu.CONSTRAINT_NAME, kcu.ORDINAL_POSITION`,
		dbName, tableName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fkMap := make(map[string]*ForeignKey)
	var fkOrder []string

	for rows.Next() {
		var fkName, colName, refTable, refCol, updateRule, deleteRule string
		if err := rows.Scan(&fkName, &colName, &refTable, &refCol, &updateRule, &deleteRule); err != nil {
			return nil, err
		}

		fk, ok := fkMap[fkName]
		if !ok {
			fk = &ForeignKey{
				Name:       fkName,
				RefTable:   refTable,
				UpdateRule: updateRule,
				DeleteRule: deleteRule,
			}
			fkMap[fkName] = fk
			fkOrder = append(fkOrder, fkName)
		}
		fk.Columns = append(fk.Columns, colName)
		fk.RefColumns = append(fk.RefColumns, refCol)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var fks []ForeignKey
	for _, name := range fkOrder {
		fks = append(fks, *fkMap[name])
	}
	return fks, nil
}
