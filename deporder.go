package main

import (
	"fmt"
	"sort"
)

// orderByDependency sorts tables so that every table referenced via a foreign
// key precedes the tables that reference it. Ties are broken in catalog
// (name) order so the result is deterministic. If the foreign-key graph
// contains a cycle, the remaining tables are appended in catalog order; the
// dump disables foreign key checks during replay, so cyclic schemas still
// restore.
//
// A foreign key referencing a table that is not in the catalog is an
// introspection failure.
func orderByDependency(tables []TableSchema) ([]TableSchema, error) {
	byName := make(map[string]*TableSchema, len(tables))
	names := make([]string, 0, len(tables))
	for i := range tables {
		byName[tables[i].Name] = &tables[i]
		names = append(names, tables[i].Name)
	}
	sort.Strings(names)

	// dependents[y] = tables with a foreign key referencing y
	dependents := make(map[string][]string, len(tables))
	inDegree := make(map[string]int, len(tables))
	for _, name := range names {
		inDegree[name] = 0
	}
	for _, name := range names {
		t := byName[name]
		seen := make(map[string]bool)
		for _, fk := range t.ForeignKeys {
			if fk.RefTable == t.Name {
				continue // self-reference is not an ordering constraint
			}
			if _, ok := byName[fk.RefTable]; !ok {
				return nil, &IntrospectError{
					Table: t.Name,
					Err:   fmt.Errorf("foreign key %s references unknown table %s", fk.Name, fk.RefTable),
				}
			}
			if seen[fk.RefTable] {
				continue
			}
			seen[fk.RefTable] = true
			dependents[fk.RefTable] = append(dependents[fk.RefTable], t.Name)
			inDegree[t.Name]++
		}
	}

	var ready []string
	for _, name := range names {
		if inDegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	ordered := make([]TableSchema, 0, len(tables))
	emitted := make(map[string]bool, len(tables))
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]

		ordered = append(ordered, *byName[name])
		emitted[name] = true
		for _, dep := range dependents[name] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	// Cycle remnants, in catalog order.
	if len(ordered) < len(tables) {
		for _, name := range names {
			if !emitted[name] {
				ordered = append(ordered, *byName[name])
			}
		}
	}

	return ordered, nil
}
