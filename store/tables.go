package store

import "github.com/google/uuid"

// GetTables returns a deep copy of the whole tabular dataset.
func (s *Store) GetTables() Tables {
	out := make(Tables, len(s.tables))
	for id, table := range s.tables {
		out[id] = copyTable(table)
	}
	return out
}

// GetTableIds returns the ids of every non-empty table, sorted.
func (s *Store) GetTableIds() []Id {
	return sortedIds(s.tables)
}

// GetTable returns a deep copy of one table, or an empty table when absent.
func (s *Store) GetTable(tableId Id) Table {
	return copyTable(s.tables[tableId])
}

func (s *Store) HasTable(tableId Id) bool {
	_, ok := s.tables[tableId]
	return ok
}

// GetRowIds returns the ids of every row in a table, sorted.
func (s *Store) GetRowIds(tableId Id) []Id {
	return sortedIds(s.tables[tableId])
}

// GetRow returns a copy of one row, or an empty row when absent.
func (s *Store) GetRow(tableId, rowId Id) Row {
	return copyRow(s.tables[tableId][rowId])
}

func (s *Store) HasRow(tableId, rowId Id) bool {
	_, ok := s.tables[tableId][rowId]
	return ok
}

// GetCellIds returns the ids of every cell in a row, sorted.
func (s *Store) GetCellIds(tableId, rowId Id) []Id {
	return sortedIds(s.tables[tableId][rowId])
}

// GetCell returns a cell value, or nil when any part of the address is
// absent.
func (s *Store) GetCell(tableId, rowId, cellId Id) Value {
	return s.tables[tableId][rowId][cellId]
}

func (s *Store) HasCell(tableId, rowId, cellId Id) bool {
	_, ok := s.tables[tableId][rowId][cellId]
	return ok
}

// SetCell writes one cell, creating the enclosing row and table on demand.
// Writing an equal value is a no-op; schema mismatches degrade to the
// schema default or are omitted.
func (s *Store) SetCell(tableId, rowId, cellId Id, v Value) {
	vetted, keep := s.validateCell(tableId, cellId, v)
	if !keep {
		return
	}
	var changes []change
	table, hadTable := s.tables[tableId]
	if !hadTable {
		table = Table{}
		s.tables[tableId] = table
		changes = append(changes, change{kind: kindTable, tableId: tableId})
	}
	row, hadRow := table[rowId]
	if !hadRow {
		row = Row{}
		table[rowId] = row
		changes = append(changes, change{kind: kindRow, tableId: tableId, rowId: rowId})
	}
	old, hadCell := row[cellId]
	if hadCell && equalValues(old, vetted) {
		return
	}
	row[cellId] = vetted
	changes = append(changes, change{
		kind:     kindCell,
		tableId:  tableId,
		rowId:    rowId,
		cellId:   cellId,
		newValue: vetted,
		oldValue: old,
	})
	s.didChange(changes...)
}

// DelCell removes one cell. A row emptied by the removal is itself removed,
// and likewise a table emptied of rows; empty containers are never
// observable.
func (s *Store) DelCell(tableId, rowId, cellId Id) {
	table, ok := s.tables[tableId]
	if !ok {
		return
	}
	row, ok := table[rowId]
	if !ok {
		return
	}
	old, ok := row[cellId]
	if !ok {
		return
	}
	delete(row, cellId)
	changes := []change{{
		kind:     kindCell,
		tableId:  tableId,
		rowId:    rowId,
		cellId:   cellId,
		oldValue: old,
	}}
	if len(row) == 0 {
		delete(table, rowId)
		changes = append(changes, change{kind: kindRow, tableId: tableId, rowId: rowId})
	}
	if len(table) == 0 {
		delete(s.tables, tableId)
		changes = append(changes, change{kind: kindTable, tableId: tableId})
	}
	s.didChange(changes...)
}

// SetRow replaces a row wholesale: cells absent from row are deleted, the
// rest written, all under one firing pass. An empty row deletes the row.
func (s *Store) SetRow(tableId, rowId Id, row Row) {
	s.Transaction(func() {
		for _, cellId := range sortedIds(s.tables[tableId][rowId]) {
			if _, ok := row[cellId]; !ok {
				s.DelCell(tableId, rowId, cellId)
			}
		}
		for _, cellId := range sortedIds(row) {
			s.SetCell(tableId, rowId, cellId, row[cellId])
		}
	})
}

// SetPartialRow writes the given cells into a row, leaving its other cells
// untouched.
func (s *Store) SetPartialRow(tableId, rowId Id, partial Row) {
	s.Transaction(func() {
		for _, cellId := range sortedIds(partial) {
			s.SetCell(tableId, rowId, cellId, partial[cellId])
		}
	})
}

// AddRow stores row under a fresh unique id and returns that id.
func (s *Store) AddRow(tableId Id, row Row) Id {
	rowId := uuid.NewString()
	for s.HasRow(tableId, rowId) {
		rowId = uuid.NewString()
	}
	s.SetRow(tableId, rowId, row)
	return rowId
}

// DelRow removes a row and all its cells.
func (s *Store) DelRow(tableId, rowId Id) {
	s.Transaction(func() {
		for _, cellId := range sortedIds(s.tables[tableId][rowId]) {
			s.DelCell(tableId, rowId, cellId)
		}
	})
}

// DelTable removes a table and all its rows.
func (s *Store) DelTable(tableId Id) {
	s.Transaction(func() {
		for _, rowId := range sortedIds(s.tables[tableId]) {
			s.DelRow(tableId, rowId)
		}
	})
}

// SetTable replaces a table wholesale: rows absent from table are deleted,
// the rest written, all under one firing pass.
func (s *Store) SetTable(tableId Id, table Table) {
	s.Transaction(func() {
		for _, rowId := range sortedIds(s.tables[tableId]) {
			if _, ok := table[rowId]; !ok {
				s.DelRow(tableId, rowId)
			}
		}
		for _, rowId := range sortedIds(table) {
			s.SetRow(tableId, rowId, table[rowId])
		}
	})
}

// SetTables replaces the whole tabular dataset.
func (s *Store) SetTables(tables Tables) {
	s.Transaction(func() {
		for _, tableId := range sortedIds(s.tables) {
			if _, ok := tables[tableId]; !ok {
				s.DelTable(tableId)
			}
		}
		for _, tableId := range sortedIds(tables) {
			s.SetTable(tableId, tables[tableId])
		}
	})
}

// DelTables removes every table.
func (s *Store) DelTables() {
	s.Transaction(func() {
		for _, tableId := range sortedIds(s.tables) {
			s.DelTable(tableId)
		}
	})
}
