package store

import "strconv"

type (
	// ValuesListener fires once per pass when any keyed value changed.
	ValuesListener func(s *Store)
	// ValueListener fires for one keyed value, with the pass's net old and
	// new values.
	ValueListener func(s *Store, valueId Id, newValue, oldValue Value)
	// TablesListener fires once per pass when any tabular data changed.
	TablesListener func(s *Store)
	// TableListener fires for each affected table.
	TableListener func(s *Store, tableId Id)
	// RowListener fires for each affected row.
	RowListener func(s *Store, tableId, rowId Id)
	// CellListener fires for each changed cell, with the pass's net old and
	// new values.
	CellListener func(s *Store, tableId, rowId, cellId Id, newValue, oldValue Value)
	// SortedRowIdsListener fires when the watched sorted-row-id view changed,
	// with the freshly computed ids.
	SortedRowIdsListener func(s *Store, tableId, cellId Id, descending bool, sortedRowIds []Id)
	// TableCellIdsListener fires when the set of cell ids used across a table
	// changed.
	TableCellIdsListener func(s *Store, tableId Id, cellIds []Id)
)

type listenerKind uint8

const (
	listenValues listenerKind = iota + 1
	listenValue
	listenTables
	listenTable
	listenRow
	listenCell
	listenSortedRowIds
	listenTableCellIds
)

// listenerEntry is one registration in any registry. A single id space and
// order covers all granularities so DelListener works on any id and firing
// within a granularity follows registration order.
type listenerEntry struct {
	id   Id
	kind listenerKind

	valueId Id
	tableId Id
	rowId   Id
	cellId  Id

	valuesFn  ValuesListener
	valueFn   ValueListener
	tablesFn  TablesListener
	tableFn   TableListener
	rowFn     RowListener
	cellFn    CellListener
	sortedFn  SortedRowIdsListener
	cellIdsFn TableCellIdsListener

	// sorted-row-ids view parameters, plus the hash of the last snapshot
	// delivered, used to suppress no-op recomputations.
	descending bool
	offset     int
	limit      int
	lastHash   uint64
}

func (s *Store) addListener(e *listenerEntry) Id {
	s.nextListenerId++
	e.id = strconv.FormatUint(s.nextListenerId, 10)
	s.listeners[e.id] = e
	s.listenerOrder = append(s.listenerOrder, e.id)
	return e.id
}

// AddValuesListener registers a listener fired once per pass in which any
// keyed value changed. Returns the listener id.
func (s *Store) AddValuesListener(fn ValuesListener) Id {
	return s.addListener(&listenerEntry{kind: listenValues, valuesFn: fn})
}

// AddValueListener registers a listener on one keyed value.
func (s *Store) AddValueListener(valueId Id, fn ValueListener) Id {
	return s.addListener(&listenerEntry{kind: listenValue, valueId: valueId, valueFn: fn})
}

// AddTablesListener registers a listener fired once per pass in which any
// tabular data changed.
func (s *Store) AddTablesListener(fn TablesListener) Id {
	return s.addListener(&listenerEntry{kind: listenTables, tablesFn: fn})
}

// AddTableListener registers a listener on one table.
func (s *Store) AddTableListener(tableId Id, fn TableListener) Id {
	return s.addListener(&listenerEntry{kind: listenTable, tableId: tableId, tableFn: fn})
}

// AddRowListener registers a listener on one row.
func (s *Store) AddRowListener(tableId, rowId Id, fn RowListener) Id {
	return s.addListener(&listenerEntry{kind: listenRow, tableId: tableId, rowId: rowId, rowFn: fn})
}

// AddCellListener registers a listener on one cell.
func (s *Store) AddCellListener(tableId, rowId, cellId Id, fn CellListener) Id {
	return s.addListener(&listenerEntry{
		kind:    listenCell,
		tableId: tableId,
		rowId:   rowId,
		cellId:  cellId,
		cellFn:  fn,
	})
}

// AddSortedRowIdsListener registers a listener on the sorted-row-ids view of
// a table. It fires only when a pass actually changes the resulting id
// sequence. A limit of 0 means unbounded.
func (s *Store) AddSortedRowIdsListener(tableId, cellId Id, descending bool, offset, limit int, fn SortedRowIdsListener) Id {
	return s.addListener(&listenerEntry{
		kind:       listenSortedRowIds,
		tableId:    tableId,
		cellId:     cellId,
		descending: descending,
		offset:     offset,
		limit:      limit,
		sortedFn:   fn,
		lastHash:   hashIds(s.GetSortedRowIds(tableId, cellId, descending, offset, limit)),
	})
}

// AddTableCellIdsListener registers a listener on the set of cell ids in use
// across one table. It fires only when a pass changes that set.
func (s *Store) AddTableCellIdsListener(tableId Id, fn TableCellIdsListener) Id {
	return s.addListener(&listenerEntry{
		kind:      listenTableCellIds,
		tableId:   tableId,
		cellIdsFn: fn,
		lastHash:  hashIds(s.GetTableCellIds(tableId)),
	})
}

// DelListener removes a listener by id, whichever registry it belongs to.
// Unknown ids are ignored.
func (s *Store) DelListener(id Id) {
	if _, ok := s.listeners[id]; !ok {
		return
	}
	delete(s.listeners, id)
	for i, lid := range s.listenerOrder {
		if lid == id {
			s.listenerOrder = append(s.listenerOrder[:i], s.listenerOrder[i+1:]...)
			break
		}
	}
}

// invoke runs one listener, containing panics so one faulty callback cannot
// abort the rest of the pass.
func (s *Store) invoke(id Id, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("store listener panicked", "listener", id, "panic", r)
		}
	}()
	fn()
}

// forEach fires every registered listener of one kind, in registration
// order, skipping entries that fail match. It iterates a snapshot of the
// order so listeners may register or deregister listeners mid-pass without
// corrupting the iteration; a listener removed earlier in the same pass is
// skipped.
func (s *Store) forEach(kind listenerKind, match func(*listenerEntry) bool, fire func(*listenerEntry)) {
	ids := make([]Id, len(s.listenerOrder))
	copy(ids, s.listenerOrder)
	for _, id := range ids {
		e, ok := s.listeners[id]
		if !ok || e.kind != kind {
			continue
		}
		if match != nil && !match(e) {
			continue
		}
		s.invoke(id, func() { fire(e) })
	}
}

type rowKey struct {
	tableId Id
	rowId   Id
}

type cellKey struct {
	tableId Id
	rowId   Id
	cellId  Id
}

// fireChanges is the single notification pass shared by transactions and
// standalone mutations. Changes are deduplicated at each granularity,
// keeping the first old value and the last new value per leaf, then
// listeners fire in a fixed order: per-id value, values aggregate, per
// table, per row, per cell, derived views, tables aggregate. Within each
// granularity, affected ids fire in first-change order and listeners in
// registration order.
func (s *Store) fireChanges(changes []change) {
	var (
		valueIds []Id
		valueOld = map[Id]Value{}
		valueNew = map[Id]Value{}

		tableIds  []Id
		tableSeen = map[Id]bool{}
		rowKeys   []rowKey
		rowSeen   = map[rowKey]bool{}
		cellKeys  []cellKey
		cellOld   = map[cellKey]Value{}
		cellNew   = map[cellKey]Value{}
	)
	markTable := func(tableId Id) {
		if !tableSeen[tableId] {
			tableSeen[tableId] = true
			tableIds = append(tableIds, tableId)
		}
	}
	markRow := func(tableId, rowId Id) {
		k := rowKey{tableId, rowId}
		if !rowSeen[k] {
			rowSeen[k] = true
			rowKeys = append(rowKeys, k)
		}
	}

	for _, ch := range changes {
		switch ch.kind {
		case kindValue:
			if _, seen := valueOld[ch.valueId]; !seen {
				valueOld[ch.valueId] = ch.oldValue
				valueIds = append(valueIds, ch.valueId)
			}
			valueNew[ch.valueId] = ch.newValue
		case kindTable:
			markTable(ch.tableId)
		case kindRow:
			markTable(ch.tableId)
			markRow(ch.tableId, ch.rowId)
		case kindCell:
			markTable(ch.tableId)
			markRow(ch.tableId, ch.rowId)
			k := cellKey{ch.tableId, ch.rowId, ch.cellId}
			if _, seen := cellOld[k]; !seen {
				cellOld[k] = ch.oldValue
				cellKeys = append(cellKeys, k)
			}
			cellNew[k] = ch.newValue
		}
	}

	for _, valueId := range valueIds {
		s.forEach(listenValue,
			func(e *listenerEntry) bool { return e.valueId == valueId },
			func(e *listenerEntry) { e.valueFn(s, valueId, valueNew[valueId], valueOld[valueId]) })
	}
	if len(valueIds) > 0 {
		s.forEach(listenValues, nil, func(e *listenerEntry) { e.valuesFn(s) })
	}

	for _, tableId := range tableIds {
		s.forEach(listenTable,
			func(e *listenerEntry) bool { return e.tableId == tableId },
			func(e *listenerEntry) { e.tableFn(s, tableId) })
	}
	for _, k := range rowKeys {
		s.forEach(listenRow,
			func(e *listenerEntry) bool { return e.tableId == k.tableId && e.rowId == k.rowId },
			func(e *listenerEntry) { e.rowFn(s, k.tableId, k.rowId) })
	}
	for _, k := range cellKeys {
		s.forEach(listenCell,
			func(e *listenerEntry) bool {
				return e.tableId == k.tableId && e.rowId == k.rowId && e.cellId == k.cellId
			},
			func(e *listenerEntry) { e.cellFn(s, k.tableId, k.rowId, k.cellId, cellNew[k], cellOld[k]) })
	}

	// Derived views recompute against post-pass data; the snapshot hash
	// suppresses notifications for passes that reshuffled nothing.
	s.forEach(listenSortedRowIds,
		func(e *listenerEntry) bool { return tableSeen[e.tableId] },
		func(e *listenerEntry) {
			ids := s.GetSortedRowIds(e.tableId, e.cellId, e.descending, e.offset, e.limit)
			if h := hashIds(ids); h != e.lastHash {
				e.lastHash = h
				e.sortedFn(s, e.tableId, e.cellId, e.descending, ids)
			}
		})
	s.forEach(listenTableCellIds,
		func(e *listenerEntry) bool { return tableSeen[e.tableId] },
		func(e *listenerEntry) {
			ids := s.GetTableCellIds(e.tableId)
			if h := hashIds(ids); h != e.lastHash {
				e.lastHash = h
				e.cellIdsFn(s, e.tableId, ids)
			}
		})

	if len(tableIds) > 0 {
		s.forEach(listenTables, nil, func(e *listenerEntry) { e.tablesFn(s) })
	}
}
