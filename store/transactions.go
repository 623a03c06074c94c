package store

type changeKind uint8

const (
	kindValue changeKind = iota + 1
	kindTable
	kindRow
	kindCell
)

// change is one structured mutation record. Cell changes carry the full
// address and old/new values; table and row records mark structural changes
// (container created or deleted) that have no cell detail of their own.
type change struct {
	kind     changeKind
	valueId  Id
	tableId  Id
	rowId    Id
	cellId   Id
	newValue Value
	oldValue Value
}

// Transaction runs fn with listener notification deferred: every mutation
// inside appends change records instead of firing, and a single
// deduplicated firing pass runs after fn returns. Transactions nest; only
// the outermost exit fires. Signal/effect propagation elsewhere is
// unaffected by store transactions.
func (s *Store) Transaction(fn func()) {
	s.StartTransaction()
	defer s.FinishTransaction()
	fn()
}

func (s *Store) StartTransaction() {
	s.txDepth++
}

func (s *Store) FinishTransaction() {
	s.txDepth--
	if s.txDepth > 0 {
		return
	}
	changes := s.txChanges
	s.txChanges = nil
	if len(changes) > 0 {
		s.fireChanges(changes)
	}
}

// didChange routes freshly applied change records: queued while a
// transaction is open, otherwise fired immediately through the same
// ordered pass.
func (s *Store) didChange(changes ...change) {
	if len(changes) == 0 {
		return
	}
	if s.txDepth > 0 {
		s.txChanges = append(s.txChanges, changes...)
		return
	}
	s.fireChanges(changes)
}
