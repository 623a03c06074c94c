package store

import "reflect"

// equalValues is the change gate for stored leaves. DeepEqual rather than
// == because schemaless stores accept uncomparable types.
func equalValues(a, b Value) bool {
	return reflect.DeepEqual(a, b)
}

// GetValue returns the keyed value, or nil when absent.
func (s *Store) GetValue(valueId Id) Value {
	return s.values[valueId]
}

func (s *Store) HasValue(valueId Id) bool {
	_, ok := s.values[valueId]
	return ok
}

// GetValueIds returns the ids of every keyed value, sorted.
func (s *Store) GetValueIds() []Id {
	return sortedIds(s.values)
}

// GetValues returns a copy of all keyed values.
func (s *Store) GetValues() Values {
	out := make(Values, len(s.values))
	for id, v := range s.values {
		out[id] = v
	}
	return out
}

// SetValue stores a keyed value. Writing an equal value is a no-op. A
// schema mismatch degrades to the schema default, or is omitted entirely
// when no usable default exists.
func (s *Store) SetValue(valueId Id, v Value) {
	vetted, keep := s.validateValue(valueId, v)
	if !keep {
		return
	}
	old, had := s.values[valueId]
	if had && equalValues(old, vetted) {
		return
	}
	s.values[valueId] = vetted
	s.didChange(change{kind: kindValue, valueId: valueId, newValue: vetted, oldValue: old})
}

// SetValues replaces the whole keyed-value set: ids absent from values are
// deleted, the rest written, all under one firing pass.
func (s *Store) SetValues(values Values) {
	s.Transaction(func() {
		for _, valueId := range sortedIds(s.values) {
			if _, ok := values[valueId]; !ok {
				s.DelValue(valueId)
			}
		}
		for _, valueId := range sortedIds(values) {
			s.SetValue(valueId, values[valueId])
		}
	})
}

func (s *Store) DelValue(valueId Id) {
	old, had := s.values[valueId]
	if !had {
		return
	}
	delete(s.values, valueId)
	s.didChange(change{kind: kindValue, valueId: valueId, oldValue: old})
}

func (s *Store) DelValues() {
	s.Transaction(func() {
		for _, valueId := range sortedIds(s.values) {
			s.DelValue(valueId)
		}
	})
}
