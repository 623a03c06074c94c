// Package store implements a structured multi-entity reactive store: a set
// of keyed values plus a nested table/row/cell dataset, with listener
// registries at every granularity, optional schemas, and transactional
// mutation batching.
//
// Like the signals runtime it assumes a single synchronous call stack; a
// mutation returns only after every affected listener has fired.
package store

import (
	"log/slog"
	"sort"
)

// Id addresses values, tables, rows, cells and listeners.
type Id = string

// Value is a stored leaf. Schemas restrict values to number, string or
// boolean; without a schema any type is accepted.
type Value = any

type (
	Row    = map[Id]Value
	Table  = map[Id]Row
	Tables = map[Id]Table
	Values = map[Id]Value
)

type Store struct {
	logger *slog.Logger

	values Values
	tables Tables

	valuesSchema    ValuesSchema
	tablesSchema    TablesSchema
	hasValuesSchema bool
	hasTablesSchema bool

	nextListenerId uint64
	listeners      map[Id]*listenerEntry
	listenerOrder  []Id

	txDepth   int
	txChanges []change
}

type Option func(*Store)

// WithLogger overrides the logger used for recovered listener panics and
// persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		logger:    slog.Default(),
		values:    Values{},
		tables:    Tables{},
		listeners: map[Id]*listenerEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func sortedIds[T any](m map[Id]T) []Id {
	ids := make([]Id, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func copyRow(row Row) Row {
	out := make(Row, len(row))
	for id, v := range row {
		out[id] = v
	}
	return out
}

func copyTable(table Table) Table {
	out := make(Table, len(table))
	for id, row := range table {
		out[id] = copyRow(row)
	}
	return out
}
