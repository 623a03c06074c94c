package store

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// GetSortedRowIds returns the ids of a table's rows ordered by the value of
// one cell. An empty cellId sorts by row id itself. Rows missing the cell
// sort first; ties break on row id so the order is deterministic. offset
// skips leading ids and a positive limit caps the result; limit 0 means
// unbounded.
func (s *Store) GetSortedRowIds(tableId, cellId Id, descending bool, offset, limit int) []Id {
	table := s.tables[tableId]
	ids := sortedIds(table)
	if cellId != "" {
		sort.SliceStable(ids, func(i, j int) bool {
			less := compareValues(table[ids[i]][cellId], table[ids[j]][cellId])
			if descending {
				return less > 0
			}
			return less < 0
		})
	} else if descending {
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}
	if offset > 0 {
		if offset >= len(ids) {
			return []Id{}
		}
		ids = ids[offset:]
	}
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids
}

// GetTableCellIds returns the sorted union of cell ids in use across every
// row of a table.
func (s *Store) GetTableCellIds(tableId Id) []Id {
	union := map[Id]bool{}
	for _, row := range s.tables[tableId] {
		for cellId := range row {
			union[cellId] = true
		}
	}
	ids := make([]Id, 0, len(union))
	for cellId := range union {
		ids = append(ids, cellId)
	}
	sort.Strings(ids)
	return ids
}

// compareValues orders mixed-type cell values: absent before booleans before
// numbers before strings, then by value within a type. Returns <0, 0 or >0.
func compareValues(a, b Value) int {
	ra, rb := rankValue(a), rankValue(b)
	if ra != rb {
		return ra - rb
	}
	switch ra {
	case 1:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	case 2:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	case 3:
		sa, sb := a.(string), b.(string)
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

func rankValue(v Value) int {
	if v == nil {
		return 0
	}
	switch v.(type) {
	case bool:
		return 1
	case string:
		return 3
	default:
		if _, ok := toFloat(v); ok {
			return 2
		}
		return 4
	}
}

func toFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// hashIds collapses an id sequence into a single comparable digest, used to
// detect whether a derived view actually changed between firing passes.
func hashIds(ids []Id) uint64 {
	d := xxhash.New()
	for _, id := range ids {
		fmt.Fprintf(d, "%d:%s;", len(id), id)
	}
	return d.Sum64()
}
