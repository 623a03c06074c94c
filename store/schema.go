package store

// Type is the set of leaf types a schema can constrain a value or cell to.
type Type uint8

const (
	TypeNumber Type = iota + 1
	TypeString
	TypeBoolean
)

func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Constraint pins a value or cell to a type, with an optional default used
// when a write (or re-validation) presents a mismatching value. A nil
// Default means mismatches are omitted instead of defaulted.
type Constraint struct {
	Type    Type
	Default Value
}

// ValuesSchema constrains keyed values by value id.
type ValuesSchema map[Id]Constraint

// TablesSchema constrains cells by table id then cell id.
type TablesSchema map[Id]map[Id]Constraint

func typeOf(v Value) (Type, bool) {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return TypeNumber, true
	case string:
		return TypeString, true
	case bool:
		return TypeBoolean, true
	default:
		return 0, false
	}
}

// checkConstraint applies a single constraint: a matching value passes
// through, a mismatch degrades to the default when the default itself
// matches the constrained type, and is omitted otherwise. Never an error;
// schema violations are policy substitutions, observable only via reads.
func checkConstraint(c Constraint, v Value) (Value, bool) {
	if t, known := typeOf(v); known && t == c.Type {
		return v, true
	}
	if c.Default != nil {
		if t, known := typeOf(c.Default); known && t == c.Type {
			return c.Default, true
		}
	}
	return nil, false
}

// validateValue vets a keyed-value write against the values schema. Keys
// without a schema entry accept any value.
func (s *Store) validateValue(valueId Id, v Value) (Value, bool) {
	if !s.hasValuesSchema {
		return v, true
	}
	c, constrained := s.valuesSchema[valueId]
	if !constrained {
		return v, true
	}
	return checkConstraint(c, v)
}

// validateCell vets a cell write against the tables schema. Tables or cells
// without a schema entry accept any value.
func (s *Store) validateCell(tableId, cellId Id, v Value) (Value, bool) {
	if !s.hasTablesSchema {
		return v, true
	}
	cells, constrained := s.tablesSchema[tableId]
	if !constrained {
		return v, true
	}
	c, constrained := cells[cellId]
	if !constrained {
		return v, true
	}
	return checkConstraint(c, v)
}

// SetValuesSchema installs constraints on keyed values and immediately
// re-validates the data already stored, defaulting or dropping values that
// no longer conform.
func (s *Store) SetValuesSchema(schema ValuesSchema) {
	s.valuesSchema = schema
	s.hasValuesSchema = schema != nil
	s.revalidateValues()
}

// DelValuesSchema clears value constraints, restoring permissiveness.
func (s *Store) DelValuesSchema() {
	s.valuesSchema = nil
	s.hasValuesSchema = false
}

// SetTablesSchema installs constraints on table cells and immediately
// re-validates every stored row.
func (s *Store) SetTablesSchema(schema TablesSchema) {
	s.tablesSchema = schema
	s.hasTablesSchema = schema != nil
	s.revalidateTables()
}

// DelTablesSchema clears cell constraints, restoring permissiveness.
func (s *Store) DelTablesSchema() {
	s.tablesSchema = nil
	s.hasTablesSchema = false
}

func (s *Store) revalidateValues() {
	s.Transaction(func() {
		for _, valueId := range sortedIds(s.values) {
			v := s.values[valueId]
			vetted, keep := s.validateValue(valueId, v)
			switch {
			case !keep:
				s.DelValue(valueId)
			case !equalValues(v, vetted):
				s.SetValue(valueId, vetted)
			}
		}
	})
}

func (s *Store) revalidateTables() {
	s.Transaction(func() {
		for _, tableId := range sortedIds(s.tables) {
			table := s.tables[tableId]
			for _, rowId := range sortedIds(table) {
				row := table[rowId]
				for _, cellId := range sortedIds(row) {
					v := row[cellId]
					vetted, keep := s.validateCell(tableId, cellId, v)
					switch {
					case !keep:
						s.DelCell(tableId, rowId, cellId)
					case !equalValues(v, vetted):
						s.SetCell(tableId, rowId, cellId, vetted)
					}
				}
			}
		}
	})
}
