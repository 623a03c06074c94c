package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ripplekit/ripple/store"
)

// keyed values are set, read, listed and deleted independently of tables
func TestValuesBasics(t *testing.T) {
	s := store.New()
	assert.False(t, s.HasValue("open"))
	assert.Nil(t, s.GetValue("open"))

	s.SetValue("open", true)
	s.SetValue("employees", 3)
	assert.True(t, s.HasValue("open"))
	assert.Equal(t, true, s.GetValue("open"))
	assert.Equal(t, []string{"employees", "open"}, s.GetValueIds())
	assert.Equal(t, store.Values{"open": true, "employees": 3}, s.GetValues())

	s.DelValue("open")
	assert.False(t, s.HasValue("open"))
	assert.Equal(t, []string{"employees"}, s.GetValueIds())

	s.DelValues()
	assert.Empty(t, s.GetValueIds())
}

// SetValues replaces the whole keyed-value set
func TestSetValuesReplaces(t *testing.T) {
	s := store.New()
	s.SetValue("a", 1)
	s.SetValue("b", 2)
	s.SetValues(store.Values{"b": 20, "c": 30})
	assert.Equal(t, store.Values{"b": 20, "c": 30}, s.GetValues())
}

// cells are addressed by table, row and cell id; containers appear on demand
func TestCellBasics(t *testing.T) {
	s := store.New()
	assert.False(t, s.HasTable("pets"))

	s.SetCell("pets", "fido", "species", "dog")
	assert.True(t, s.HasTable("pets"))
	assert.True(t, s.HasRow("pets", "fido"))
	assert.True(t, s.HasCell("pets", "fido", "species"))
	assert.Equal(t, "dog", s.GetCell("pets", "fido", "species"))
	assert.Nil(t, s.GetCell("pets", "fido", "legs"))
	assert.Nil(t, s.GetCell("zoo", "any", "thing"))

	s.SetCell("pets", "fido", "legs", 4)
	assert.Equal(t, []string{"legs", "species"}, s.GetCellIds("pets", "fido"))
	assert.Equal(t, store.Row{"species": "dog", "legs": 4}, s.GetRow("pets", "fido"))
}

// deleting the last cell removes the row, and the last row removes the table
func TestEmptyContainersNeverObservable(t *testing.T) {
	s := store.New()
	s.SetCell("pets", "fido", "species", "dog")
	s.DelCell("pets", "fido", "species")
	assert.False(t, s.HasRow("pets", "fido"))
	assert.False(t, s.HasTable("pets"))
	assert.Empty(t, s.GetTableIds())
}

// SetRow replaces a row wholesale, SetPartialRow merges
func TestSetRowAndPartialRow(t *testing.T) {
	s := store.New()
	s.SetRow("pets", "fido", store.Row{"species": "dog", "legs": 4})
	s.SetRow("pets", "fido", store.Row{"species": "cat"})
	assert.Equal(t, store.Row{"species": "cat"}, s.GetRow("pets", "fido"))

	s.SetPartialRow("pets", "fido", store.Row{"legs": 4})
	assert.Equal(t, store.Row{"species": "cat", "legs": 4}, s.GetRow("pets", "fido"))
}

// AddRow stores under a fresh unique id
func TestAddRow(t *testing.T) {
	s := store.New()
	id1 := s.AddRow("pets", store.Row{"species": "dog"})
	id2 := s.AddRow("pets", store.Row{"species": "cat"})
	assert.NotEmpty(t, id1)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, "dog", s.GetCell("pets", id1, "species"))
	assert.Len(t, s.GetRowIds("pets"), 2)
}

// row, table and dataset deletes cascade through their contents
func TestDeleteCascades(t *testing.T) {
	s := store.New()
	s.SetRow("pets", "fido", store.Row{"species": "dog", "legs": 4})
	s.SetRow("pets", "felix", store.Row{"species": "cat"})
	s.SetRow("stores", "hq", store.Row{"city": "here"})

	s.DelRow("pets", "fido")
	assert.False(t, s.HasRow("pets", "fido"))
	assert.True(t, s.HasRow("pets", "felix"))

	s.DelTable("pets")
	assert.False(t, s.HasTable("pets"))
	assert.True(t, s.HasTable("stores"))

	s.DelTables()
	assert.Empty(t, s.GetTableIds())
}

// SetTable and SetTables replace wholesale
func TestSetTableReplaces(t *testing.T) {
	s := store.New()
	s.SetRow("pets", "fido", store.Row{"species": "dog"})
	s.SetTable("pets", store.Table{
		"felix": {"species": "cat"},
	})
	assert.Equal(t, []string{"felix"}, s.GetRowIds("pets"))

	s.SetTables(store.Tables{
		"stores": {"hq": {"city": "here"}},
	})
	assert.Equal(t, []string{"stores"}, s.GetTableIds())
}

// reads hand out copies; mutating them does not touch stored data
func TestReadsReturnCopies(t *testing.T) {
	s := store.New()
	s.SetRow("pets", "fido", store.Row{"species": "dog"})

	row := s.GetRow("pets", "fido")
	row["species"] = "cat"
	assert.Equal(t, "dog", s.GetCell("pets", "fido", "species"))

	tables := s.GetTables()
	tables["pets"]["fido"]["species"] = "fish"
	assert.Equal(t, "dog", s.GetCell("pets", "fido", "species"))

	values := s.GetValues()
	values["open"] = true
	assert.False(t, s.HasValue("open"))
}
