package store

import (
	"encoding/json"
	"fmt"

	"github.com/ripplekit/ripple/persist"
)

// storeContent is the serialized shape of a whole store: keyed values plus
// tabular data.
type storeContent struct {
	Values Values `json:"values"`
	Tables Tables `json:"tables"`
}

// Persister saves and loads a store's full content through a persistence
// adapter under one key. Loads and saves are fail-soft: adapter and codec
// errors are returned, never panicked, and a failed load leaves the store
// untouched.
type Persister struct {
	store   *Store
	adapter persist.Adapter
	key     string

	valuesListenerId Id
	tablesListenerId Id
}

// NewPersister binds a store to an adapter key. Nothing is read or written
// until Load, Save or StartAutoSave is called.
func NewPersister(s *Store, adapter persist.Adapter, key string) *Persister {
	return &Persister{store: s, adapter: adapter, key: key}
}

// Save serializes the store's current content and writes it to the adapter.
func (p *Persister) Save() error {
	content := storeContent{
		Values: p.store.GetValues(),
		Tables: p.store.GetTables(),
	}
	bs, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal store content: %w", err)
	}
	if err := p.adapter.Save(p.key, string(bs)); err != nil {
		return fmt.Errorf("save store content: %w", err)
	}
	return nil
}

// Load replaces the store's content with what the adapter holds. A missing
// key is not an error and leaves the store as it was. The replacement runs
// as one transaction, so listeners see a single firing pass.
func (p *Persister) Load() error {
	data, ok, err := p.adapter.Load(p.key)
	if err != nil {
		return fmt.Errorf("load store content: %w", err)
	}
	if !ok {
		return nil
	}
	var content storeContent
	if err := json.Unmarshal([]byte(data), &content); err != nil {
		return fmt.Errorf("unmarshal store content: %w", err)
	}
	p.store.Transaction(func() {
		p.store.SetValues(content.Values)
		p.store.SetTables(content.Tables)
	})
	return nil
}

// StartAutoSave saves once, then registers aggregate listeners so every
// subsequent firing pass writes the store through. Save failures are logged
// and the store keeps running on its in-memory state.
func (p *Persister) StartAutoSave() error {
	if err := p.Save(); err != nil {
		return err
	}
	save := func(s *Store) {
		if err := p.Save(); err != nil {
			s.logger.Error("store autosave failed", "key", p.key, "error", err)
		}
	}
	p.valuesListenerId = p.store.AddValuesListener(save)
	p.tablesListenerId = p.store.AddTablesListener(func(s *Store) { save(s) })
	return nil
}

// Stop deregisters the autosave listeners. Idempotent.
func (p *Persister) Stop() {
	if p.valuesListenerId != "" {
		p.store.DelListener(p.valuesListenerId)
		p.valuesListenerId = ""
	}
	if p.tablesListenerId != "" {
		p.store.DelListener(p.tablesListenerId)
		p.tablesListenerId = ""
	}
}
