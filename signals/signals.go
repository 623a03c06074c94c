package signals

import (
	"encoding/json"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/ripplekit/ripple/persist"
)

// WriteableSignal is a mutable reactive cell. Reads inside a computation
// register that computation as a dependent; writes of a different value
// synchronously re-run every dependent.
type WriteableSignal[T comparable] struct {
	rc    *ReactiveContext
	value T

	// dependents is a set so a computation that reads the signal several
	// times in one run is still only notified once per write.
	dependents mapset.Set[*computation]

	persistKey string
	adapter    persist.Adapter
}

// Signal creates a writeable signal holding initial.
func Signal[T comparable](rc *ReactiveContext, initial T) *WriteableSignal[T] {
	return &WriteableSignal[T]{
		rc:         rc,
		value:      initial,
		dependents: mapset.NewThreadUnsafeSet[*computation](),
	}
}

// PersistentSignal creates a signal whose value is loaded from and written
// through to adapter under key. A missing or corrupt stored value falls
// back to initial; persistence failures are logged and never roll back the
// in-memory value.
func PersistentSignal[T comparable](rc *ReactiveContext, key string, initial T, adapter persist.Adapter) *WriteableSignal[T] {
	s := Signal(rc, initial)
	s.persistKey = key
	s.adapter = adapter

	data, ok, err := adapter.Load(key)
	if err != nil {
		rc.logger.Error("load persisted signal", "key", key, "error", err)
		return s
	}
	if !ok {
		return s
	}
	var stored T
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		rc.logger.Error("corrupt persisted signal, keeping initial value", "key", key, "error", err)
		return s
	}
	s.value = stored
	return s
}

// Value returns the current value. When a computation is active it is
// registered as a dependent, with an unsubscribe closure appended to the
// computation's cleanup list so the edge is dropped before its next run.
func (s *WriteableSignal[T]) Value() T {
	if c := s.rc.active; c != nil {
		s.dependents.Add(c)
		c.addCleanup(func() {
			s.dependents.Remove(c)
		})
	}
	return s.value
}

// Peek returns the current value without registering a dependency.
func (s *WriteableSignal[T]) Peek() T {
	return s.value
}

// SetValue stores next and synchronously re-runs every dependent. Writing
// the identical value is a no-op. Notification iterates a snapshot of the
// dependent set, so a dependent unsubscribing or re-subscribing during its
// own run cannot corrupt the pass. Writes from inside a dependent's body
// recurse through the same protocol with no cycle guard.
func (s *WriteableSignal[T]) SetValue(next T) {
	if s.value == next {
		return
	}
	s.value = next
	s.persist()
	for _, c := range s.dependents.ToSlice() {
		c.run()
	}
}

// UpdateValue sets the value computed from the previous one.
func (s *WriteableSignal[T]) UpdateValue(fn func(prev T) T) {
	s.SetValue(fn(s.value))
}

func (s *WriteableSignal[T]) persist() {
	if s.adapter == nil {
		return
	}
	bs, err := json.Marshal(s.value)
	if err != nil {
		s.rc.logger.Error("marshal persisted signal", "key", s.persistKey, "error", err)
		return
	}
	if err := s.adapter.Save(s.persistKey, string(bs)); err != nil {
		s.rc.logger.Error("save persisted signal", "key", s.persistKey, "error", err)
	}
}
