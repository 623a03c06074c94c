package signals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ripplekit/ripple/persist"
	"github.com/ripplekit/ripple/signals"
)

func newTestContext(t *testing.T) *signals.ReactiveContext {
	t.Helper()
	return signals.NewReactiveContext(signals.WithOnError(func(err error) {
		assert.FailNow(t, err.Error())
	}))
}

// should hold and update a value
func TestSignalHoldsValue(t *testing.T) {
	rc := newTestContext(t)
	a := signals.Signal(rc, 1)
	assert.Equal(t, 1, a.Value())
	a.SetValue(2)
	assert.Equal(t, 2, a.Value())
	a.UpdateValue(func(prev int) int { return prev + 10 })
	assert.Equal(t, 12, a.Value())
}

// should not notify dependents when writing the same value
func TestSignalIdenticalWriteIsNoop(t *testing.T) {
	rc := newTestContext(t)
	a := signals.Signal(rc, 1)
	runs := 0
	signals.Effect(rc, func() error {
		a.Value()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)
	a.SetValue(1)
	assert.Equal(t, 1, runs)
	a.SetValue(2)
	assert.Equal(t, 2, runs)
}

// peek should not register a dependency
func TestPeekDoesNotTrack(t *testing.T) {
	rc := newTestContext(t)
	a := signals.Signal(rc, 1)
	b := signals.Signal(rc, 10)
	runs := 0
	signals.Effect(rc, func() error {
		a.Value()
		b.Peek()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)
	b.SetValue(20)
	assert.Equal(t, 1, runs)
	a.SetValue(2)
	assert.Equal(t, 2, runs)
}

// untrack should pause dependency registration for the whole closure
func TestUntrackPausesTracking(t *testing.T) {
	rc := newTestContext(t)
	a := signals.Signal(rc, 1)
	b := signals.Signal(rc, 10)
	runs := 0
	signals.Effect(rc, func() error {
		a.Value()
		signals.Untrack(rc, func() int {
			return b.Value()
		})
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)
	b.SetValue(20)
	assert.Equal(t, 1, runs)
	a.SetValue(2)
	assert.Equal(t, 2, runs)
}

// a persistent signal should write through and reload from its adapter
func TestPersistentSignalRoundTrip(t *testing.T) {
	adapter := persist.NewMemoryAdapter()

	rc := newTestContext(t)
	count := signals.PersistentSignal(rc, "count", 0, adapter)
	assert.Equal(t, 0, count.Value())
	count.SetValue(42)

	rc2 := newTestContext(t)
	again := signals.PersistentSignal(rc2, "count", 0, adapter)
	assert.Equal(t, 42, again.Value())
}

// a corrupt stored payload should fall back to the initial value
func TestPersistentSignalCorruptPayload(t *testing.T) {
	adapter := persist.NewMemoryAdapter()
	assert.NoError(t, adapter.Save("count", "{not json"))

	rc := newTestContext(t)
	count := signals.PersistentSignal(rc, "count", 7, adapter)
	assert.Equal(t, 7, count.Value())
}

// writes to a persistent signal should notify dependents like any other
func TestPersistentSignalPropagates(t *testing.T) {
	adapter := persist.NewMemoryAdapter()
	rc := newTestContext(t)
	count := signals.PersistentSignal(rc, "count", 0, adapter)

	runs := 0
	signals.Effect(rc, func() error {
		count.Value()
		runs++
		return nil
	})
	count.SetValue(1)
	assert.Equal(t, 2, runs)

	data, ok, err := adapter.Load("count")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", data)
}
