package signals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ripplekit/ripple/signals"
)

// static and dynamic inputs resolve through the same unwrap call
func TestReactiveUnwrap(t *testing.T) {
	rc := newTestContext(t)
	a := signals.Signal(rc, 5)

	fixed := signals.Static(3)
	live := signals.Dynamic(a.Value)

	assert.Equal(t, 3, fixed.Unwrap())
	assert.Equal(t, 5, live.Unwrap())
	a.SetValue(6)
	assert.Equal(t, 3, fixed.Unwrap())
	assert.Equal(t, 6, live.Unwrap())
}

// unwrapping a dynamic input inside an effect registers the dependency
func TestReactiveDynamicTracks(t *testing.T) {
	rc := newTestContext(t)
	a := signals.Signal(rc, 1)
	input := signals.Dynamic(a.Value)

	runs := 0
	signals.Effect(rc, func() error {
		input.Unwrap()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)
	a.SetValue(2)
	assert.Equal(t, 2, runs)
}

// a static input never creates dependencies
func TestReactiveStaticNeverTracks(t *testing.T) {
	rc := newTestContext(t)
	a := signals.Signal(rc, 1)
	input := signals.Static(a.Peek())

	runs := 0
	signals.Effect(rc, func() error {
		input.Unwrap()
		runs++
		return nil
	})
	a.SetValue(2)
	assert.Equal(t, 1, runs)
}
