package signals

import "fmt"

// computation is the unit that signals notify. It owns its cleanup
// callbacks: one per dependency edge registered during the last run, plus
// any consumer cleanups and child disposals.
type computation struct {
	rc       *ReactiveContext
	fn       func() error
	cleanups []func()
	disposed bool
}

func (c *computation) addCleanup(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

// runCleanups invokes and clears every accumulated cleanup. Called before
// each re-run and at disposal, so stale dependency edges never survive and
// child computations are torn down with their parent.
func (c *computation) runCleanups() {
	cleanups := c.cleanups
	c.cleanups = nil
	for _, cleanup := range cleanups {
		cleanup()
	}
}

func (c *computation) run() {
	if c.disposed {
		return
	}
	c.runCleanups()
	if err := c.rc.runWithTracking(c, c.fn); err != nil {
		c.rc.raise(fmt.Errorf("effect: %w", err))
	}
}

func (c *computation) dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.runCleanups()
}

// Effect creates a computation that re-executes fn whenever a signal read
// during its most recent run changes. fn runs once immediately, before
// Effect returns, to discover its initial dependencies.
//
// An Effect created while another computation is running registers its own
// disposal into the parent's cleanup list, so disposing the parent tears
// down all descendants. Dispose is idempotent.
func Effect(rc *ReactiveContext, fn func() error) (dispose func()) {
	c := &computation{rc: rc, fn: fn}
	if parent := rc.active; parent != nil {
		parent.addCleanup(c.dispose)
	}
	c.run()
	return c.dispose
}

// OnCleanup registers fn on the active computation; it runs before the
// computation's next re-run and at disposal.
func OnCleanup(rc *ReactiveContext, fn func()) {
	if rc.active == nil {
		panic("signals: OnCleanup called outside a computation")
	}
	rc.active.addCleanup(fn)
}
