// Package signals is a fine-grained reactive runtime: writeable signals,
// effects that re-run when their dependencies change, and memoized computed
// values. Dependency discovery is dynamic: an effect depends on exactly the
// signals it read during its most recent run.
//
// All state lives on a ReactiveContext threaded through the constructors;
// there are no package-level globals. The runtime assumes a single
// synchronous call stack and is not goroutine-safe.
package signals

import "log/slog"

type OnErrorFunc func(err error)

// ReactiveContext carries the currently active computation and the error
// sink for the reactive graph built on it.
type ReactiveContext struct {
	active  *computation
	onError OnErrorFunc
	logger  *slog.Logger
}

type ContextOption func(*ReactiveContext)

// WithOnError routes errors returned by effect bodies to fn. Without it,
// effect errors panic so they surface at whoever triggered the run.
func WithOnError(fn OnErrorFunc) ContextOption {
	return func(rc *ReactiveContext) {
		rc.onError = fn
	}
}

// WithLogger overrides the logger used for persistence failures.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(rc *ReactiveContext) {
		rc.logger = logger
	}
}

func NewReactiveContext(opts ...ContextOption) *ReactiveContext {
	rc := &ReactiveContext{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// runWithTracking executes body with c as the active computation. The
// previous active computation is restored even when body panics.
func (rc *ReactiveContext) runWithTracking(c *computation, body func() error) error {
	prev := rc.active
	rc.active = c
	defer func() {
		rc.active = prev
	}()
	return body()
}

// Untrack runs fn with tracking paused: signal reads inside fn do not
// register dependencies on the surrounding computation.
func Untrack[T any](rc *ReactiveContext, fn func() T) T {
	prev := rc.active
	rc.active = nil
	defer func() {
		rc.active = prev
	}()
	return fn()
}

func (rc *ReactiveContext) raise(err error) {
	if rc.onError != nil {
		rc.onError(err)
		return
	}
	panic(err)
}
