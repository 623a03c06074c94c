package signals

// ReadonlySignal exposes a derived value. Consumers only get the getter;
// the owning effect is the sole writer of the internal signal.
type ReadonlySignal[T comparable] struct {
	inner   *WriteableSignal[T]
	dispose func()
}

// Computed creates a read-only signal kept in sync with derive. The owning
// effect re-executes whenever a dependency of derive changes, but the
// internal signal's identity gate means downstream computations only re-run
// when the derived value actually differs.
func Computed[T comparable](rc *ReactiveContext, derive func() T) *ReadonlySignal[T] {
	r := &ReadonlySignal[T]{}
	r.dispose = Effect(rc, func() error {
		next := derive()
		if r.inner == nil {
			r.inner = Signal(rc, next)
		} else {
			r.inner.SetValue(next)
		}
		return nil
	})
	return r
}

// Value returns the derived value, registering the active computation as a
// dependent of the internal signal so changes propagate transitively.
func (r *ReadonlySignal[T]) Value() T {
	return r.inner.Value()
}

// Peek returns the derived value without registering a dependency.
func (r *ReadonlySignal[T]) Peek() T {
	return r.inner.Peek()
}

// Dispose tears down the owning effect. Needed only when the computed was
// created outside any parent computation.
func (r *ReadonlySignal[T]) Dispose() {
	r.dispose()
}
