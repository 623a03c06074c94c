package signals

// Reactive is a tagged input: either a fixed value or a getter evaluated at
// unwrap time. Consumers that accept "a value or something producing one"
// take a Reactive instead of probing an any for callability.
type Reactive[T any] struct {
	value  T
	derive func() T
}

// Static wraps a plain value.
func Static[T any](v T) Reactive[T] {
	return Reactive[T]{value: v}
}

// Dynamic wraps a getter. Passing a signal's or computed's Value method
// keeps dependency tracking intact: unwrapping inside a computation
// registers the read.
func Dynamic[T any](get func() T) Reactive[T] {
	return Reactive[T]{derive: get}
}

// Unwrap resolves to the concrete value: the stored value for Static, one
// getter call for Dynamic.
func (r Reactive[T]) Unwrap() T {
	if r.derive != nil {
		return r.derive()
	}
	return r.value
}
