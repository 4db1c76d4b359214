package domain

// Optional holds a value that may be absent. The zero value is None.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// OptionalFromPtr converts a nullable pointer (as scanned from the
// database or decoded from JSON) into an Optional.
func OptionalFromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// IsSome reports whether a value is present.
func (o Optional[T]) IsSome() bool { return o.ok }

// OrElse returns the value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Optional[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

// Factor is a conversion factor (units per board or per mold).
// Present factors are always > 0.
type Factor = Optional[int]

// Units is a derived total of base units.
type Units = Optional[int]

// NewFactor treats n <= 0 as "not configured".
func NewFactor(n int) Factor {
	if n <= 0 {
		return None[int]()
	}
	return Some(n)
}

// FactorFromPtr is NewFactor for nullable input.
func FactorFromPtr(p *int) Factor {
	if p == nil {
		return None[int]()
	}
	return NewFactor(*p)
}
