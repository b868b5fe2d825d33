package util

import "fmt"

// Optional is a value that may be absent.
// The zero value is absent.
type Optional[A any] struct {
	value   A
	present bool
}

func Some[A any](value A) Optional[A] {
	return Optional[A]{value: value, present: true}
}

func None[A any]() Optional[A] {
	return Optional[A]{}
}

// OptionalOf returns Some(*value) for a non-nil pointer, None otherwise
func OptionalOf[A any](value *A) Optional[A] {
	if value == nil {
		return None[A]()
	}
	return Some(*value)
}

func (o Optional[A]) Get() (A, bool) {
	return o.value, o.present
}

func (o Optional[A]) IsPresent() bool {
	return o.present
}

// OrElse returns the value if present, otherwise fallback
func (o Optional[A]) OrElse(fallback A) A {
	if o.present {
		return o.value
	}
	return fallback
}

func (o Optional[A]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// MapOptional applies f to the value of o, if any.
// An error returned by f is returned as is, together with an absent value.
func MapOptional[A, B any](o Optional[A], f func(A) (B, error)) (Optional[B], error) {
	value, ok := o.Get()
	if !ok {
		return None[B](), nil
	}
	mapped, err := f(value)
	if err != nil {
		return None[B](), err
	}
	return Some(mapped), nil
}
