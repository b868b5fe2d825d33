// Package transform attaches members of one type to another.
//
// A Transformer takes a member and returns a view of it transformed within a
// context type. Field and method transformers detach the member into a token,
// run the token through an inner transformer, and attach the result to the
// context. Views resolve their type variables when their accessors are read.
package transform

import (
	"github.com/cottand/rebind/description"
	"github.com/cottand/rebind/internal/log"
)

var logger = log.DefaultLogger.With("section", "transform")

// Transformer transforms a T within ctx, the type T will belong to.
//
// The set of transformers is closed: NoOp, ForField, ForMethod, Compound and
// the token rules built by this package. Func adapts any other rule.
type Transformer[T any] interface {
	Transform(ctx description.InstrumentedType, target T) T
	isTransformer()
}

var (
	_ Transformer[description.FieldToken]        = noOp[description.FieldToken]{}
	_ Transformer[description.FieldDescription]  = (*compound[description.FieldDescription])(nil)
	_ Transformer[description.MethodDescription] = (*methodTransformer)(nil)
	_ Transformer[description.FieldDescription]  = (*fieldTransformer)(nil)
	_ Transformer[description.MethodToken]       = Func[description.MethodToken](nil)
)

type noOp[T any] struct{}

// NoOp returns target unchanged
func NoOp[T any]() Transformer[T] {
	return noOp[T]{}
}

func (noOp[T]) isTransformer() {}

func (noOp[T]) Transform(_ description.InstrumentedType, target T) T {
	return target
}

func (noOp[T]) String() string { return "NoOp" }

// Func is a custom transformation rule
type Func[T any] func(ctx description.InstrumentedType, target T) T

func (Func[T]) isTransformer() {}

func (f Func[T]) Transform(ctx description.InstrumentedType, target T) T {
	return f(ctx, target)
}

func (Func[T]) String() string { return "Func" }

// IsNoOp reports whether t is the identity transformer
func IsNoOp[T any](t Transformer[T]) bool {
	_, ok := t.(noOp[T])
	return ok
}
