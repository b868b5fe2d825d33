package transform

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cottand/rebind/description"
)

type compound[T any] struct {
	transformers []Transformer[T]
}

// Compound applies transformers in order, each to the result of the previous one.
//
// Nested compounds are spliced in place and NoOp transformers are dropped.
// An empty Compound returns its target unchanged.
func Compound[T any](transformers ...Transformer[T]) Transformer[T] {
	flat := make([]Transformer[T], 0, len(transformers))
	for _, t := range transformers {
		switch t := t.(type) {
		case *compound[T]:
			// already flat
			flat = append(flat, t.transformers...)
		case noOp[T]:
		case nil:
		default:
			flat = append(flat, t)
		}
	}
	logger.Debug("built compound transformer", slog.Int("given", len(transformers)), slog.Int("size", len(flat)))
	return &compound[T]{transformers: flat}
}

func (*compound[T]) isTransformer() {}

func (c *compound[T]) Transform(ctx description.InstrumentedType, target T) T {
	for _, t := range c.transformers {
		target = t.Transform(ctx, target)
	}
	return target
}

func (c *compound[T]) String() string {
	parts := make([]string, len(c.transformers))
	for i, t := range c.transformers {
		parts[i] = fmt.Sprint(t)
	}
	return "Compound[" + strings.Join(parts, ", ") + "]"
}

// Flattened returns the transformers t applies in order: the elements of a
// Compound, nothing for NoOp, or t itself
func Flattened[T any](t Transformer[T]) []Transformer[T] {
	switch t := t.(type) {
	case *compound[T]:
		return t.transformers
	case noOp[T]:
		return nil
	default:
		return []Transformer[T]{t}
	}
}
