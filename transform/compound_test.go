package transform_test

import (
	"testing"

	"github.com/cottand/rebind/description"
	"github.com/cottand/rebind/ir"
	"github.com/cottand/rebind/modifier"
	"github.com/cottand/rebind/transform"
	"github.com/cottand/rebind/util"
	"github.com/stretchr/testify/assert"
)

type fieldTransformer = transform.Transformer[description.FieldDescription]

func renameTo(name string) fieldTransformer {
	return transform.ForField(transform.Func[description.FieldToken](func(_ description.InstrumentedType, token description.FieldToken) description.FieldToken {
		token.Name = name
		return token
	}))
}

func appendSuffix(suffix string) fieldTransformer {
	return transform.ForField(transform.Func[description.FieldToken](func(_ description.InstrumentedType, token description.FieldToken) description.FieldToken {
		token.Name += suffix
		return token
	}))
}

func withModifiers(cs ...modifier.ForField) fieldTransformer {
	return transform.ForField(transform.FieldWithModifiers(cs...))
}

func assertSameField(t *testing.T, expected, actual description.FieldDescription) {
	t.Helper()
	assert.Equal(t, expected.Hash(), actual.Hash())
	assert.Equal(t, expected.Name(), actual.Name())
	assert.Equal(t, expected.Modifiers(), actual.Modifiers())
	expectedType, expectedErr := expected.Type()
	actualType, actualErr := actual.Type()
	assert.Equal(t, expectedErr, actualErr)
	assert.True(t, ir.Equal(expectedType, actualType))
}

func TestCompoundIdentity(t *testing.T) {
	box, items := boxWithItems()
	noOp := transform.NoOp[description.FieldDescription]()

	for name, compound := range map[string]fieldTransformer{
		"empty":        transform.Compound[description.FieldDescription](),
		"only no-ops":  transform.Compound(noOp, noOp, noOp),
		"nested empty": transform.Compound(transform.Compound(noOp), transform.Compound[description.FieldDescription]()),
	} {
		t.Run(name, func(t *testing.T) {
			result := compound.Transform(box, items)
			assert.Same(t, items, result)
			assert.Empty(t, transform.Flattened(compound))
		})
	}
}

func TestCompoundFlattening(t *testing.T) {
	box, items := boxWithItems()
	a := appendSuffix("A")
	b := withModifiers(modifier.VisibilityPublic)
	c := appendSuffix("C")
	d := withModifiers(modifier.FieldFinal, modifier.FieldVolatile)

	nested := transform.Compound(a, transform.Compound(b, c), transform.NoOp[description.FieldDescription](), d)
	flat := transform.Compound(a, b, c, d)

	assert.Len(t, transform.Flattened(nested), 4)
	assertSameField(t, flat.Transform(box, items), nested.Transform(box, items))

	result := nested.Transform(box, items)
	assert.Equal(t, "itemsAC", result.Name())
	assert.Equal(t, modifier.Public|modifier.Volatile, result.Modifiers())

	t.Run("concatenation", func(t *testing.T) {
		listA := []fieldTransformer{a, b}
		listB := []fieldTransformer{c, d}
		concatenated := transform.Compound(append(append([]fieldTransformer{}, listA...), listB...)...)
		ofCompounds := transform.Compound(transform.Compound(listA...), transform.Compound(listB...))
		assertSameField(t, concatenated.Transform(box, items), ofCompounds.Transform(box, items))
	})
}

func TestCompoundNoOpElision(t *testing.T) {
	box, items := boxWithItems()
	noOp := transform.NoOp[description.FieldDescription]()
	a := renameTo("first")
	b := appendSuffix("Second")

	plain := transform.Compound(a, b)
	for name, padded := range map[string]fieldTransformer{
		"leading":  transform.Compound(noOp, a, b),
		"between":  transform.Compound(a, noOp, noOp, b),
		"trailing": transform.Compound(a, b, noOp),
		"nested":   transform.Compound(transform.Compound(noOp, a), noOp, transform.Compound(b, noOp)),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Len(t, transform.Flattened(padded), 2)
			assertSameField(t, plain.Transform(box, items), padded.Transform(box, items))
		})
	}
}

func TestCompoundOrder(t *testing.T) {
	box, items := boxWithItems()
	a := renameTo("a")
	b := appendSuffix("b")
	assert.Equal(t, "ab", transform.Compound(a, b).Transform(box, items).Name())
	assert.Equal(t, "a", transform.Compound(b, a).Transform(box, items).Name())
}

func TestCompoundTokenTransformers(t *testing.T) {
	box, get := boxWithGet()
	tokens := transform.Compound(
		transform.MethodWithModifiers(modifier.VisibilityPrivate),
		transform.NoOp[description.MethodToken](),
		transform.MethodWithModifiers(modifier.SynchronizationSynchronized),
	)
	transformed := transform.ForMethod(tokens).Transform(box, get)
	assert.Equal(t, modifier.Private|modifier.Synchronized, transformed.Modifiers())
	assert.Equal(t, util.Some(ir.AnnotationValue{Literal: "0"}), transformed.DefaultValue())
}

func TestIsNoOp(t *testing.T) {
	assert.True(t, transform.IsNoOp(transform.NoOp[description.FieldToken]()))
	assert.False(t, transform.IsNoOp(transform.FieldWithModifiers()))
}
