package ir_test

import (
	"testing"

	"github.com/cottand/rebind/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteUnchangedIsIdentity(t *testing.T) {
	original := ir.MustParseType("Map<String, List<? extends Number>[]>")
	rewritten, err := ir.Rewrite(original, func(ir.Type) (ir.Type, bool, error) { return nil, false, nil })
	require.NoError(t, err)
	// no variables, so the very same value comes back
	assert.Same(t, original, rewritten)
}

func TestRewriteReplacesVariablesOnly(t *testing.T) {
	original := ir.MustParseType("Map<K, List<? super V>[]>", "K", "V")
	rewritten, err := ir.Rewrite(original, func(t ir.Type) (ir.Type, bool, error) {
		if v, ok := t.(*ir.TypeVar); ok {
			return &ir.NonGeneric{Name: "X" + v.Symbol}, true, nil
		}
		return nil, false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Map<XK, List<? super XV>[]>", rewritten.String())
	assert.Equal(t, "Map<K, List<? super V>[]>", original.String())
}

func TestDetach(t *testing.T) {
	decl := &ir.DeclaredTypeVar{Name: "T", Owner: "Box"}
	annotated := &ir.BoundTypeVar{Decl: decl, Annotations: ir.Annotations(ir.Annotation{Type: "Nullable"})}
	attached := &ir.Parameterized{Raw: "Map", Args: []ir.Type{annotated, &ir.NonGeneric{Name: "Box"}}}

	detached := ir.Detach(attached, ir.Named("Box"))
	assert.Equal(t, "Map<@Nullable T, $target>", detached.String())

	args := detached.(*ir.Parameterized).Args
	variable, ok := args[0].(*ir.TypeVar)
	require.True(t, ok)
	assert.True(t, variable.Annotations.IsAnnotationPresent("Nullable"))
	assert.True(t, ir.IsTargetType(args[1]))

	t.Run("None matcher keeps types", func(t *testing.T) {
		kept := ir.Detach(attached, ir.None())
		assert.Equal(t, "Map<@Nullable T, Box>", kept.String())
	})
}

func TestFreeVariables(t *testing.T) {
	free := ir.FreeVariables(
		ir.MustParseType("Map<K, List<V>>", "K", "V"),
		ir.MustParseType("T[]", "T"),
		ir.MustParseType("String"),
	)
	assert.Equal(t, 3, free.Size())
	assert.True(t, free.ContainsSlice([]string{"K", "V", "T"}))
}

func TestEqualIsStructural(t *testing.T) {
	a := ir.MustParseType("List<@A T>", "T")
	b := ir.MustParseType("List<@A T>", "T")
	c := ir.MustParseType("List<T>", "T")
	assert.True(t, ir.Equal(a, b))
	assert.False(t, ir.Equal(a, c))
}

func TestBoundTypeVarAnnotationsAndBoundsAreIndependent(t *testing.T) {
	decl := &ir.DeclaredTypeVar{
		Name:        "T",
		UpperBounds: []ir.Type{ir.MustParseType("Number")},
		Annotations: ir.Annotations(ir.Annotation{Type: "OnDeclaration"}),
		Owner:       "Box",
	}
	ref := &ir.BoundTypeVar{Decl: decl, Annotations: ir.Annotations(ir.Annotation{Type: "OnReference"})}

	assert.True(t, ref.DeclaredAnnotations().IsAnnotationPresent("OnReference"))
	assert.False(t, ref.DeclaredAnnotations().IsAnnotationPresent("OnDeclaration"))

	bounds, err := ref.Bounds()
	require.NoError(t, err)
	assert.Equal(t, "Number", ir.JoinTypes(bounds, " & "))
}
