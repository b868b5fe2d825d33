package ir_test

import (
	"testing"

	"github.com/cottand/rebind/binderr"
	"github.com/cottand/rebind/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeRoundTrip(t *testing.T) {
	testCases := []struct {
		src      string
		expected string
	}{
		{"String", "String"},
		{"java.util.List<T>", "java.util.List<T>"},
		{"Map<K,   List<? extends V>>", "Map<K, List<? extends V>>"},
		{"T[][]", "T[][]"},
		{"@Nullable String", "@Nullable String"},
		{"Outer<T>.Inner<U>", "Outer<T>.Inner<U>"},
		{"Comparator<? super T>", "Comparator<? super T>"},
		{"List<?>", "List<?>"},
		{"Box<? extends Number & Comparable<T>>", "Box<? extends Number & Comparable<T>>"},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			parsed, err := ir.ParseType(tc.src, func(s string) bool { return s == "T" || s == "U" || s == "K" || s == "V" })
			require.NoError(t, err)
			assert.Equal(t, tc.expected, parsed.String())
		})
	}
}

func TestParseTypeShapes(t *testing.T) {
	parsed := ir.MustParseType("List<@A T>[]", "T")

	array, ok := parsed.(*ir.Array)
	require.True(t, ok)
	list, ok := array.Component.(*ir.Parameterized)
	require.True(t, ok)
	assert.Equal(t, "List", list.Raw)

	variable, ok := list.Args[0].(*ir.TypeVar)
	require.True(t, ok)
	assert.Equal(t, "T", variable.Symbol)
	assert.True(t, variable.Annotations.IsAnnotationPresent("A"))
}

func TestParseTypeVariablesOnlyWhenDeclared(t *testing.T) {
	parsed := ir.MustParseType("List<T>")
	list := parsed.(*ir.Parameterized)
	_, isNonGeneric := list.Args[0].(*ir.NonGeneric)
	assert.True(t, isNonGeneric)
}

func TestParseTypeMalformed(t *testing.T) {
	for _, src := range []string{"", "List<", "List<T", "T[", "List<T> extra", "? foo T", "Outer<T>.Inner"} {
		t.Run(src, func(t *testing.T) {
			_, err := ir.ParseType(src, nil)
			require.Error(t, err)
			assert.Equal(t, binderr.MalformedType, binderr.CodeOf(err))
		})
	}
}
