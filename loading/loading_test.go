package loading_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/cottand/rebind/binderr"
	"github.com/cottand/rebind/codec"
	"github.com/cottand/rebind/description"
	"github.com/cottand/rebind/ir"
	"github.com/cottand/rebind/loading"
	"github.com/cottand/rebind/modifier"
	"github.com/cottand/rebind/transform"
	"github.com/cottand/rebind/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedPoint(t *testing.T) []byte {
	point := description.NewType("Point", modifier.Public)
	x := point.DefineField(description.FieldToken{Name: "x", Modifiers: modifier.Private, Type: ir.MustParseType("double")})
	y := point.DefineField(description.FieldToken{Name: "y", Modifiers: modifier.Private, Type: ir.MustParseType("double")})
	norm := point.DefineMethod(description.MethodToken{Name: "norm", Modifiers: modifier.Public, ReturnType: ir.MustParseType("double")})
	origin := point.DefineMethod(description.MethodToken{
		Name:       "of",
		Modifiers:  modifier.Public | modifier.Static,
		ReturnType: ir.TargetType,
		Parameters: []description.ParameterToken{
			{Type: ir.MustParseType("double"), Name: util.Some("x")},
			{Type: ir.MustParseType("double"), Name: util.Some("y")},
		},
	})

	fields := transform.ForField(transform.FieldWithModifiers(modifier.FieldFinal))
	methods := transform.ForMethod(transform.NoOp[description.MethodToken]())
	data, err := codec.Encode(point,
		[]description.FieldDescription{fields.Transform(point, x), fields.Transform(point, y)},
		[]description.MethodDescription{methods.Transform(point, norm), methods.Transform(point, origin)},
	)
	require.NoError(t, err)
	return data
}

func encodedBox(t *testing.T) []byte {
	box := description.NewType("Box", modifier.Public, "T")
	items := box.DefineField(description.FieldToken{Name: "items", Type: ir.MustParseType("List<T>", "T")})
	counts := box.DefineField(description.FieldToken{Name: "counts", Type: ir.MustParseType("Map<String, int[]>")})
	data, err := codec.Encode(box, []description.FieldDescription{items, counts}, nil)
	require.NoError(t, err)
	return data
}

func TestInMemory(t *testing.T) {
	injector := loading.NewInMemory()
	types, err := injector.Inject(context.Background(), map[string][]byte{
		"Point": encodedPoint(t),
		"Box":   encodedBox(t),
	})
	require.NoError(t, err)
	require.Len(t, types, 2)

	point := types["Point"]
	assert.Equal(t, reflect.Struct, point.Kind())
	require.Equal(t, 2, point.NumField())
	assert.Equal(t, "X", point.Field(0).Name)
	assert.Equal(t, reflect.Float64, point.Field(0).Type.Kind())
	assert.Equal(t, "x,18", point.Field(0).Tag.Get("rebind"))

	box := types["Box"]
	assert.Equal(t, reflect.TypeFor[[]any](), box.Field(0).Type)
	assert.Equal(t, reflect.TypeFor[map[any][]int32](), box.Field(1).Type)

	defined, ok := injector.Lookup("Point")
	assert.True(t, ok)
	assert.Equal(t, point, defined)
}

func TestInMemoryFailsPerEntry(t *testing.T) {
	injector := loading.NewInMemory()
	_, err := injector.Inject(context.Background(), map[string][]byte{"Point": encodedPoint(t)})
	require.NoError(t, err)

	types, err := injector.Inject(context.Background(), map[string][]byte{
		"Point":   encodedPoint(t),
		"Box":     encodedBox(t),
		"Garbage": []byte("not a record"),
		"Other":   encodedBox(t),
	})
	require.Error(t, err)
	assert.Equal(t, binderr.InjectionFailed, binderr.CodeOf(err))
	assert.Contains(t, err.Error(), "'Point': already defined")
	assert.Contains(t, err.Error(), "'Garbage'")
	assert.Contains(t, err.Error(), "record describes 'Box'")

	require.Len(t, types, 1)
	assert.Contains(t, types, "Box")
}

func TestInMemoryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	types, err := loading.NewInMemory().Inject(ctx, map[string][]byte{"Point": encodedPoint(t)})
	assert.Empty(t, types)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInterpreterScope(t *testing.T) {
	scope, err := loading.NewInterpreterScope()
	require.NoError(t, err)

	types, err := scope.Inject(context.Background(), map[string][]byte{"Point": encodedPoint(t)})
	require.NoError(t, err)

	point := types["Point"]
	require.NotNil(t, point)
	assert.Equal(t, reflect.Struct, point.Kind())
	require.Equal(t, 2, point.NumField())
	assert.Equal(t, "X", point.Field(0).Name)
	assert.Equal(t, "Y", point.Field(1).Name)
	assert.Equal(t, reflect.Float64, point.Field(1).Type.Kind())

	v, err := scope.Eval(context.Background(), "rebind_point.Point{X: 3, Y: 4}.X")
	require.NoError(t, err)
	assert.Equal(t, 3.0, v.Float())

	t.Run("types are defined once", func(t *testing.T) {
		_, err := scope.Inject(context.Background(), map[string][]byte{"Point": encodedPoint(t)})
		assert.Equal(t, binderr.InjectionFailed, binderr.CodeOf(err))
	})
}

func TestSource(t *testing.T) {
	record, err := codec.Decode(encodedPoint(t))
	require.NoError(t, err)

	src, err := loading.Source(record)
	require.NoError(t, err)
	assert.Contains(t, src, "package rebind_point")
	assert.Contains(t, src, "X float64 `rebind:\"x,18\"`")
	assert.Contains(t, src, "func (self *Point) Norm() (result float64)")
	assert.Contains(t, src, "func PointOf(x float64, y float64) (result any)")
}
