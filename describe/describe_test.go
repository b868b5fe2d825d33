package describe_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cottand/rebind/binderr"
	"github.com/cottand/rebind/describe"
	"github.com/cottand/rebind/description"
	"github.com/cottand/rebind/ir"
	"github.com/cottand/rebind/modifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boxYAML = `
types:
  - name: Outer
    modifiers: [public]
    variables:
      - symbol: K
  - name: Box
    modifiers: [public, final]
    enclosing: Outer
    variables:
      - symbol: T
        bounds: ["Comparable<T>"]
        annotations: ["@NonNull"]
    fields:
      - name: items
        modifiers: [private]
        type: "List<@Nullable T>"
      - name: keys
        type: "Map<K, T>[]"
        annotations: ["@Deprecated(since=1.2)"]
    methods:
      - name: map
        modifiers: [public]
        variables:
          - symbol: U
        returns: "Box<U>"
        parameters:
          - type: "Function<T, U>"
            name: mapper
          - type: int
            modifiers: [final]
        throws: [Exception]
      - name: value
        default: "42"
        receiver: "@ReadOnly Box<T>"
transform:
  fieldModifiers: [final]
  methodModifiers: [synchronized]
`

const boxTOML = `
[[types]]
name = "Box"
modifiers = ["public"]

[[types.variables]]
symbol = "T"

[[types.fields]]
name = "items"
modifiers = ["private"]
type = "List<T>"

[[types.methods]]
name = "get"
returns = "T"

[[types.methods.parameters]]
type = "int"
name = "index"

[transform]
field_modifiers = ["volatile"]
`

func TestBuildYAML(t *testing.T) {
	f, err := describe.Parse([]byte(boxYAML), describe.YAML)
	require.NoError(t, err)
	types, err := f.Build()
	require.NoError(t, err)
	require.Len(t, types, 2)

	box := types[1]
	assert.Equal(t, modifier.Public|modifier.Final, box.Modifiers)
	assert.Same(t, types[0], box.Enclosing)

	bounds, err := box.TypeVariables[0].Bounds()
	require.NoError(t, err)
	assert.Equal(t, "Comparable<T>", ir.JoinTypes(bounds, ", "))
	assert.True(t, box.TypeVariables[0].DeclaredAnnotations().IsAnnotationPresent("NonNull"))

	keys, ok := box.FieldNamed("keys")
	require.True(t, ok)
	keysType, err := keys.Type()
	require.NoError(t, err)
	assert.Equal(t, "Map<K, T>[]", keysType.String())
	assert.Equal(t, `@Deprecated(since=1.2)`, keys.DeclaredAnnotations().String())

	mapMethod, ok := box.MethodNamed("map")
	require.True(t, ok)
	shown, err := description.ShowMethod(mapMethod)
	require.NoError(t, err)
	assert.Equal(t, "public <U> Box<U> map(Function<T, U> mapper, final int arg1) throws Exception", shown)

	value, ok := box.MethodNamed("value")
	require.True(t, ok)
	shown, err = description.ShowMethod(value)
	require.NoError(t, err)
	assert.Equal(t, "void value(@ReadOnly Box<T> this) default 42", shown)

	fields, methods, err := f.Transform.Transformers(nil, []string{"private"})
	require.NoError(t, err)
	items, _ := box.FieldNamed("items")
	assert.Equal(t, modifier.Private|modifier.Final, fields.Transform(box, items).Modifiers())
	assert.Equal(t, modifier.Private|modifier.Synchronized, methods.Transform(box, mapMethod).Modifiers())
}

func TestLoadTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.toml")
	require.NoError(t, os.WriteFile(path, []byte(boxTOML), 0o644))

	f, err := describe.LoadFile(path)
	require.NoError(t, err)
	types, err := f.Build()
	require.NoError(t, err)
	require.Len(t, types, 1)

	get, ok := types[0].MethodNamed("get")
	require.True(t, ok)
	shown, err := description.ShowMethod(get)
	require.NoError(t, err)
	assert.Equal(t, "T get(int index)", shown)
	assert.Equal(t, []string{"volatile"}, f.Transform.FieldModifiers)
}

func TestInvalidDescriptions(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
		path string
	}{
		{"unknown enclosing", "types: [{name: A, enclosing: B}]", "A.enclosing"},
		{"duplicate type", "types: [{name: A}, {name: A}]", "A"},
		{"malformed field type", "types: [{name: A, fields: [{name: f, type: 'List<'}]}]", "A.fields[0]"},
		{"unknown modifier", "types: [{name: A, methods: [{name: m, modifiers: [volatile]}]}]", "A.methods[0]"},
		{"malformed bound", "types: [{name: A, variables: [{symbol: T, bounds: ['List<T']}]}]", "A.variables.T"},
		{"repeated method variable", "types: [{name: A, methods: [{name: m, returns: U, variables: [{symbol: U}, {symbol: U}]}]}]", "A.methods[0]"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := describe.Parse([]byte(tc.yaml), describe.YAML)
			require.NoError(t, err)
			_, err = f.Build()
			require.Error(t, err)
			assert.Equal(t, binderr.InvalidDescription, binderr.CodeOf(err))
			assert.Contains(t, err.Error(), "at "+tc.path+":")
		})
	}
}

func TestTransformersAttachWithoutModifiers(t *testing.T) {
	const twoTypes = `
types:
  - name: Box
    variables: [{symbol: T}]
    fields: [{name: items, type: "List<T>"}]
    methods: [{name: get, returns: T}]
  - name: Point
`
	f, err := describe.Parse([]byte(twoTypes), describe.YAML)
	require.NoError(t, err)
	types, err := f.Build()
	require.NoError(t, err)
	box, point := types[0], types[1]

	fields, methods, err := f.Transform.Transformers(nil, nil)
	require.NoError(t, err)
	items, _ := box.FieldNamed("items")
	get, _ := box.MethodNamed("get")

	_, err = fields.Transform(point, items).Type()
	require.Error(t, err)
	assert.Equal(t, binderr.UnresolvedTypeVariable, binderr.CodeOf(err))
	assert.Contains(t, err.Error(), "[Point]")
	_, err = methods.Transform(point, get).ReturnType()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[Point.get, Point]")

	intoBox, err := fields.Transform(box, items).Type()
	require.NoError(t, err)
	assert.Equal(t, "List<T>", intoBox.String())
	assert.NotEqual(t, items.Hash(), fields.Transform(point, items).Hash())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := describe.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, describe.TOML, describe.FormatOf("types.TOML"))
	assert.Equal(t, describe.YAML, describe.FormatOf("types.yml"))
	assert.Equal(t, describe.YAML, describe.FormatOf("types"))
}
