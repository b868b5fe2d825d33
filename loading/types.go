package loading

import (
	"go/token"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/cottand/rebind/codec"
	"github.com/cottand/rebind/ir"
)

var anyType = reflect.TypeFor[any]()

var primitives = map[string]reflect.Type{
	"boolean":          reflect.TypeFor[bool](),
	"byte":             reflect.TypeFor[int8](),
	"short":            reflect.TypeFor[int16](),
	"char":             reflect.TypeFor[rune](),
	"int":              reflect.TypeFor[int32](),
	"long":             reflect.TypeFor[int64](),
	"float":            reflect.TypeFor[float32](),
	"double":           reflect.TypeFor[float64](),
	"String":           reflect.TypeFor[string](),
	"java.lang.String": reflect.TypeFor[string](),
}

var sequences = []string{"List", "ArrayList", "Collection", "Set", "Iterable", "java.util.List", "java.util.Set"}

var mapTypes = []string{"Map", "HashMap", "java.util.Map"}

// goType maps a type reference to the Go type values of it are stored as.
// Anything without a Go counterpart, like variables or other described types, is any.
func goType(t ir.Type) reflect.Type {
	switch t := t.(type) {
	case *ir.NonGeneric:
		if primitive, ok := primitives[t.Name]; ok {
			return primitive
		}
	case *ir.Array:
		return reflect.SliceOf(goType(t.Component))
	case *ir.Parameterized:
		switch {
		case slices.Contains(sequences, t.Raw) && len(t.Args) == 1:
			return reflect.SliceOf(goType(t.Args[0]))
		case slices.Contains(mapTypes, t.Raw) && len(t.Args) == 2:
			return reflect.MapOf(anyType, goType(t.Args[1]))
		}
	}
	return anyType
}

// parseRecordType reads a type written in a record, where vars are the symbols in scope
func parseRecordType(src string, vars []codec.VariableRecord) (reflect.Type, error) {
	t, err := ir.ParseType(src, func(symbol string) bool {
		return slices.ContainsFunc(vars, func(v codec.VariableRecord) bool { return v.Symbol == symbol })
	})
	if err != nil {
		return nil, err
	}
	return goType(t), nil
}

// exportedName turns a member or type name into an exported Go identifier
func exportedName(name string) string {
	name = identifier(name)
	runes := []rune(name)
	if !unicode.IsUpper(runes[0]) {
		if unicode.IsLetter(runes[0]) {
			runes[0] = unicode.ToUpper(runes[0])
		} else {
			runes = append([]rune("X"), runes...)
		}
	}
	return string(runes)
}

// identifier replaces every character not allowed in a Go identifier by '_'
func identifier(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
	if mapped == "" || unicode.IsDigit([]rune(mapped)[0]) {
		mapped = "_" + mapped
	}
	if token.IsKeyword(mapped) {
		mapped += "_"
	}
	return mapped
}

func packageName(typeName string) string {
	return "rebind_" + strings.ToLower(identifier(typeName))
}
