package description

import (
	"encoding/binary"
	"hash"
	"hash/fnv"

	"github.com/cottand/rebind/ir"
	"github.com/cottand/rebind/util"
)

// Tokens are detached snapshots of a member's shape.
// They never refer to a declaring type, so one token can be attached to any
// number of types. Types inside a token are detached: variables are symbolic.
// Tokens are values; their slices must not be modified once shared.

type FieldToken struct {
	Name        string
	Modifiers   int
	Type        ir.Type
	Annotations ir.AnnotationList
}

func (t FieldToken) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("FieldToken"))
	_, _ = h.Write([]byte(t.Name))
	writeUint64s(h, uint64(t.Modifiers), hashType(t.Type), t.Annotations.Hash())
	return h.Sum64()
}

type TypeVariableToken struct {
	Symbol      string
	Bounds      []ir.Type
	Annotations ir.AnnotationList
}

func (t TypeVariableToken) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TypeVariableToken"))
	_, _ = h.Write([]byte(t.Symbol))
	writeTypes(h, t.Bounds)
	writeUint64s(h, t.Annotations.Hash())
	return h.Sum64()
}

// ParameterToken leaves Name and Modifiers absent when the parameter does not
// define them explicitly
type ParameterToken struct {
	Type        ir.Type
	Annotations ir.AnnotationList
	Name        util.Optional[string]
	Modifiers   util.Optional[int]
}

func (t ParameterToken) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("ParameterToken"))
	writeUint64s(h, hashType(t.Type), t.Annotations.Hash())
	if name, ok := t.Name.Get(); ok {
		_, _ = h.Write([]byte{1})
		_, _ = h.Write([]byte(name))
	}
	if modifiers, ok := t.Modifiers.Get(); ok {
		_, _ = h.Write([]byte{2})
		writeUint64s(h, uint64(modifiers))
	}
	return h.Sum64()
}

type MethodToken struct {
	Name          string
	Modifiers     int
	TypeVariables []TypeVariableToken
	ReturnType    ir.Type
	Parameters    []ParameterToken
	Exceptions    []ir.Type
	Annotations   ir.AnnotationList
	DefaultValue  util.Optional[ir.AnnotationValue]
	ReceiverType  util.Optional[ir.Type]
}

func (t MethodToken) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("MethodToken"))
	_, _ = h.Write([]byte(t.Name))
	writeUint64s(h, uint64(t.Modifiers), uint64(len(t.TypeVariables)))
	for _, v := range t.TypeVariables {
		writeUint64s(h, v.Hash())
	}
	writeUint64s(h, hashType(t.ReturnType), uint64(len(t.Parameters)))
	for _, p := range t.Parameters {
		writeUint64s(h, p.Hash())
	}
	writeTypes(h, t.Exceptions)
	writeUint64s(h, t.Annotations.Hash())
	if value, ok := t.DefaultValue.Get(); ok {
		_, _ = h.Write([]byte("default"))
		_, _ = h.Write([]byte(value.Literal))
	}
	if receiver, ok := t.ReceiverType.Get(); ok {
		_, _ = h.Write([]byte("receiver"))
		writeUint64s(h, hashType(receiver))
	}
	return h.Sum64()
}

// Symbols returns the symbols of the variables declared by the method
func (t MethodToken) Symbols() []string {
	return util.MapSlice(t.TypeVariables, func(v TypeVariableToken) string { return v.Symbol })
}

func hashType(t ir.Type) uint64 {
	if t == nil {
		return 0
	}
	return t.Hash()
}

func writeUint64s(h hash.Hash64, values ...uint64) {
	arr := make([]byte, 0, 8*len(values))
	for _, v := range values {
		arr = binary.LittleEndian.AppendUint64(arr, v)
	}
	_, _ = h.Write(arr)
}

func writeTypes(h hash.Hash64, ts []ir.Type) {
	writeUint64s(h, uint64(len(ts)))
	for _, t := range ts {
		writeUint64s(h, hashType(t))
	}
}
