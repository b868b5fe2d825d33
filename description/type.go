// Package description models types and their members: fields, methods and parameters.
//
// Members come in two forms. Defined shapes (Field, Method, Parameter) are
// declared by a TypeDescription and attach their types to it. Tokens
// (FieldToken, MethodToken, ...) are detached snapshots that can be attached to
// any type, which is what the transform package does.
//
// Type-bearing accessors resolve variables lazily, so they return an error
// when a variable cannot be resolved.
package description

import (
	"encoding/binary"
	"hash/fnv"
	"slices"

	"github.com/cottand/rebind/binderr"
	"github.com/cottand/rebind/ir"
	"github.com/hashicorp/go-set/v3"
)

// InstrumentedType is the type members are attached to.
// It is the fallback scope when resolving type variables.
type InstrumentedType interface {
	TypeName() string
	// FindVariable returns the declaration of symbol visible in this type, or fails
	// with an UnresolvedTypeVariable error
	FindVariable(symbol string) (ir.TypeVariable, error)
	// AsType is the generic type of the instrumented type, replacing ir.TargetType when attaching
	AsType() ir.Type
}

var _ InstrumentedType = (*TypeDescription)(nil)

// TypeDescription describes a type declaring fields and methods.
//
// Enclosing is the type this one is nested in, if any. Variables of enclosing
// types are visible to nested types.
type TypeDescription struct {
	Name          string
	Modifiers     int
	TypeVariables []*ir.DeclaredTypeVar
	Enclosing     *TypeDescription
	Fields        []*Field
	Methods       []*Method
}

// NewType creates a type declaring variables with the given symbols and no bounds
func NewType(name string, modifiers int, symbols ...string) *TypeDescription {
	t := &TypeDescription{Name: name, Modifiers: modifiers}
	for _, symbol := range symbols {
		t.TypeVariables = append(t.TypeVariables, &ir.DeclaredTypeVar{Name: symbol, Owner: name})
	}
	return t
}

func (t *TypeDescription) TypeName() string { return t.Name }

func (t *TypeDescription) FindVariable(symbol string) (ir.TypeVariable, error) {
	var scopes []string
	visited := set.New[*TypeDescription](1)
	for current := t; current != nil && visited.Insert(current); current = current.Enclosing {
		scopes = append(scopes, current.Name)
		for _, v := range current.TypeVariables {
			if v.Symbol() == symbol {
				return v, nil
			}
		}
	}
	return nil, binderr.New(binderr.NewUnresolvedTypeVariable{Symbol: symbol, Scopes: scopes})
}

func (t *TypeDescription) AsType() ir.Type {
	if len(t.TypeVariables) == 0 {
		return &ir.NonGeneric{Name: t.Name}
	}
	args := make([]ir.Type, len(t.TypeVariables))
	for i, v := range t.TypeVariables {
		args[i] = v.Ref()
	}
	return &ir.Parameterized{Raw: t.Name, Args: args}
}

// DeclareVariable adds a type variable declaration to t
func (t *TypeDescription) DeclareVariable(symbol string, bounds ...ir.Type) *ir.DeclaredTypeVar {
	v := &ir.DeclaredTypeVar{Name: symbol, UpperBounds: bounds, Owner: t.Name}
	t.TypeVariables = append(t.TypeVariables, v)
	return v
}

// DefineField declares a field of t from a detached token
func (t *TypeDescription) DefineField(token FieldToken) *Field {
	f := &Field{declaringType: t, token: token}
	t.Fields = append(t.Fields, f)
	return f
}

// DefineMethod declares a method of t from a detached token
func (t *TypeDescription) DefineMethod(token MethodToken) *Method {
	m := newMethod(t, token)
	t.Methods = append(t.Methods, m)
	return m
}

func (t *TypeDescription) FieldNamed(name string) (*Field, bool) {
	i := slices.IndexFunc(t.Fields, func(f *Field) bool { return f.Name() == name })
	if i < 0 {
		return nil, false
	}
	return t.Fields[i], true
}

func (t *TypeDescription) MethodNamed(name string) (*Method, bool) {
	i := slices.IndexFunc(t.Methods, func(m *Method) bool { return m.Name() == name })
	if i < 0 {
		return nil, false
	}
	return t.Methods[i], true
}

// Hash covers the name, modifiers and variable declarations, not the members
func (t *TypeDescription) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TypeDescription"))
	_, _ = h.Write([]byte(t.Name))
	arr := binary.LittleEndian.AppendUint64(nil, uint64(t.Modifiers))
	for _, v := range t.TypeVariables {
		arr = binary.LittleEndian.AppendUint64(arr, ir.HashVariable(v))
	}
	_, _ = h.Write(arr)
	if t.Enclosing != nil {
		_, _ = h.Write([]byte(t.Enclosing.Name))
	}
	return h.Sum64()
}

func (t *TypeDescription) String() string {
	return t.AsType().String()
}

// HashInstrumentedType identifies an InstrumentedType by its name and generic type
func HashInstrumentedType(t InstrumentedType) uint64 {
	if hashable, ok := t.(interface{ Hash() uint64 }); ok {
		return hashable.Hash()
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.TypeName()))
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, t.AsType().Hash()))
	return h.Sum64()
}
