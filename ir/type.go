// Package ir describes generic type references as they appear in member signatures.
//
// A type reference is either detached, in which case its type variables are
// plain symbols (TypeVar), or attached, in which case each variable points to
// the declaration it resolved to (BoundTypeVar). Type references are immutable
// values and are compared structurally through their Hash.
package ir

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// Type is a reference to a possibly generic type
type Type interface {
	fmt.Stringer
	Hash() uint64
	DeclaredAnnotations() AnnotationList
	isType()
}

var (
	_ Type = (*NonGeneric)(nil)
	_ Type = (*Parameterized)(nil)
	_ Type = (*Array)(nil)
	_ Type = (*Wildcard)(nil)
	_ Type = (*TypeVar)(nil)
	_ Type = (*BoundTypeVar)(nil)
)

// TargetTypeName names the placeholder for the type a member is being attached to
const TargetTypeName = "$target"

// TargetType stands in for the instrumented type inside a detached type reference.
// Attaching replaces it with the type of the context.
var TargetType = &NonGeneric{Name: TargetTypeName}

func IsTargetType(t Type) bool {
	ng, ok := t.(*NonGeneric)
	return ok && ng.Name == TargetTypeName
}

// Equal compares types structurally by their Hash.
// Descriptions of members follow the same rule.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Hash() == b.Hash()
}

func showAnnotated(annotations AnnotationList, body string) string {
	if annotations.Len() == 0 {
		return body
	}
	return annotations.String() + " " + body
}

func hashAll(h interface{ Write([]byte) (int, error) }, ts []Type) {
	arr := make([]byte, 0, 8*len(ts)+8)
	arr = binary.LittleEndian.AppendUint64(arr, uint64(len(ts)))
	for _, t := range ts {
		arr = binary.LittleEndian.AppendUint64(arr, t.Hash())
	}
	_, _ = h.Write(arr)
}

// NonGeneric is a type without type arguments, like a primitive or a raw class
type NonGeneric struct {
	Name        string
	Annotations AnnotationList
}

func (*NonGeneric) isType() {}

func (t *NonGeneric) String() string {
	return showAnnotated(t.Annotations, t.Name)
}

func (t *NonGeneric) DeclaredAnnotations() AnnotationList { return t.Annotations }

func (t *NonGeneric) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("NonGeneric"))
	_, _ = h.Write([]byte(t.Name))
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, t.Annotations.Hash()))
	return h.Sum64()
}

// Parameterized is a generic type applied to arguments, like List<T>.
// Owner is the enclosing parameterized type of a nested type, if any.
type Parameterized struct {
	Raw         string
	Args        []Type
	Owner       Type
	Annotations AnnotationList
}

func (*Parameterized) isType() {}

func (t *Parameterized) String() string {
	sb := strings.Builder{}
	if t.Owner != nil {
		sb.WriteString(t.Owner.String())
		sb.WriteString(".")
	}
	sb.WriteString(t.Raw)
	sb.WriteString("<")
	for i, arg := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteString(">")
	return showAnnotated(t.Annotations, sb.String())
}

func (t *Parameterized) DeclaredAnnotations() AnnotationList { return t.Annotations }

func (t *Parameterized) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Parameterized"))
	_, _ = h.Write([]byte(t.Raw))
	hashAll(h, t.Args)
	if t.Owner != nil {
		_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, t.Owner.Hash()))
	}
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, t.Annotations.Hash()))
	return h.Sum64()
}

// Array is an array whose component type may be generic
type Array struct {
	Component   Type
	Annotations AnnotationList
}

func (*Array) isType() {}

func (t *Array) String() string {
	return showAnnotated(t.Annotations, t.Component.String()+"[]")
}

func (t *Array) DeclaredAnnotations() AnnotationList { return t.Annotations }

func (t *Array) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Array"))
	arr := binary.LittleEndian.AppendUint64(nil, t.Component.Hash())
	arr = binary.LittleEndian.AppendUint64(arr, t.Annotations.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

// Wildcard is a type argument like `?`, `? extends Number` or `? super T`
type Wildcard struct {
	Upper       []Type
	Lower       []Type
	Annotations AnnotationList
}

func (*Wildcard) isType() {}

func (t *Wildcard) String() string {
	var body string
	switch {
	case len(t.Lower) > 0:
		body = "? super " + JoinTypes(t.Lower, " & ")
	case len(t.Upper) > 0:
		body = "? extends " + JoinTypes(t.Upper, " & ")
	default:
		body = "?"
	}
	return showAnnotated(t.Annotations, body)
}

func (t *Wildcard) DeclaredAnnotations() AnnotationList { return t.Annotations }

func (t *Wildcard) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Wildcard"))
	hashAll(h, t.Upper)
	hashAll(h, t.Lower)
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, t.Annotations.Hash()))
	return h.Sum64()
}

// TypeVar is a detached reference to a type variable: only its symbol is known
type TypeVar struct {
	Symbol      string
	Annotations AnnotationList
}

func (*TypeVar) isType() {}

func (t *TypeVar) String() string {
	return showAnnotated(t.Annotations, t.Symbol)
}

func (t *TypeVar) DeclaredAnnotations() AnnotationList { return t.Annotations }

func (t *TypeVar) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TypeVar"))
	_, _ = h.Write([]byte(t.Symbol))
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, t.Annotations.Hash()))
	return h.Sum64()
}

// BoundTypeVar is a type variable reference resolved to its declaration.
//
// Annotations belong to the reference, not to the declaration: a reference
// rebound to a different declaration keeps the annotations it was written with,
// while its bounds and declaring element come from Decl.
type BoundTypeVar struct {
	Decl        TypeVariable
	Annotations AnnotationList
}

func (*BoundTypeVar) isType() {}

func (t *BoundTypeVar) String() string {
	return showAnnotated(t.Annotations, t.Decl.Symbol())
}

func (t *BoundTypeVar) DeclaredAnnotations() AnnotationList { return t.Annotations }

func (t *BoundTypeVar) Symbol() string { return t.Decl.Symbol() }

func (t *BoundTypeVar) Bounds() ([]Type, error) { return t.Decl.Bounds() }

// Hash does not include the bounds of the declaration, which may refer back to the variable itself
func (t *BoundTypeVar) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("BoundTypeVar"))
	arr := binary.LittleEndian.AppendUint64(nil, HashVariable(t.Decl))
	arr = binary.LittleEndian.AppendUint64(arr, t.Annotations.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

// JoinTypes renders ts separated by sep
func JoinTypes(ts []Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}
