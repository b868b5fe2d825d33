package ir

import (
	"encoding/binary"
	"hash/fnv"
)

// TypeVariable is the declaration of a type variable by a type or a method
type TypeVariable interface {
	Symbol() string
	// Bounds returns the upper bounds of the variable.
	// Computing bounds may require resolving other variables, which can fail.
	Bounds() ([]Type, error)
	DeclaredAnnotations() AnnotationList
	// DeclaredBy names the type or method declaring the variable
	DeclaredBy() string
}

var _ TypeVariable = (*DeclaredTypeVar)(nil)

// DeclaredTypeVar is a type variable declaration whose bounds are already known
type DeclaredTypeVar struct {
	Name        string
	UpperBounds []Type
	Annotations AnnotationList
	Owner       string
}

func (v *DeclaredTypeVar) Symbol() string                      { return v.Name }
func (v *DeclaredTypeVar) Bounds() ([]Type, error)             { return v.UpperBounds, nil }
func (v *DeclaredTypeVar) DeclaredAnnotations() AnnotationList { return v.Annotations }
func (v *DeclaredTypeVar) DeclaredBy() string                  { return v.Owner }

// Ref returns an unannotated reference to v
func (v *DeclaredTypeVar) Ref() *BoundTypeVar {
	return &BoundTypeVar{Decl: v}
}

// HashVariable identifies a declaration by its symbol, declaring element and annotations
func HashVariable(v TypeVariable) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TypeVariable"))
	_, _ = h.Write([]byte(v.Symbol()))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(v.DeclaredBy()))
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, v.DeclaredAnnotations().Hash()))
	return h.Sum64()
}

// SameVariable reports whether a and b are the same declaration
func SameVariable(a, b TypeVariable) bool {
	return HashVariable(a) == HashVariable(b)
}
