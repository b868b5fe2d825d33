package description

import (
	"hash/fnv"

	"github.com/cottand/rebind/ir"
)

type FieldDescription interface {
	Name() string
	Modifiers() int
	// Type is the field's type attached to the type the field belongs to
	Type() (ir.Type, error)
	DeclaredAnnotations() ir.AnnotationList
	DeclaringType() *TypeDescription
	// AsDefined returns the field as declared, before any transformation
	AsDefined() *Field
	// AsToken detaches the field, replacing the types matched by isTarget with ir.TargetType
	AsToken(isTarget ir.Matcher) FieldToken
	// Hash covers the context, declaring type, token and defined shape.
	// Two fields are equal when their hashes are, like ir.Equal for types.
	Hash() uint64
}

var _ FieldDescription = (*Field)(nil)

// Field is a field in its defined shape, as declared by its type
type Field struct {
	declaringType *TypeDescription
	token         FieldToken
}

func (f *Field) Name() string                           { return f.token.Name }
func (f *Field) Modifiers() int                         { return f.token.Modifiers }
func (f *Field) DeclaredAnnotations() ir.AnnotationList { return f.token.Annotations }
func (f *Field) DeclaringType() *TypeDescription        { return f.declaringType }
func (f *Field) AsDefined() *Field                      { return f }

func (f *Field) Type() (ir.Type, error) {
	return Rebind(f.token.Type, Scope{Context: f.declaringType})
}

func (f *Field) AsToken(isTarget ir.Matcher) FieldToken {
	return DetachField(f.token, isTarget)
}

func (f *Field) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Field"))
	writeUint64s(h, f.declaringType.Hash(), f.token.Hash())
	return h.Sum64()
}

// DetachField returns token with its type detached
func DetachField(token FieldToken, isTarget ir.Matcher) FieldToken {
	token.Type = ir.Detach(token.Type, isTarget)
	return token
}
