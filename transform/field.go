package transform

import (
	"hash/fnv"

	"github.com/cottand/rebind/description"
	"github.com/cottand/rebind/ir"
	"github.com/cottand/rebind/modifier"
)

type fieldTransformer struct {
	inner Transformer[description.FieldToken]
}

// ForField transforms fields by running their detached token through inner
// and attaching the result to the context
func ForField(inner Transformer[description.FieldToken]) Transformer[description.FieldDescription] {
	return &fieldTransformer{inner: inner}
}

func (*fieldTransformer) isTransformer() {}

func (t *fieldTransformer) Transform(ctx description.InstrumentedType, target description.FieldDescription) description.FieldDescription {
	token := t.inner.Transform(ctx, target.AsToken(ir.None()))
	return &transformedField{
		ctx:           ctx,
		declaringType: target.DeclaringType(),
		token:         token,
		defined:       target.AsDefined(),
	}
}

type fieldModifiers struct {
	resolver modifier.Resolver[modifier.ForField]
}

// FieldWithModifiers applies contributors to the modifiers of a field token, in order
func FieldWithModifiers(contributors ...modifier.ForField) Transformer[description.FieldToken] {
	return &fieldModifiers{resolver: modifier.ResolverOf(contributors...)}
}

func (*fieldModifiers) isTransformer() {}

func (t *fieldModifiers) Transform(_ description.InstrumentedType, target description.FieldToken) description.FieldToken {
	target.Modifiers = t.resolver.Resolve(target.Modifiers)
	return target
}

func (t *fieldModifiers) String() string {
	return "FieldWithModifiers" + t.resolver.String()
}

var _ description.FieldDescription = (*transformedField)(nil)

// transformedField is a field token attached to ctx
type transformedField struct {
	ctx           description.InstrumentedType
	declaringType *description.TypeDescription
	token         description.FieldToken
	defined       *description.Field
}

func (f *transformedField) Name() string                                { return f.token.Name }
func (f *transformedField) Modifiers() int                              { return f.token.Modifiers }
func (f *transformedField) DeclaredAnnotations() ir.AnnotationList      { return f.token.Annotations }
func (f *transformedField) DeclaringType() *description.TypeDescription { return f.declaringType }
func (f *transformedField) AsDefined() *description.Field               { return f.defined }

func (f *transformedField) Type() (ir.Type, error) {
	return description.Rebind(f.token.Type, description.Scope{Context: f.ctx})
}

func (f *transformedField) AsToken(isTarget ir.Matcher) description.FieldToken {
	return description.DetachField(f.token, isTarget)
}

func (f *transformedField) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TransformedField"))
	writeUint64s(h,
		description.HashInstrumentedType(f.ctx),
		f.declaringType.Hash(),
		f.token.Hash(),
		f.defined.Hash(),
	)
	return h.Sum64()
}

func (f *transformedField) String() string {
	shown, err := description.ShowField(f)
	if err != nil {
		return f.token.Name
	}
	return shown
}
