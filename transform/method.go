package transform

import (
	"encoding/binary"
	"hash"
	"hash/fnv"

	"github.com/cottand/rebind/description"
	"github.com/cottand/rebind/ir"
	"github.com/cottand/rebind/modifier"
	"github.com/cottand/rebind/util"
)

type methodTransformer struct {
	inner Transformer[description.MethodToken]
}

// ForMethod transforms methods by running their detached token through inner
// and attaching the result to the context
func ForMethod(inner Transformer[description.MethodToken]) Transformer[description.MethodDescription] {
	return &methodTransformer{inner: inner}
}

func (*methodTransformer) isTransformer() {}

func (t *methodTransformer) Transform(ctx description.InstrumentedType, target description.MethodDescription) description.MethodDescription {
	token := t.inner.Transform(ctx, target.AsToken(ir.None()))
	return newTransformedMethod(ctx, target.DeclaringType(), token, target.AsDefined())
}

type methodModifiers struct {
	resolver modifier.Resolver[modifier.ForMethod]
}

// MethodWithModifiers applies contributors to the modifiers of a method token, in order
func MethodWithModifiers(contributors ...modifier.ForMethod) Transformer[description.MethodToken] {
	return &methodModifiers{resolver: modifier.ResolverOf(contributors...)}
}

func (*methodModifiers) isTransformer() {}

func (t *methodModifiers) Transform(_ description.InstrumentedType, target description.MethodToken) description.MethodToken {
	target.Modifiers = t.resolver.Resolve(target.Modifiers)
	return target
}

func (t *methodModifiers) String() string {
	return "MethodWithModifiers" + t.resolver.String()
}

var _ description.MethodDescription = (*transformedMethod)(nil)

// transformedMethod is a method token attached to ctx.
// Variables are looked up among the token's own declarations first.
type transformedMethod struct {
	ctx           description.InstrumentedType
	declaringType *description.TypeDescription
	token         description.MethodToken
	defined       *description.Method
	scope         description.Scope
}

func newTransformedMethod(
	ctx description.InstrumentedType,
	declaringType *description.TypeDescription,
	token description.MethodToken,
	defined *description.Method,
) *transformedMethod {
	return &transformedMethod{
		ctx:           ctx,
		declaringType: declaringType,
		token:         token,
		defined:       defined,
		scope:         description.AttachVariables(token.TypeVariables, description.MemberOwner(ctx, token.Name), ctx),
	}
}

func (m *transformedMethod) Name() string                                { return m.token.Name }
func (m *transformedMethod) Modifiers() int                              { return m.token.Modifiers }
func (m *transformedMethod) DeclaringType() *description.TypeDescription { return m.declaringType }
func (m *transformedMethod) DeclaredAnnotations() ir.AnnotationList      { return m.token.Annotations }
func (m *transformedMethod) AsDefined() *description.Method              { return m.defined }
func (m *transformedMethod) TypeVariables() []ir.TypeVariable            { return m.scope.Local }

func (m *transformedMethod) DefaultValue() util.Optional[ir.AnnotationValue] {
	return m.token.DefaultValue
}

func (m *transformedMethod) ReturnType() (ir.Type, error) {
	return description.Rebind(m.token.ReturnType, m.scope)
}

func (m *transformedMethod) ExceptionTypes() ([]ir.Type, error) {
	return description.RebindAll(m.token.Exceptions, m.scope)
}

func (m *transformedMethod) ReceiverType() (util.Optional[ir.Type], error) {
	return util.MapOptional(m.token.ReceiverType, func(t ir.Type) (ir.Type, error) {
		return description.Rebind(t, m.scope)
	})
}

func (m *transformedMethod) Parameters() description.ParameterList {
	return description.NewParameterList(len(m.token.Parameters), func(index int) description.ParameterDescription {
		return &transformedParameter{method: m, index: index}
	})
}

func (m *transformedMethod) AsToken(isTarget ir.Matcher) description.MethodToken {
	return description.DetachMethod(m.token, isTarget)
}

func (m *transformedMethod) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TransformedMethod"))
	writeUint64s(h,
		description.HashInstrumentedType(m.ctx),
		m.declaringType.Hash(),
		m.token.Hash(),
		m.defined.Hash(),
	)
	return h.Sum64()
}

func (m *transformedMethod) String() string {
	shown, err := description.ShowMethod(m)
	if err != nil {
		return m.token.Name
	}
	return shown
}

var _ description.ParameterDescription = (*transformedParameter)(nil)

// transformedParameter is the parameter at index of method.
// Name and modifiers the token leaves unspecified come from the defined parameter.
type transformedParameter struct {
	method *transformedMethod
	index  int
}

func (p *transformedParameter) token() description.ParameterToken {
	return p.method.token.Parameters[p.index]
}

func (p *transformedParameter) Index() int                                     { return p.index }
func (p *transformedParameter) DeclaringMethod() description.MethodDescription { return p.method }
func (p *transformedParameter) DeclaredAnnotations() ir.AnnotationList         { return p.token().Annotations }

// AsDefined is the defined parameter at the same index, or nil when the
// defined method has fewer parameters than the token
func (p *transformedParameter) AsDefined() *description.Parameter {
	return p.method.defined.Parameter(p.index)
}

func (p *transformedParameter) Name() string {
	if name, ok := p.token().Name.Get(); ok {
		return name
	}
	if defined := p.AsDefined(); defined != nil {
		return defined.Name()
	}
	return description.SyntheticName(p.index)
}

func (p *transformedParameter) IsNamed() bool {
	if p.token().Name.IsPresent() {
		return true
	}
	defined := p.AsDefined()
	return defined != nil && defined.IsNamed()
}

func (p *transformedParameter) Modifiers() int {
	if modifiers, ok := p.token().Modifiers.Get(); ok {
		return modifiers
	}
	if defined := p.AsDefined(); defined != nil {
		return defined.Modifiers()
	}
	return modifier.Empty
}

func (p *transformedParameter) HasModifiers() bool {
	if p.token().Modifiers.IsPresent() {
		return true
	}
	defined := p.AsDefined()
	return defined != nil && defined.HasModifiers()
}

func (p *transformedParameter) Type() (ir.Type, error) {
	return description.Rebind(p.token().Type, p.method.scope)
}

func (p *transformedParameter) AsToken(isTarget ir.Matcher) description.ParameterToken {
	return description.DetachParameter(p.token(), isTarget)
}

func (p *transformedParameter) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TransformedParameter"))
	writeUint64s(h, uint64(p.index), p.method.Hash())
	return h.Sum64()
}

func writeUint64s(h hash.Hash64, values ...uint64) {
	arr := make([]byte, 0, 8*len(values))
	for _, v := range values {
		arr = binary.LittleEndian.AppendUint64(arr, v)
	}
	_, _ = h.Write(arr)
}
