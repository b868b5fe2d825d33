package description

import (
	"hash/fnv"

	"github.com/cottand/rebind/ir"
	"github.com/cottand/rebind/util"
)

type MethodDescription interface {
	Name() string
	Modifiers() int
	DeclaringType() *TypeDescription
	// TypeVariables are the variables declared by the method itself.
	// Their bounds are resolved when read.
	TypeVariables() []ir.TypeVariable
	ReturnType() (ir.Type, error)
	Parameters() ParameterList
	ExceptionTypes() ([]ir.Type, error)
	DeclaredAnnotations() ir.AnnotationList
	DefaultValue() util.Optional[ir.AnnotationValue]
	ReceiverType() (util.Optional[ir.Type], error)
	// AsDefined returns the method as declared, before any transformation
	AsDefined() *Method
	AsToken(isTarget ir.Matcher) MethodToken
	// Hash covers the context, declaring type, token and defined shape.
	// Two methods are equal when their hashes are, like ir.Equal for types.
	Hash() uint64
}

var _ MethodDescription = (*Method)(nil)

// Method is a method in its defined shape, as declared by its type
type Method struct {
	declaringType *TypeDescription
	token         MethodToken
	variables     Scope
	parameters    []*Parameter
}

func newMethod(t *TypeDescription, token MethodToken) *Method {
	m := &Method{
		declaringType: t,
		token:         token,
		variables:     AttachVariables(token.TypeVariables, MemberOwner(t, token.Name), t),
	}
	m.parameters = make([]*Parameter, len(token.Parameters))
	for i, p := range token.Parameters {
		m.parameters[i] = &Parameter{method: m, index: i, token: p}
	}
	return m
}

func (m *Method) Name() string                                    { return m.token.Name }
func (m *Method) Modifiers() int                                  { return m.token.Modifiers }
func (m *Method) DeclaringType() *TypeDescription                 { return m.declaringType }
func (m *Method) DeclaredAnnotations() ir.AnnotationList          { return m.token.Annotations }
func (m *Method) DefaultValue() util.Optional[ir.AnnotationValue] { return m.token.DefaultValue }
func (m *Method) AsDefined() *Method                              { return m }
func (m *Method) TypeVariables() []ir.TypeVariable                { return m.variables.Local }

func (m *Method) scope() Scope { return m.variables }

func (m *Method) ReturnType() (ir.Type, error) {
	return Rebind(m.token.ReturnType, m.variables)
}

func (m *Method) ExceptionTypes() ([]ir.Type, error) {
	return RebindAll(m.token.Exceptions, m.variables)
}

func (m *Method) ReceiverType() (util.Optional[ir.Type], error) {
	return util.MapOptional(m.token.ReceiverType, func(t ir.Type) (ir.Type, error) {
		return Rebind(t, m.variables)
	})
}

func (m *Method) Parameters() ParameterList {
	return NewParameterList(len(m.parameters), func(index int) ParameterDescription {
		return m.parameters[index]
	})
}

// Parameter returns the defined parameter at index, or nil
func (m *Method) Parameter(index int) *Parameter {
	if index < 0 || index >= len(m.parameters) {
		return nil
	}
	return m.parameters[index]
}

func (m *Method) AsToken(isTarget ir.Matcher) MethodToken {
	return DetachMethod(m.token, isTarget)
}

func (m *Method) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Method"))
	writeUint64s(h, m.declaringType.Hash(), m.token.Hash())
	return h.Sum64()
}

// DetachMethod returns token with every type it holds detached
func DetachMethod(token MethodToken, isTarget ir.Matcher) MethodToken {
	token.TypeVariables = util.MapSlice(token.TypeVariables, func(v TypeVariableToken) TypeVariableToken {
		v.Bounds = ir.DetachAll(v.Bounds, isTarget)
		return v
	})
	token.ReturnType = ir.Detach(token.ReturnType, isTarget)
	token.Parameters = util.MapSlice(token.Parameters, func(p ParameterToken) ParameterToken {
		return DetachParameter(p, isTarget)
	})
	token.Exceptions = ir.DetachAll(token.Exceptions, isTarget)
	token.ReceiverType, _ = util.MapOptional(token.ReceiverType, func(t ir.Type) (ir.Type, error) {
		return ir.Detach(t, isTarget), nil
	})
	return token
}

// MemberOwner names a member of t, as in "Box.get"
func MemberOwner(t InstrumentedType, member string) string {
	return t.TypeName() + "." + member
}

// AttachVariables declares the variables of a method called owner in context.
//
// The returned scope has the new declarations as its local variables. The
// bounds of each declaration are rebound in that same scope when read, so
// bounds may refer to any variable of the method, including the one they
// bound.
func AttachVariables(tokens []TypeVariableToken, owner string, context InstrumentedType) Scope {
	scope := &Scope{LocalOwner: owner, Context: context}
	scope.Local = make([]ir.TypeVariable, len(tokens))
	for i, token := range tokens {
		scope.Local[i] = &AttachedTypeVariable{token: token, owner: owner, scope: scope}
	}
	return *scope
}

var _ ir.TypeVariable = (*AttachedTypeVariable)(nil)

// AttachedTypeVariable is a method variable declared from a token
type AttachedTypeVariable struct {
	token TypeVariableToken
	owner string
	scope *Scope
}

func (v *AttachedTypeVariable) Symbol() string                         { return v.token.Symbol }
func (v *AttachedTypeVariable) DeclaredAnnotations() ir.AnnotationList { return v.token.Annotations }
func (v *AttachedTypeVariable) DeclaredBy() string                     { return v.owner }

func (v *AttachedTypeVariable) Bounds() ([]ir.Type, error) {
	return RebindAll(v.token.Bounds, *v.scope)
}

// AsToken detaches the declaration
func (v *AttachedTypeVariable) AsToken(isTarget ir.Matcher) TypeVariableToken {
	token := v.token
	token.Bounds = ir.DetachAll(token.Bounds, isTarget)
	return token
}

func (v *AttachedTypeVariable) String() string {
	return v.token.Symbol
}
