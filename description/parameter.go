package description

import (
	"hash/fnv"
	"iter"
	"strconv"

	"github.com/cottand/rebind/binderr"
	"github.com/cottand/rebind/ir"
)

type ParameterDescription interface {
	Index() int
	// Name is the explicit name of the parameter, or a synthetic argN name
	Name() string
	IsNamed() bool
	Modifiers() int
	HasModifiers() bool
	Type() (ir.Type, error)
	DeclaredAnnotations() ir.AnnotationList
	DeclaringMethod() MethodDescription
	// AsDefined returns the parameter at the same index of the method as declared
	AsDefined() *Parameter
	AsToken(isTarget ir.Matcher) ParameterToken
	// Two parameters are equal when their hashes are, like ir.Equal for types
	Hash() uint64
}

// ParameterList is an index-addressed list of parameters
type ParameterList interface {
	Len() int
	// Get fails with an IndexOutOfRange error for indexes outside [0, Len())
	Get(index int) (ParameterDescription, error)
	All() iter.Seq2[int, ParameterDescription]
}

// NewParameterList creates a list of size parameters whose elements are created by get on access
func NewParameterList(size int, get func(index int) ParameterDescription) ParameterList {
	return lazyParameterList{size: size, get: get}
}

type lazyParameterList struct {
	size int
	get  func(index int) ParameterDescription
}

func (l lazyParameterList) Len() int { return l.size }

func (l lazyParameterList) Get(index int) (ParameterDescription, error) {
	if index < 0 || index >= l.size {
		return nil, binderr.New(binderr.NewIndexOutOfRange{Index: index, Size: l.size})
	}
	return l.get(index), nil
}

func (l lazyParameterList) All() iter.Seq2[int, ParameterDescription] {
	return func(yield func(int, ParameterDescription) bool) {
		for i := 0; i < l.size; i++ {
			if !yield(i, l.get(i)) {
				return
			}
		}
	}
}

// SyntheticName is the name reported for parameters without an explicit name
func SyntheticName(index int) string {
	return "arg" + strconv.Itoa(index)
}

var _ ParameterDescription = (*Parameter)(nil)

// Parameter is a parameter of a method in its defined shape
type Parameter struct {
	method *Method
	index  int
	token  ParameterToken
}

func (p *Parameter) Index() int                             { return p.index }
func (p *Parameter) IsNamed() bool                          { return p.token.Name.IsPresent() }
func (p *Parameter) HasModifiers() bool                     { return p.token.Modifiers.IsPresent() }
func (p *Parameter) Modifiers() int                         { return p.token.Modifiers.OrElse(0) }
func (p *Parameter) DeclaredAnnotations() ir.AnnotationList { return p.token.Annotations }
func (p *Parameter) DeclaringMethod() MethodDescription     { return p.method }
func (p *Parameter) AsDefined() *Parameter                  { return p }

func (p *Parameter) Name() string {
	return p.token.Name.OrElse(SyntheticName(p.index))
}

func (p *Parameter) Type() (ir.Type, error) {
	return Rebind(p.token.Type, p.method.scope())
}

func (p *Parameter) AsToken(isTarget ir.Matcher) ParameterToken {
	return DetachParameter(p.token, isTarget)
}

func (p *Parameter) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Parameter"))
	writeUint64s(h, uint64(p.index), p.token.Hash())
	return h.Sum64()
}

func DetachParameter(token ParameterToken, isTarget ir.Matcher) ParameterToken {
	token.Type = ir.Detach(token.Type, isTarget)
	return token
}
