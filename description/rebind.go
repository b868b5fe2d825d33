package description

import (
	"errors"

	"github.com/cottand/rebind/binderr"
	"github.com/cottand/rebind/ir"
)

// Scope is where the variables of a detached type are looked up when attaching it.
//
// Local holds the variables declared by the member itself (a method's own
// variables). They shadow variables of Context with the same symbol.
type Scope struct {
	Local []ir.TypeVariable
	// LocalOwner names the element declaring Local, for error messages
	LocalOwner string
	Context    InstrumentedType
}

// Rebind attaches t to scope: every type variable reference is resolved to a
// declaration, first among scope.Local, then through scope.Context.
// The resolved reference keeps the annotations of the original reference.
// ir.TargetType is replaced by the context's own type.
//
// Only variables are substituted, every other shape is rebuilt as is.
func Rebind(t ir.Type, scope Scope) (ir.Type, error) {
	return ir.Rewrite(t, scope.rewriter())
}

func RebindAll(ts []ir.Type, scope Scope) ([]ir.Type, error) {
	return ir.RewriteAll(ts, scope.rewriter())
}

func (s Scope) rewriter() ir.Rewriter {
	return func(t ir.Type) (ir.Type, bool, error) {
		switch t := t.(type) {
		case *ir.TypeVar:
			resolved, err := s.Resolve(t.Symbol)
			if err != nil {
				return nil, false, err
			}
			return &ir.BoundTypeVar{Decl: resolved, Annotations: t.Annotations}, true, nil
		case *ir.BoundTypeVar:
			// a reference attached elsewhere is rebound by its symbol
			resolved, err := s.Resolve(t.Symbol())
			if err != nil {
				return nil, false, err
			}
			return &ir.BoundTypeVar{Decl: resolved, Annotations: t.Annotations}, true, nil
		case *ir.NonGeneric:
			if ir.IsTargetType(t) {
				return s.Context.AsType(), true, nil
			}
		}
		return nil, false, nil
	}
}

// Resolve finds the declaration of symbol, local variables first
func (s Scope) Resolve(symbol string) (ir.TypeVariable, error) {
	for _, v := range s.Local {
		if v.Symbol() == symbol {
			return v, nil
		}
	}
	resolved, err := s.Context.FindVariable(symbol)
	if err == nil {
		return resolved, nil
	}
	var unresolved binderr.NewUnresolvedTypeVariable
	if s.LocalOwner != "" && errors.As(err, &unresolved) {
		scopes := append([]string{s.LocalOwner}, unresolved.Scopes...)
		return nil, binderr.New(binderr.NewUnresolvedTypeVariable{Symbol: symbol, Scopes: scopes})
	}
	return nil, err
}
