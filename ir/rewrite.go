package ir

import (
	"github.com/hashicorp/go-set/v3"
)

// Rewriter is called on every node before its children.
// Returning handled=true replaces the node with replacement and skips its children.
type Rewriter func(t Type) (replacement Type, handled bool, err error)

// Rewrite rebuilds t with fn applied to every node, top-down.
//
// Nodes fn does not handle are rebuilt from their rewritten children, and
// returned as they were when none of their children changed. Rewrite does not
// descend into the bounds of a BoundTypeVar.
func Rewrite(t Type, fn Rewriter) (Type, error) {
	if t == nil {
		return nil, nil
	}
	replacement, handled, err := fn(t)
	if err != nil {
		return nil, err
	}
	if handled {
		return replacement, nil
	}
	switch t := t.(type) {
	case *Parameterized:
		var owner Type
		if t.Owner != nil {
			owner, err = Rewrite(t.Owner, fn)
			if err != nil {
				return nil, err
			}
		}
		args, changed, err := rewriteAll(t.Args, fn)
		if err != nil {
			return nil, err
		}
		if !changed && owner == t.Owner {
			return t, nil
		}
		return &Parameterized{Raw: t.Raw, Args: args, Owner: owner, Annotations: t.Annotations}, nil

	case *Array:
		component, err := Rewrite(t.Component, fn)
		if err != nil {
			return nil, err
		}
		if component == t.Component {
			return t, nil
		}
		return &Array{Component: component, Annotations: t.Annotations}, nil

	case *Wildcard:
		upper, upperChanged, err := rewriteAll(t.Upper, fn)
		if err != nil {
			return nil, err
		}
		lower, lowerChanged, err := rewriteAll(t.Lower, fn)
		if err != nil {
			return nil, err
		}
		if !upperChanged && !lowerChanged {
			return t, nil
		}
		return &Wildcard{Upper: upper, Lower: lower, Annotations: t.Annotations}, nil

	default:
		// NonGeneric, TypeVar and BoundTypeVar have no children
		return t, nil
	}
}

// RewriteAll applies Rewrite to every element of ts
func RewriteAll(ts []Type, fn Rewriter) ([]Type, error) {
	out, _, err := rewriteAll(ts, fn)
	return out, err
}

func rewriteAll(ts []Type, fn Rewriter) ([]Type, bool, error) {
	if len(ts) == 0 {
		return ts, false, nil
	}
	out := make([]Type, len(ts))
	changed := false
	for i, t := range ts {
		rewritten, err := Rewrite(t, fn)
		if err != nil {
			return nil, false, err
		}
		out[i] = rewritten
		changed = changed || rewritten != t
	}
	if !changed {
		return ts, false, nil
	}
	return out, true, nil
}

// Matcher selects types, for example those which should be replaced by TargetType
type Matcher func(Type) bool

// None matches no type
func None() Matcher {
	return func(Type) bool { return false }
}

// Named matches non-generic types with the given name
func Named(name string) Matcher {
	return func(t Type) bool {
		ng, ok := t.(*NonGeneric)
		return ok && ng.Name == name
	}
}

// Detach turns every bound variable of t back into a symbolic TypeVar, and
// replaces the non-generic types matched by isTarget with TargetType.
// Annotations of the references are kept.
func Detach(t Type, isTarget Matcher) Type {
	detached, _ := Rewrite(t, detacher(isTarget))
	// detacher never fails
	return detached
}

func DetachAll(ts []Type, isTarget Matcher) []Type {
	detached, _ := RewriteAll(ts, detacher(isTarget))
	return detached
}

func detacher(isTarget Matcher) Rewriter {
	return func(t Type) (Type, bool, error) {
		switch t := t.(type) {
		case *BoundTypeVar:
			return &TypeVar{Symbol: t.Symbol(), Annotations: t.Annotations}, true, nil
		case *NonGeneric:
			if isTarget(t) {
				return &NonGeneric{Name: TargetTypeName, Annotations: t.Annotations}, true, nil
			}
		}
		return nil, false, nil
	}
}

// FreeVariables returns the symbols of all variables referenced in ts
func FreeVariables(ts ...Type) *set.Set[string] {
	symbols := set.New[string](0)
	collect := func(t Type) (Type, bool, error) {
		switch t := t.(type) {
		case *TypeVar:
			symbols.Insert(t.Symbol)
			return t, true, nil
		case *BoundTypeVar:
			symbols.Insert(t.Symbol())
			return t, true, nil
		}
		return nil, false, nil
	}
	for _, t := range ts {
		_, _ = Rewrite(t, collect)
	}
	return symbols
}
