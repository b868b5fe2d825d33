package describe

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cottand/rebind/binderr"
	"github.com/cottand/rebind/description"
	"github.com/cottand/rebind/ir"
	"github.com/cottand/rebind/modifier"
	"github.com/cottand/rebind/util"
	"github.com/hashicorp/go-set/v3"
)

// Build creates the types described by f, in file order.
// Types refer to their enclosing type by name, and every type reference is
// parsed with the variables visible where it appears.
func (f *File) Build() ([]*description.TypeDescription, error) {
	types := make([]*description.TypeDescription, len(f.Types))
	byName := make(map[string]*description.TypeDescription, len(f.Types))
	for i, spec := range f.Types {
		if spec.Name == "" {
			return nil, invalid(fmt.Sprintf("types[%d]", i), "missing name")
		}
		if _, ok := byName[spec.Name]; ok {
			return nil, invalid(spec.Name, "type is described more than once")
		}
		mods, err := modifier.ParseType(spec.Modifiers...)
		if err != nil {
			return nil, invalid(spec.Name+".modifiers", err.Error())
		}
		types[i] = &description.TypeDescription{Name: spec.Name, Modifiers: modifier.Resolve(modifier.Empty, mods...)}
		byName[spec.Name] = types[i]
	}

	for i, spec := range f.Types {
		if spec.Enclosing == "" {
			continue
		}
		enclosing, ok := byName[spec.Enclosing]
		if !ok {
			return nil, invalid(spec.Name+".enclosing", fmt.Sprintf("unknown type '%s'", spec.Enclosing))
		}
		types[i].Enclosing = enclosing
	}

	// variables first, so that bounds can refer to variables of enclosing types
	for i, spec := range f.Types {
		for _, v := range spec.Variables {
			annotations, err := parseAnnotations(v.Annotations)
			if err != nil {
				return nil, invalid(spec.Name+".variables."+v.Symbol, err.Error())
			}
			types[i].DeclareVariable(v.Symbol).Annotations = annotations
		}
	}
	for i, spec := range f.Types {
		if err := buildBounds(types[i], spec); err != nil {
			return nil, err
		}
	}

	for i, spec := range f.Types {
		t := types[i]
		for j, field := range spec.Fields {
			token, err := fieldToken(t, field)
			if err != nil {
				return nil, invalid(fmt.Sprintf("%s.fields[%d]", t.Name, j), err.Error())
			}
			t.DefineField(token)
		}
		for j, method := range spec.Methods {
			token, err := methodToken(t, method)
			if err != nil {
				return nil, invalid(fmt.Sprintf("%s.methods[%d]", t.Name, j), err.Error())
			}
			t.DefineMethod(token)
		}
	}
	return types, nil
}

func invalid(path, reason string) error {
	return binderr.New(binderr.NewInvalidDescription{Path: path, Reason: reason})
}

// visibleIn reports the symbols visible in t, including those of its enclosing types
func visibleIn(t *description.TypeDescription, local ...string) func(string) bool {
	return func(symbol string) bool {
		if slices.Contains(local, symbol) {
			return true
		}
		_, err := t.FindVariable(symbol)
		return err == nil
	}
}

func parseTypes(srcs []string, isVariable func(string) bool) ([]ir.Type, error) {
	return util.MapSliceErr(srcs, func(src string) (ir.Type, error) {
		return ir.ParseType(src, isVariable)
	})
}

func buildBounds(t *description.TypeDescription, spec TypeSpec) error {
	for i, v := range spec.Variables {
		bounds, err := parseTypes(v.Bounds, visibleIn(t))
		if err != nil {
			return invalid(t.Name+".variables."+v.Symbol, err.Error())
		}
		bounds, err = description.RebindAll(bounds, description.Scope{Context: t})
		if err != nil {
			return invalid(t.Name+".variables."+v.Symbol, err.Error())
		}
		t.TypeVariables[i].UpperBounds = bounds
	}
	return nil
}

func fieldToken(t *description.TypeDescription, spec FieldSpec) (description.FieldToken, error) {
	if spec.Name == "" {
		return description.FieldToken{}, fmt.Errorf("missing name")
	}
	mods, err := modifier.ParseField(spec.Modifiers...)
	if err != nil {
		return description.FieldToken{}, err
	}
	fieldType, err := ir.ParseType(spec.Type, visibleIn(t))
	if err != nil {
		return description.FieldToken{}, err
	}
	annotations, err := parseAnnotations(spec.Annotations)
	if err != nil {
		return description.FieldToken{}, err
	}
	return description.FieldToken{
		Name:        spec.Name,
		Modifiers:   modifier.Resolve(modifier.Empty, mods...),
		Type:        fieldType,
		Annotations: annotations,
	}, nil
}

func methodToken(t *description.TypeDescription, spec MethodSpec) (description.MethodToken, error) {
	if spec.Name == "" {
		return description.MethodToken{}, fmt.Errorf("missing name")
	}
	mods, err := modifier.ParseMethod(spec.Modifiers...)
	if err != nil {
		return description.MethodToken{}, err
	}
	symbols := util.MapSlice(spec.Variables, func(v VariableSpec) string { return v.Symbol })
	isVariable := visibleIn(t, symbols...)

	token := description.MethodToken{
		Name:      spec.Name,
		Modifiers: modifier.Resolve(modifier.Empty, mods...),
	}
	for _, v := range spec.Variables {
		bounds, err := parseTypes(v.Bounds, isVariable)
		if err != nil {
			return description.MethodToken{}, err
		}
		annotations, err := parseAnnotations(v.Annotations)
		if err != nil {
			return description.MethodToken{}, err
		}
		token.TypeVariables = append(token.TypeVariables, description.TypeVariableToken{Symbol: v.Symbol, Bounds: bounds, Annotations: annotations})
	}
	if set.From(token.Symbols()).Size() != len(token.TypeVariables) {
		return description.MethodToken{}, fmt.Errorf("type variables %v are not unique", token.Symbols())
	}

	returns := spec.Returns
	if returns == "" {
		returns = "void"
	}
	if token.ReturnType, err = ir.ParseType(returns, isVariable); err != nil {
		return description.MethodToken{}, err
	}
	for i, p := range spec.Parameters {
		param, err := parameterToken(p, isVariable)
		if err != nil {
			return description.MethodToken{}, fmt.Errorf("parameters[%d]: %w", i, err)
		}
		token.Parameters = append(token.Parameters, param)
	}
	if token.Exceptions, err = parseTypes(spec.Throws, isVariable); err != nil {
		return description.MethodToken{}, err
	}
	if token.Annotations, err = parseAnnotations(spec.Annotations); err != nil {
		return description.MethodToken{}, err
	}
	token.DefaultValue, _ = util.MapOptional(util.OptionalOf(spec.Default), func(literal string) (ir.AnnotationValue, error) {
		return ir.AnnotationValue{Literal: literal}, nil
	})
	token.ReceiverType, err = util.MapOptional(util.OptionalOf(spec.Receiver), func(src string) (ir.Type, error) {
		return ir.ParseType(src, isVariable)
	})
	if err != nil {
		return description.MethodToken{}, err
	}
	warnUnusedVariables(description.MemberOwner(t, token.Name), token)
	return token, nil
}

// warnUnusedVariables logs the variables token declares but never references
func warnUnusedVariables(owner string, token description.MethodToken) {
	signature := append([]ir.Type{token.ReturnType}, token.Exceptions...)
	for _, p := range token.Parameters {
		signature = append(signature, p.Type)
	}
	for _, v := range token.TypeVariables {
		signature = append(signature, v.Bounds...)
	}
	if receiver, ok := token.ReceiverType.Get(); ok {
		signature = append(signature, receiver)
	}
	used := ir.FreeVariables(signature...)
	for _, symbol := range token.Symbols() {
		if !used.Contains(symbol) {
			logger.Warn("type variable is never used", "method", owner, "symbol", symbol)
		}
	}
}

func parameterToken(spec ParameterSpec, isVariable func(string) bool) (description.ParameterToken, error) {
	paramType, err := ir.ParseType(spec.Type, isVariable)
	if err != nil {
		return description.ParameterToken{}, err
	}
	annotations, err := parseAnnotations(spec.Annotations)
	if err != nil {
		return description.ParameterToken{}, err
	}
	token := description.ParameterToken{
		Type:        paramType,
		Annotations: annotations,
		Name:        util.OptionalOf(spec.Name),
	}
	if spec.Modifiers != nil {
		mods, err := modifier.ParseParameter(*spec.Modifiers...)
		if err != nil {
			return description.ParameterToken{}, err
		}
		token.Modifiers = util.Some(modifier.Resolve(modifier.Empty, mods...))
	}
	return token, nil
}

// parseAnnotations reads annotations written as "@Name" or "@Name(key=value, ...)"
func parseAnnotations(srcs []string) (ir.AnnotationList, error) {
	annotations := make([]ir.Annotation, 0, len(srcs))
	for _, src := range srcs {
		src = strings.TrimPrefix(strings.TrimSpace(src), "@")
		name, props, hasProps := strings.Cut(src, "(")
		annotation := ir.Annotation{Type: strings.TrimSpace(name)}
		if annotation.Type == "" {
			return ir.AnnotationList{}, fmt.Errorf("empty annotation")
		}
		if hasProps {
			props, ok := strings.CutSuffix(strings.TrimSpace(props), ")")
			if !ok {
				return ir.AnnotationList{}, fmt.Errorf("annotation '%s' is missing ')'", src)
			}
			for _, prop := range strings.Split(props, ",") {
				if strings.TrimSpace(prop) == "" {
					continue
				}
				key, value, ok := strings.Cut(prop, "=")
				if !ok {
					key, value = "value", prop
				}
				annotation.Properties = append(annotation.Properties, ir.Property{
					Name:  strings.TrimSpace(key),
					Value: ir.AnnotationValue{Literal: strings.TrimSpace(value)},
				})
			}
		}
		annotations = append(annotations, annotation)
	}
	return ir.Annotations(annotations...), nil
}
