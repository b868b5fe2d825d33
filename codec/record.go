// Package codec encodes transformed members into a binary record.
//
// Building a record reads every accessor of the members, so this is where
// unresolved type variables are reported.
package codec

import (
	"fmt"

	"github.com/cottand/rebind/description"
	"github.com/cottand/rebind/ir"
	"github.com/cottand/rebind/util"
)

// SchemaVersion is incremented whenever the layout of Record changes
const SchemaVersion uint16 = 1

// Record is the attached shape of a type and its members
type Record struct {
	Schema uint16

	// Type is the name of the context type, TypeSignature its generic form
	Type          string
	TypeSignature string
	Variables     []VariableRecord

	Fields  []FieldRecord
	Methods []MethodRecord
}

type VariableRecord struct {
	Symbol      string
	Bounds      []string
	DeclaredBy  string
	Annotations []string
}

type FieldRecord struct {
	Name        string
	Modifiers   int
	Type        string
	Annotations []string
}

type ParameterRecord struct {
	Name        string
	Named       bool
	Modifiers   int
	Type        string
	Annotations []string
}

type MethodRecord struct {
	Name        string
	Modifiers   int
	Variables   []VariableRecord
	Returns     string
	Parameters  []ParameterRecord
	Throws      []string
	Annotations []string
	Default     *string
	Receiver    *string
}

// NewRecord reads fields and methods as attached to ctx
func NewRecord(ctx description.InstrumentedType, fields []description.FieldDescription, methods []description.MethodDescription) (*Record, error) {
	r := &Record{
		Schema:        SchemaVersion,
		Type:          ctx.TypeName(),
		TypeSignature: ctx.AsType().String(),
	}
	if t, ok := ctx.(*description.TypeDescription); ok {
		vars, err := variableRecords(util.MapSlice(t.TypeVariables, func(v *ir.DeclaredTypeVar) ir.TypeVariable { return v }))
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", t.Name, err)
		}
		r.Variables = vars
	}
	for _, f := range fields {
		record, err := fieldRecord(f)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", r.Type, f.Name(), err)
		}
		r.Fields = append(r.Fields, record)
	}
	for _, m := range methods {
		record, err := methodRecord(m)
		if err != nil {
			return nil, fmt.Errorf("method %s.%s: %w", r.Type, m.Name(), err)
		}
		r.Methods = append(r.Methods, record)
	}
	return r, nil
}

func annotationStrings(annotations ir.AnnotationList) []string {
	return util.MapSlice(annotations.Slice(), ir.Annotation.String)
}

func typeStrings(ts []ir.Type) []string {
	return util.MapSlice(ts, ir.Type.String)
}

func variableRecords(vars []ir.TypeVariable) ([]VariableRecord, error) {
	return util.MapSliceErr(vars, func(v ir.TypeVariable) (VariableRecord, error) {
		bounds, err := v.Bounds()
		if err != nil {
			return VariableRecord{}, err
		}
		return VariableRecord{
			Symbol:      v.Symbol(),
			Bounds:      typeStrings(bounds),
			DeclaredBy:  v.DeclaredBy(),
			Annotations: annotationStrings(v.DeclaredAnnotations()),
		}, nil
	})
}

func fieldRecord(f description.FieldDescription) (FieldRecord, error) {
	t, err := f.Type()
	if err != nil {
		return FieldRecord{}, err
	}
	return FieldRecord{
		Name:        f.Name(),
		Modifiers:   f.Modifiers(),
		Type:        t.String(),
		Annotations: annotationStrings(f.DeclaredAnnotations()),
	}, nil
}

func methodRecord(m description.MethodDescription) (MethodRecord, error) {
	vars, err := variableRecords(m.TypeVariables())
	if err != nil {
		return MethodRecord{}, err
	}
	returns, err := m.ReturnType()
	if err != nil {
		return MethodRecord{}, err
	}
	throws, err := m.ExceptionTypes()
	if err != nil {
		return MethodRecord{}, err
	}
	receiver, err := m.ReceiverType()
	if err != nil {
		return MethodRecord{}, err
	}
	record := MethodRecord{
		Name:        m.Name(),
		Modifiers:   m.Modifiers(),
		Variables:   vars,
		Returns:     returns.String(),
		Throws:      typeStrings(throws),
		Annotations: annotationStrings(m.DeclaredAnnotations()),
	}
	if value, ok := m.DefaultValue().Get(); ok {
		record.Default = &value.Literal
	}
	if r, ok := receiver.Get(); ok {
		shown := r.String()
		record.Receiver = &shown
	}
	for i, p := range m.Parameters().All() {
		t, err := p.Type()
		if err != nil {
			return MethodRecord{}, fmt.Errorf("parameter %d: %w", i, err)
		}
		record.Parameters = append(record.Parameters, ParameterRecord{
			Name:        p.Name(),
			Named:       p.IsNamed(),
			Modifiers:   p.Modifiers(),
			Type:        t.String(),
			Annotations: annotationStrings(p.DeclaredAnnotations()),
		})
	}
	return record, nil
}
