package describe

import (
	"github.com/cottand/rebind/description"
	"github.com/cottand/rebind/modifier"
	"github.com/cottand/rebind/transform"
)

// Transformers builds the field and method transformers described by s.
// The contributors named in s apply first, followed by the extra ones.
// Members are always attached to the context they are transformed into,
// even when no contributor is named.
func (s TransformSpec) Transformers(extraField, extraMethod []string) (
	transform.Transformer[description.FieldDescription],
	transform.Transformer[description.MethodDescription],
	error,
) {
	fieldContributors, err := modifier.ParseField(append(append([]string{}, s.FieldModifiers...), extraField...)...)
	if err != nil {
		return nil, nil, invalid("transform.fieldModifiers", err.Error())
	}
	methodContributors, err := modifier.ParseMethod(append(append([]string{}, s.MethodModifiers...), extraMethod...)...)
	if err != nil {
		return nil, nil, invalid("transform.methodModifiers", err.Error())
	}

	fields := transform.NoOp[description.FieldToken]()
	if len(fieldContributors) > 0 {
		fields = transform.FieldWithModifiers(fieldContributors...)
	}
	methods := transform.NoOp[description.MethodToken]()
	if len(methodContributors) > 0 {
		methods = transform.MethodWithModifiers(methodContributors...)
	}
	return transform.ForField(fields), transform.ForMethod(methods), nil
}
