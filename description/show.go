package description

import (
	"strings"

	"github.com/cottand/rebind/ir"
	"github.com/cottand/rebind/modifier"
)

// ShowField renders f as a declaration, as in "private final List<T> items".
// It fails when the type of f cannot be resolved.
func ShowField(f FieldDescription) (string, error) {
	t, err := f.Type()
	if err != nil {
		return "", err
	}
	sb := strings.Builder{}
	writePrefix(&sb, f.DeclaredAnnotations().String(), modifier.Describe(f.Modifiers()))
	sb.WriteString(t.String())
	sb.WriteString(" ")
	sb.WriteString(f.Name())
	return sb.String(), nil
}

// ShowMethod renders the signature of m, as in "public <U extends T> U map(Function<T, U> arg0) throws Exception"
func ShowMethod(m MethodDescription) (string, error) {
	sb := strings.Builder{}
	writePrefix(&sb, m.DeclaredAnnotations().String(), modifier.DescribeMethod(m.Modifiers()))

	if vars := m.TypeVariables(); len(vars) > 0 {
		decls := make([]string, len(vars))
		for i, v := range vars {
			bounds, err := v.Bounds()
			if err != nil {
				return "", err
			}
			decls[i] = v.Symbol()
			if len(bounds) > 0 {
				decls[i] += " extends " + ir.JoinTypes(bounds, " & ")
			}
		}
		sb.WriteString("<" + strings.Join(decls, ", ") + "> ")
	}

	returnType, err := m.ReturnType()
	if err != nil {
		return "", err
	}
	sb.WriteString(returnType.String())
	sb.WriteString(" ")
	sb.WriteString(m.Name())
	sb.WriteString("(")

	receiver, err := m.ReceiverType()
	if err != nil {
		return "", err
	}
	var params []string
	if r, ok := receiver.Get(); ok {
		params = append(params, r.String()+" this")
	}
	for _, p := range m.Parameters().All() {
		t, err := p.Type()
		if err != nil {
			return "", err
		}
		param := strings.Builder{}
		writePrefix(&param, p.DeclaredAnnotations().String(), modifier.Describe(p.Modifiers()))
		param.WriteString(t.String() + " " + p.Name())
		params = append(params, param.String())
	}
	sb.WriteString(strings.Join(params, ", "))
	sb.WriteString(")")

	exceptions, err := m.ExceptionTypes()
	if err != nil {
		return "", err
	}
	if len(exceptions) > 0 {
		sb.WriteString(" throws " + ir.JoinTypes(exceptions, ", "))
	}
	if value, ok := m.DefaultValue().Get(); ok {
		sb.WriteString(" default " + value.String())
	}
	return sb.String(), nil
}

func writePrefix(sb *strings.Builder, parts ...string) {
	for _, part := range parts {
		if part != "" {
			sb.WriteString(part)
			sb.WriteString(" ")
		}
	}
}
