package loading

import (
	"fmt"
	"go/ast"
	"go/token"
	"reflect"
	"strconv"

	"github.com/cottand/rebind/codec"
	"github.com/cottand/rebind/modifier"
	"github.com/hashicorp/go-set/v3"
)

// render emits a Go file declaring the struct of r in package pkg.
// Instance methods become methods with a zero-valued body, static ones
// become functions prefixed by the type name.
func render(pkg string, r *codec.Record) (*ast.File, error) {
	typeName := exportedName(r.Type)
	used := set.From([]string{typeName})

	fields := &ast.FieldList{}
	for _, f := range r.Fields {
		t, err := parseRecordType(f.Type, r.Variables)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		name := exportedName(f.Name)
		if !used.Insert(name) {
			return nil, fmt.Errorf("field %s clashes with another member named %s", f.Name, name)
		}
		fields.List = append(fields.List, &ast.Field{
			Names: []*ast.Ident{ast.NewIdent(name)},
			Type:  typeExpr(t),
			Tag:   &ast.BasicLit{Kind: token.STRING, Value: "`" + string(fieldTag(f)) + "`"},
		})
	}

	decls := []ast.Decl{&ast.GenDecl{
		Tok: token.TYPE,
		Specs: []ast.Spec{&ast.TypeSpec{
			Name: ast.NewIdent(typeName),
			Type: &ast.StructType{Fields: fields},
		}},
	}}

	for _, m := range r.Methods {
		decl, err := renderMethod(typeName, r, m)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", m.Name, err)
		}
		if !used.Insert(decl.Name.Name) {
			// overloads and clashes with fields get a positional suffix
			decl.Name.Name += "_" + strconv.Itoa(used.Size())
			used.Insert(decl.Name.Name)
		}
		decls = append(decls, decl)
	}

	return &ast.File{
		Name:  ast.NewIdent(pkg),
		Decls: decls,
	}, nil
}

func renderMethod(typeName string, r *codec.Record, m codec.MethodRecord) (*ast.FuncDecl, error) {
	vars := append(append([]codec.VariableRecord{}, r.Variables...), m.Variables...)

	params := &ast.FieldList{}
	for i, p := range m.Parameters {
		t, err := parseRecordType(p.Type, vars)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		params.List = append(params.List, &ast.Field{
			Names: []*ast.Ident{ast.NewIdent(identifier(p.Name))},
			Type:  typeExpr(t),
		})
	}

	var results *ast.FieldList
	if m.Returns != "void" {
		t, err := parseRecordType(m.Returns, vars)
		if err != nil {
			return nil, fmt.Errorf("return type: %w", err)
		}
		results = &ast.FieldList{List: []*ast.Field{{
			Names: []*ast.Ident{ast.NewIdent("result")},
			Type:  typeExpr(t),
		}}}
	}

	decl := &ast.FuncDecl{
		Name: ast.NewIdent(exportedName(m.Name)),
		Type: &ast.FuncType{Params: params, Results: results},
		Body: &ast.BlockStmt{List: []ast.Stmt{&ast.ReturnStmt{}}},
	}
	if m.Modifiers&modifier.Static != 0 {
		decl.Name.Name = typeName + decl.Name.Name
	} else {
		decl.Recv = &ast.FieldList{List: []*ast.Field{{
			Names: []*ast.Ident{ast.NewIdent("self")},
			Type:  &ast.StarExpr{X: ast.NewIdent(typeName)},
		}}}
	}
	return decl, nil
}

func typeExpr(t reflect.Type) ast.Expr {
	switch t.Kind() {
	case reflect.Slice:
		return &ast.ArrayType{Elt: typeExpr(t.Elem())}
	case reflect.Map:
		return &ast.MapType{Key: typeExpr(t.Key()), Value: typeExpr(t.Elem())}
	case reflect.Interface:
		return ast.NewIdent("any")
	default:
		return ast.NewIdent(t.String())
	}
}
