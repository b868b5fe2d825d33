package ir

import (
	"unicode"
	"unicode/utf8"

	"github.com/cottand/rebind/binderr"
)

// ParseType reads a type reference written in source form, e.g.
//
//	Map<K, List<? extends V>>[]
//	@Nullable String
//	Outer<T>.Inner<U>
//
// Unqualified names for which isVariable returns true become symbolic TypeVar references.
func ParseType(src string, isVariable func(symbol string) bool) (Type, error) {
	if isVariable == nil {
		isVariable = func(string) bool { return false }
	}
	p := &typeParser{src: src, isVariable: isVariable}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.fail("unexpected trailing input")
	}
	return t, nil
}

// MustParseType is ParseType for trusted input, it panics on malformed types
func MustParseType(src string, variables ...string) Type {
	t, err := ParseType(src, func(symbol string) bool {
		for _, v := range variables {
			if v == symbol {
				return true
			}
		}
		return false
	})
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src        string
	pos        int
	isVariable func(string) bool
}

func (p *typeParser) fail(reason string) error {
	return binderr.New(binderr.NewMalformedType{Source: p.src, Offset: p.pos, Reason: reason})
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) accept(b byte) bool {
	if p.peek() == b {
		p.pos++
		return true
	}
	return false
}

func isIdentRune(r rune, first bool) bool {
	if r == '_' || r == '$' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}

func (p *typeParser) ident() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isIdentRune(r, p.pos == start) {
			break
		}
		p.pos += size
	}
	if start == p.pos {
		return "", p.fail("expected identifier")
	}
	return p.src[start:p.pos], nil
}

// qualifiedName reads a.b.C, stopping before a dot that is not followed by an identifier
func (p *typeParser) qualifiedName() (string, error) {
	name, err := p.ident()
	if err != nil {
		return "", err
	}
	for p.peek() == '.' {
		save := p.pos
		p.pos++
		part, err := p.ident()
		if err != nil {
			p.pos = save
			break
		}
		name += "." + part
	}
	return name, nil
}

func (p *typeParser) annotations() (AnnotationList, error) {
	var annotations []Annotation
	for p.accept('@') {
		name, err := p.qualifiedName()
		if err != nil {
			return AnnotationList{}, err
		}
		annotations = append(annotations, Annotation{Type: name})
	}
	return Annotations(annotations...), nil
}

func (p *typeParser) parseType() (Type, error) {
	annotations, err := p.annotations()
	if err != nil {
		return nil, err
	}
	var t Type
	if p.accept('?') {
		t, err = p.wildcard(annotations)
		if err != nil {
			return nil, err
		}
		// wildcards cannot be array components
		return t, nil
	}
	t, err = p.classType(annotations)
	if err != nil {
		return nil, err
	}
	for p.accept('[') {
		if !p.accept(']') {
			return nil, p.fail("expected ']'")
		}
		t = &Array{Component: t}
	}
	return t, nil
}

func (p *typeParser) wildcard(annotations AnnotationList) (Type, error) {
	save := p.pos
	keyword, err := p.ident()
	if err != nil {
		p.pos = save
		return &Wildcard{Annotations: annotations}, nil
	}
	bounds, err := p.bounds()
	if err != nil {
		return nil, err
	}
	switch keyword {
	case "extends":
		return &Wildcard{Upper: bounds, Annotations: annotations}, nil
	case "super":
		return &Wildcard{Lower: bounds, Annotations: annotations}, nil
	default:
		return nil, p.fail("expected 'extends' or 'super' after '?'")
	}
}

func (p *typeParser) bounds() ([]Type, error) {
	var bounds []Type
	for {
		bound, err := p.parseType()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, bound)
		if !p.accept('&') {
			return bounds, nil
		}
	}
}

func (p *typeParser) classType(annotations AnnotationList) (Type, error) {
	name, err := p.qualifiedName()
	if err != nil {
		return nil, err
	}
	if p.peek() != '<' {
		if p.isVariable(name) {
			return &TypeVar{Symbol: name, Annotations: annotations}, nil
		}
		return &NonGeneric{Name: name, Annotations: annotations}, nil
	}
	var t Type
	for {
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		t = &Parameterized{Raw: name, Args: args, Owner: t, Annotations: annotations}
		if !p.accept('.') {
			return t, nil
		}
		annotations, err = p.annotations()
		if err != nil {
			return nil, err
		}
		name, err = p.ident()
		if err != nil {
			return nil, err
		}
		if p.peek() != '<' {
			return nil, p.fail("nested type of a parameterized type must be parameterized")
		}
	}
}

func (p *typeParser) arguments() ([]Type, error) {
	if !p.accept('<') {
		return nil, p.fail("expected '<'")
	}
	var args []Type
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.accept('>') {
			return args, nil
		}
		if !p.accept(',') {
			return nil, p.fail("expected ',' or '>'")
		}
	}
}
