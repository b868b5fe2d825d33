package ir

import (
	"encoding/binary"
	"hash/fnv"
	"iter"
	"strings"

	"github.com/benbjohnson/immutable"
)

// AnnotationValue is an opaque annotation value, such as the default value of an annotation method.
// It is passed through and never interpreted.
type AnnotationValue struct {
	Literal string
}

func (v AnnotationValue) String() string { return v.Literal }

type Property struct {
	Name  string
	Value AnnotationValue
}

// Annotation describes an annotation by the name of its type and its explicit properties
type Annotation struct {
	Type       string
	Properties []Property
}

func (a Annotation) String() string {
	if len(a.Properties) == 0 {
		return "@" + a.Type
	}
	sb := strings.Builder{}
	sb.WriteString("@" + a.Type + "(")
	for i, p := range a.Properties {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name + "=" + p.Value.Literal)
	}
	sb.WriteString(")")
	return sb.String()
}

func (a Annotation) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Annotation"))
	_, _ = h.Write([]byte(a.Type))
	for _, p := range a.Properties {
		_, _ = h.Write([]byte(p.Name))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(p.Value.Literal))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// AnnotationList is an ordered, immutable list of annotations.
// The zero value is the empty list.
type AnnotationList struct {
	list *immutable.List[Annotation]
}

func Annotations(annotations ...Annotation) AnnotationList {
	if len(annotations) == 0 {
		return AnnotationList{}
	}
	return AnnotationList{list: immutable.NewList(annotations...)}
}

func (l AnnotationList) Len() int {
	if l.list == nil {
		return 0
	}
	return l.list.Len()
}

func (l AnnotationList) Get(i int) Annotation {
	return l.list.Get(i)
}

func (l AnnotationList) All() iter.Seq[Annotation] {
	return func(yield func(Annotation) bool) {
		if l.list == nil {
			return
		}
		itr := l.list.Iterator()
		for !itr.Done() {
			_, a := itr.Next()
			if !yield(a) {
				return
			}
		}
	}
}

func (l AnnotationList) Slice() []Annotation {
	out := make([]Annotation, 0, l.Len())
	for a := range l.All() {
		out = append(out, a)
	}
	return out
}

// With returns a new list with annotations appended, leaving l untouched
func (l AnnotationList) With(annotations ...Annotation) AnnotationList {
	if len(annotations) == 0 {
		return l
	}
	list := l.list
	if list == nil {
		list = immutable.NewList[Annotation]()
	}
	for _, a := range annotations {
		list = list.Append(a)
	}
	return AnnotationList{list: list}
}

// Filter returns the annotations for which keep returns true
func (l AnnotationList) Filter(keep func(Annotation) bool) AnnotationList {
	var kept []Annotation
	for a := range l.All() {
		if keep(a) {
			kept = append(kept, a)
		}
	}
	return Annotations(kept...)
}

// IsAnnotationPresent reports whether an annotation of the given type is in the list
func (l AnnotationList) IsAnnotationPresent(annotationType string) bool {
	for a := range l.All() {
		if a.Type == annotationType {
			return true
		}
	}
	return false
}

func (l AnnotationList) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("AnnotationList"))
	arr := make([]byte, 0, 8*l.Len())
	for a := range l.All() {
		arr = binary.LittleEndian.AppendUint64(arr, a.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

func (l AnnotationList) String() string {
	parts := make([]string, 0, l.Len())
	for a := range l.All() {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, " ")
}
