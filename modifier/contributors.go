package modifier

import (
	"fmt"
	"strings"
)

var (
	_ ForField  = Visibility(0)
	_ ForMethod = Visibility(0)
	_ ForType   = Visibility(0)

	_ ForField  = Ownership(0)
	_ ForMethod = Ownership(0)
	_ ForType   = Ownership(0)

	_ ForField = FieldManifestation(0)
	_ ForField = FieldPersistence(0)

	_ ForMethod = MethodManifestation(0)
	_ ForMethod = SynchronizationState(0)
	_ ForMethod = MethodArguments(0)

	_ ForField     = SyntheticState(0)
	_ ForMethod    = SyntheticState(0)
	_ ForParameter = SyntheticState(0)
	_ ForType      = SyntheticState(0)

	_ ForParameter = ParameterManifestation(0)
	_ ForParameter = Mandate(0)

	_ ForField     = Rule{}
	_ ForMethod    = Rule{}
	_ ForParameter = Rule{}
	_ ForType      = Rule{}
)

// lookup returns the entry of table at index, or an unknown entry setting no bits
func lookup[I ~uint8](table []namedMask, index I) namedMask {
	if int(index) >= len(table) {
		return namedMask{name: fmt.Sprintf("unknown(%d)", index), mask: Empty}
	}
	return table[index]
}

type Visibility uint8

const (
	VisibilityPublic Visibility = iota
	VisibilityPackagePrivate
	VisibilityProtected
	VisibilityPrivate
)

var visibilities = [...]namedMask{
	VisibilityPublic:         {"public", Public},
	VisibilityPackagePrivate: {"package-private", Empty},
	VisibilityProtected:      {"protected", Protected},
	VisibilityPrivate:        {"private", Private},
}

func (v Visibility) Mask() int      { return lookup(visibilities[:], v).mask }
func (Visibility) Range() int       { return Public | Protected | Private }
func (v Visibility) String() string { return lookup(visibilities[:], v).name }
func (Visibility) forField()        {}
func (Visibility) forMethod()       {}
func (Visibility) forType()         {}

type Ownership uint8

const (
	OwnershipMember Ownership = iota
	OwnershipStatic
)

func (o Ownership) Mask() int {
	if o == OwnershipStatic {
		return Static
	}
	return Empty
}
func (Ownership) Range() int { return Static }
func (o Ownership) String() string {
	if o == OwnershipStatic {
		return "static"
	}
	return "member"
}
func (Ownership) forField()  {}
func (Ownership) forMethod() {}
func (Ownership) forType()   {}

type FieldManifestation uint8

const (
	FieldPlain FieldManifestation = iota
	FieldFinal
	FieldVolatile
)

var fieldManifestations = [...]namedMask{
	FieldPlain:    {"plain", Empty},
	FieldFinal:    {"final", Final},
	FieldVolatile: {"volatile", Volatile},
}

func (m FieldManifestation) Mask() int      { return lookup(fieldManifestations[:], m).mask }
func (FieldManifestation) Range() int       { return Final | Volatile }
func (m FieldManifestation) String() string { return lookup(fieldManifestations[:], m).name }
func (FieldManifestation) forField()        {}

type FieldPersistence uint8

const (
	FieldPersistent FieldPersistence = iota
	FieldTransient
)

func (p FieldPersistence) Mask() int {
	if p == FieldTransient {
		return Transient
	}
	return Empty
}
func (FieldPersistence) Range() int { return Transient }
func (p FieldPersistence) String() string {
	if p == FieldTransient {
		return "transient"
	}
	return "persistent"
}
func (FieldPersistence) forField() {}

type MethodManifestation uint8

const (
	MethodPlain MethodManifestation = iota
	MethodNative
	MethodAbstract
	MethodFinal
	MethodFinalNative
	MethodBridge
	MethodFinalBridge
)

var methodManifestations = [...]namedMask{
	MethodPlain:       {"plain", Empty},
	MethodNative:      {"native", Native},
	MethodAbstract:    {"abstract", Abstract},
	MethodFinal:       {"final", Final},
	MethodFinalNative: {"final native", Final | Native},
	MethodBridge:      {"bridge", Bridge},
	MethodFinalBridge: {"final bridge", Final | Bridge},
}

func (m MethodManifestation) Mask() int      { return lookup(methodManifestations[:], m).mask }
func (MethodManifestation) Range() int       { return Abstract | Final | Native | Bridge }
func (m MethodManifestation) String() string { return lookup(methodManifestations[:], m).name }
func (MethodManifestation) forMethod()       {}

type SynchronizationState uint8

const (
	SynchronizationPlain SynchronizationState = iota
	SynchronizationSynchronized
)

func (s SynchronizationState) Mask() int {
	if s == SynchronizationSynchronized {
		return Synchronized
	}
	return Empty
}
func (SynchronizationState) Range() int { return Synchronized }
func (s SynchronizationState) String() string {
	if s == SynchronizationSynchronized {
		return "synchronized"
	}
	return "unsynchronized"
}
func (SynchronizationState) forMethod() {}

type MethodArguments uint8

const (
	MethodArgumentsPlain MethodArguments = iota
	MethodArgumentsVarargs
)

func (a MethodArguments) Mask() int {
	if a == MethodArgumentsVarargs {
		return Varargs
	}
	return Empty
}
func (MethodArguments) Range() int { return Varargs }
func (a MethodArguments) String() string {
	if a == MethodArgumentsVarargs {
		return "varargs"
	}
	return "fixed-arguments"
}
func (MethodArguments) forMethod() {}

type SyntheticState uint8

const (
	SyntheticPlain SyntheticState = iota
	SyntheticSynthetic
)

func (s SyntheticState) Mask() int {
	if s == SyntheticSynthetic {
		return Synthetic
	}
	return Empty
}
func (SyntheticState) Range() int { return Synthetic }
func (s SyntheticState) String() string {
	if s == SyntheticSynthetic {
		return "synthetic"
	}
	return "non-synthetic"
}
func (SyntheticState) forField()     {}
func (SyntheticState) forMethod()    {}
func (SyntheticState) forParameter() {}
func (SyntheticState) forType()      {}

type ParameterManifestation uint8

const (
	ParameterPlain ParameterManifestation = iota
	ParameterFinal
)

func (m ParameterManifestation) Mask() int {
	if m == ParameterFinal {
		return Final
	}
	return Empty
}
func (ParameterManifestation) Range() int { return Final }
func (m ParameterManifestation) String() string {
	if m == ParameterFinal {
		return "final"
	}
	return "plain"
}
func (ParameterManifestation) forParameter() {}

type Mandate uint8

const (
	MandatePlain Mandate = iota
	MandateMandated
)

func (m Mandate) Mask() int {
	if m == MandateMandated {
		return Mandated
	}
	return Empty
}
func (Mandate) Range() int { return Mandated }
func (m Mandate) String() string {
	if m == MandateMandated {
		return "mandated"
	}
	return "explicit"
}
func (Mandate) forParameter() {}

// Rule is a named contributor with an arbitrary range, usable for any element.
// Bits of Value outside Bits are ignored.
type Rule struct {
	Name  string
	Bits  int
	Value int
}

func (r Rule) Mask() int      { return r.Value & r.Bits }
func (r Rule) Range() int     { return r.Bits }
func (r Rule) String() string { return r.Name }
func (Rule) forField()        {}
func (Rule) forMethod()       {}
func (Rule) forParameter()    {}
func (Rule) forType()         {}

var fieldContributors = map[string]ForField{
	"public":          VisibilityPublic,
	"package-private": VisibilityPackagePrivate,
	"protected":       VisibilityProtected,
	"private":         VisibilityPrivate,
	"static":          OwnershipStatic,
	"member":          OwnershipMember,
	"final":           FieldFinal,
	"volatile":        FieldVolatile,
	"plain":           FieldPlain,
	"transient":       FieldTransient,
	"persistent":      FieldPersistent,
	"synthetic":       SyntheticSynthetic,
	"non-synthetic":   SyntheticPlain,
}

var methodContributors = map[string]ForMethod{
	"public":          VisibilityPublic,
	"package-private": VisibilityPackagePrivate,
	"protected":       VisibilityProtected,
	"private":         VisibilityPrivate,
	"static":          OwnershipStatic,
	"member":          OwnershipMember,
	"plain":           MethodPlain,
	"native":          MethodNative,
	"abstract":        MethodAbstract,
	"final":           MethodFinal,
	"bridge":          MethodBridge,
	"synchronized":    SynchronizationSynchronized,
	"unsynchronized":  SynchronizationPlain,
	"varargs":         MethodArgumentsVarargs,
	"fixed-arguments": MethodArgumentsPlain,
	"synthetic":       SyntheticSynthetic,
	"non-synthetic":   SyntheticPlain,
}

var parameterContributors = map[string]ForParameter{
	"final":         ParameterFinal,
	"plain":         ParameterPlain,
	"mandated":      MandateMandated,
	"explicit":      MandatePlain,
	"synthetic":     SyntheticSynthetic,
	"non-synthetic": SyntheticPlain,
}

func parseAll[C Contributor](kind string, table map[string]C, names []string) ([]C, error) {
	out := make([]C, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		c, ok := table[name]
		if !ok {
			return nil, fmt.Errorf("unknown %s modifier '%s'", kind, name)
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseField looks up field contributors by name, e.g. "private", "final"
func ParseField(names ...string) ([]ForField, error) {
	return parseAll("field", fieldContributors, names)
}

// ParseMethod looks up method contributors by name, e.g. "public", "synchronized"
func ParseMethod(names ...string) ([]ForMethod, error) {
	return parseAll("method", methodContributors, names)
}

// ParseParameter looks up parameter contributors by name, e.g. "final", "mandated"
func ParseParameter(names ...string) ([]ForParameter, error) {
	return parseAll("parameter", parameterContributors, names)
}

var typeContributors = map[string]ForType{
	"public":          VisibilityPublic,
	"package-private": VisibilityPackagePrivate,
	"protected":       VisibilityProtected,
	"private":         VisibilityPrivate,
	"static":          OwnershipStatic,
	"final":           Rule{Name: "final", Bits: Final, Value: Final},
	"abstract":        Rule{Name: "abstract", Bits: Abstract, Value: Abstract},
	"enum":            Rule{Name: "enum", Bits: Enum, Value: Enum},
	"synthetic":       SyntheticSynthetic,
}

// ParseType looks up type contributors by name, e.g. "public", "abstract"
func ParseType(names ...string) ([]ForType, error) {
	return parseAll("type", typeContributors, names)
}
