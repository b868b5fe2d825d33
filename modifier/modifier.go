// Package modifier resolves modifier bitmasks from ordered lists of contributors.
//
// A Contributor controls a range of bits and imposes a mask within that range.
// Resolving applies contributors in order, each one clearing its range and
// setting its mask, so that later contributors win over earlier ones wherever
// their ranges overlap.
package modifier

import (
	"strings"
)

const (
	Public       = 0x0001
	Private      = 0x0002
	Protected    = 0x0004
	Static       = 0x0008
	Final        = 0x0010
	Synchronized = 0x0020
	Volatile     = 0x0040
	Bridge       = 0x0040
	Transient    = 0x0080
	Varargs      = 0x0080
	Native       = 0x0100
	Abstract     = 0x0400
	Strict       = 0x0800
	Synthetic    = 0x1000
	Enum         = 0x4000
	Mandated     = 0x8000
)

// Empty is the mask without any modifier
const Empty = 0

type Contributor interface {
	// Mask is the value imposed within Range
	Mask() int
	// Range is the set of bits this contributor controls
	Range() int
	String() string
}

// ForField is a Contributor applicable to fields
type ForField interface {
	Contributor
	forField()
}

// ForMethod is a Contributor applicable to methods
type ForMethod interface {
	Contributor
	forMethod()
}

// ForParameter is a Contributor applicable to parameters
type ForParameter interface {
	Contributor
	forParameter()
}

// ForType is a Contributor applicable to types
type ForType interface {
	Contributor
	forType()
}

// Resolver applies an ordered list of contributors to a base mask
type Resolver[C Contributor] struct {
	contributors []C
}

func ResolverOf[C Contributor](contributors ...C) Resolver[C] {
	return Resolver[C]{contributors: append([]C(nil), contributors...)}
}

// Resolve clears the range of every contributor in order and sets its mask
func (r Resolver[C]) Resolve(modifiers int) int {
	for _, c := range r.contributors {
		modifiers = modifiers&^c.Range() | c.Mask()
	}
	return modifiers
}

func (r Resolver[C]) String() string {
	names := make([]string, len(r.contributors))
	for i, c := range r.contributors {
		names[i] = c.String()
	}
	return "Resolver[" + strings.Join(names, ", ") + "]"
}

// Resolve applies contributors to base in order
func Resolve[C Contributor](base int, contributors ...C) int {
	return ResolverOf(contributors...).Resolve(base)
}

// Describe renders the modifier names set in modifiers, in source order
func Describe(modifiers int) string {
	return describe(modifiers, describeOrder)
}

// DescribeMethod is Describe for methods, where the volatile and transient bits mean bridge and varargs
func DescribeMethod(modifiers int) string {
	return describe(modifiers, describeMethodOrder)
}

func describe(modifiers int, order []namedMask) string {
	var names []string
	for _, m := range order {
		if modifiers&m.mask != 0 {
			names = append(names, m.name)
		}
	}
	return strings.Join(names, " ")
}

type namedMask struct {
	name string
	mask int
}

var describeMethodOrder = []namedMask{
	{"public", Public},
	{"protected", Protected},
	{"private", Private},
	{"abstract", Abstract},
	{"static", Static},
	{"final", Final},
	{"synchronized", Synchronized},
	{"native", Native},
	{"strictfp", Strict},
	{"bridge", Bridge},
	{"varargs", Varargs},
	{"synthetic", Synthetic},
}

var describeOrder = []namedMask{
	{"public", Public},
	{"protected", Protected},
	{"private", Private},
	{"abstract", Abstract},
	{"static", Static},
	{"final", Final},
	{"transient", Transient},
	{"volatile", Volatile},
	{"synchronized", Synchronized},
	{"native", Native},
	{"strictfp", Strict},
	{"synthetic", Synthetic},
	{"enum", Enum},
	{"mandated", Mandated},
}
