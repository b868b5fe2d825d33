package modifier_test

import (
	"testing"

	"github.com/cottand/rebind/modifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOrder(t *testing.T) {
	setPublicClearPrivate := modifier.VisibilityPublic
	setFinal := modifier.FieldFinal

	resolved := modifier.Resolve[modifier.ForField](modifier.Private, setPublicClearPrivate, setFinal)
	assert.Equal(t, modifier.Public|modifier.Final, resolved)
	assert.Zero(t, resolved&modifier.Private)

	t.Run("disjoint ranges commute", func(t *testing.T) {
		reversed := modifier.Resolve[modifier.ForField](modifier.Private, setFinal, setPublicClearPrivate)
		assert.Equal(t, resolved, reversed)
	})

	t.Run("overlapping ranges do not commute", func(t *testing.T) {
		finalPublic := modifier.Rule{Name: "final-public", Bits: modifier.Final | modifier.Public | modifier.Private, Value: modifier.Final | modifier.Private}
		forward := modifier.Resolve[modifier.ForField](modifier.Private, setPublicClearPrivate, finalPublic)
		backward := modifier.Resolve[modifier.ForField](modifier.Private, finalPublic, setPublicClearPrivate)
		assert.Equal(t, modifier.Final|modifier.Private, forward)
		assert.Equal(t, modifier.Final|modifier.Public, backward)
		assert.NotEqual(t, forward, backward)
	})
}

func TestResolveLaterContributorWins(t *testing.T) {
	resolver := modifier.ResolverOf[modifier.ForMethod](modifier.VisibilityPrivate, modifier.VisibilityProtected)
	assert.Equal(t, modifier.Protected|modifier.Static, resolver.Resolve(modifier.Public|modifier.Static))
}

func TestResolveEmptyKeepsBase(t *testing.T) {
	base := modifier.Public | modifier.Static | modifier.Final
	assert.Equal(t, base, modifier.ResolverOf[modifier.ForField]().Resolve(base))
	assert.Equal(t, base, modifier.Resolve[modifier.ForMethod](base))
}

func TestResolveOnlyTouchesRange(t *testing.T) {
	base := modifier.Public | modifier.Volatile | modifier.Transient
	resolved := modifier.Resolve[modifier.ForField](base, modifier.FieldFinal)
	// volatile shares the manifestation range with final
	assert.Equal(t, modifier.Public|modifier.Final|modifier.Transient, resolved)
}

func TestRuleMaskStaysInRange(t *testing.T) {
	rule := modifier.Rule{Name: "odd", Bits: modifier.Final, Value: modifier.Final | modifier.Public}
	assert.Equal(t, modifier.Final, rule.Mask())
	assert.Equal(t, modifier.Final, modifier.Resolve[modifier.ForField](modifier.Empty, rule))
}

func TestParse(t *testing.T) {
	fields, err := modifier.ParseField("private", " FINAL ", "")
	require.NoError(t, err)
	assert.Equal(t, modifier.Private|modifier.Final, modifier.Resolve(modifier.Public, fields...))

	methods, err := modifier.ParseMethod("synchronized", "final")
	require.NoError(t, err)
	assert.Equal(t, modifier.Synchronized|modifier.Final, modifier.Resolve(modifier.Empty, methods...))

	_, err = modifier.ParseField("synchronized")
	assert.ErrorContains(t, err, "unknown field modifier 'synchronized'")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "private static final", modifier.Describe(modifier.Private|modifier.Final|modifier.Static))
	assert.Equal(t, "public bridge varargs", modifier.DescribeMethod(modifier.Public|modifier.Bridge|modifier.Varargs))
	assert.Equal(t, "", modifier.Describe(modifier.Empty))
}

func TestUnknownContributorSetsNothing(t *testing.T) {
	unknown := modifier.Visibility(9)
	assert.Equal(t, modifier.Empty, unknown.Mask())
	assert.Equal(t, "unknown(9)", unknown.String())
	assert.Equal(t, "unknown(7)", modifier.FieldManifestation(7).String())
	assert.Equal(t, modifier.Empty, modifier.MethodManifestation(200).Mask())

	resolved := modifier.Resolve[modifier.ForField](modifier.Private|modifier.Final, unknown)
	assert.Equal(t, modifier.Final, resolved)
}
