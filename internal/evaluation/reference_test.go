package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceTables_AreSynonyms(t *testing.T) {
	tables := DefaultReferenceTables()

	assert.True(t, tables.AreSynonyms("big", "enormous"))
	assert.True(t, tables.AreSynonyms("giant", "large"))
	assert.True(t, tables.AreSynonyms("purchase", "buy"))
	assert.False(t, tables.AreSynonyms("big", "small"))
	assert.False(t, tables.AreSynonyms("big", "unknownword"))
	assert.False(t, tables.AreSynonyms("", ""))
}

func TestReferenceTables_IgnoreCaseAndSymbols(t *testing.T) {
	tables := DefaultReferenceTables()

	assert.True(t, tables.AreSynonyms("Big", "large"))
	assert.True(t, tables.AreSynonyms("  PURCHASE!", "Buy"))
	assert.True(t, tables.MatchesVariationGroup("Seven", "7"))
	assert.True(t, tables.MatchesVariationGroup("Don't", "do not"))
	assert.True(t, tables.ArePluralVariants("Children", "child"))
	assert.True(t, tables.ArePluralVariants("Books.", "book"))

	imported := NewReferenceTables(nil, [][]string{{"50 dollars", "$50"}}, nil)
	assert.True(t, imported.MatchesVariationGroup("$50", "50 Dollars"))
	assert.True(t, imported.MatchesVariationGroup("50", "50 dollars"), "currency symbols are dropped before lookup")
}

func TestReferenceTables_ArePluralVariants(t *testing.T) {
	tables := DefaultReferenceTables()

	tests := []struct {
		a, b string
		want bool
	}{
		{"book", "books", true},
		{"books", "book", true},
		{"child", "children", true},
		{"people", "person", true},
		{"men", "man", true},
		{"woman", "women", true},
		{"feet", "foot", true},
		{"tooth", "teeth", true},
		{"box", "boxes", false},
		{"child", "childs", true},
		{"man", "women", false},
		{"", "s", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, tables.ArePluralVariants(tt.a, tt.b))
		})
	}
}

func TestIsPartialMatch(t *testing.T) {
	assert.True(t, IsPartialMatch("football", "football field"))
	assert.True(t, IsPartialMatch("underground train", "underground"))
	assert.True(t, IsPartialMatch("ball", "football"))
	assert.False(t, IsPartialMatch("foot", "bar"), "shorter side under minimum")
	assert.False(t, IsPartialMatch("car", "carpark"), "three letters is too short")
	assert.False(t, IsPartialMatch("river", "ocean"))
}

func TestReferenceTables_MatchesVariationGroup(t *testing.T) {
	tables := DefaultReferenceTables()

	assert.True(t, tables.MatchesVariationGroup("1", "one"))
	assert.True(t, tables.MatchesVariationGroup("colour", "color"))
	assert.True(t, tables.MatchesVariationGroup("dont", "do not"))
	assert.True(t, tables.MatchesVariationGroup("noon", "12 pm"))
	assert.False(t, tables.MatchesVariationGroup("1", "two"))
	assert.False(t, tables.MatchesVariationGroup("50", "50 dollars"))
}

func TestNewReferenceTables_NormalizesAndDropsDegenerateGroups(t *testing.T) {
	tables := NewReferenceTables(
		[][]string{{"Big!", " LARGE "}, {"solo"}, {"dup", "DUP"}, {"", "x"}},
		[][]string{{"$5", "five"}},
		[]IrregularPair{{Singular: "Mouse", Plural: "Mice"}, {Singular: "", Plural: "x"}},
	)

	assert.True(t, tables.AreSynonyms("big", "large"))
	assert.Equal(t, [][]string{{"big", "large"}}, tables.SynonymGroups())
	assert.Equal(t, [][]string{{"5", "five"}}, tables.VariationGroups())
	assert.Equal(t, []IrregularPair{{Singular: "mouse", Plural: "mice"}}, tables.IrregularPlurals())
	assert.True(t, tables.ArePluralVariants("mice", "mouse"))
}

func TestReferenceTables_AccessorsReturnCopies(t *testing.T) {
	tables := NewReferenceTables([][]string{{"big", "large"}}, nil, nil)

	groups := tables.SynonymGroups()
	groups[0][0] = "mutated"

	assert.True(t, tables.AreSynonyms("big", "large"))
	assert.Equal(t, "big", tables.SynonymGroups()[0][0])
}
