package evaluation

import "strings"

// ReferenceTables holds the static word lists the matchers consult. A value is built once
// and never mutated afterwards, so one instance can be shared by any number of goroutines.
type ReferenceTables struct {
	synonymGroups   [][]string
	variationGroups [][]string
	irregularPairs  []IrregularPair
	irregularPlural map[string]string

	// word -> indexes of the groups containing it
	synonymIndex   map[string][]int
	variationIndex map[string][]int
}

// IrregularPair is a singular/plural pair that suffix stripping cannot relate.
type IrregularPair struct {
	Singular string
	Plural   string
}

// NewReferenceTables builds tables from raw groups. Synonym entries are normalized with
// reading rules, variation entries with listening rules; empty entries and groups with
// fewer than two distinct forms are dropped.
func NewReferenceTables(synonyms, variations [][]string, irregular []IrregularPair) *ReferenceTables {
	t := &ReferenceTables{
		irregularPlural: make(map[string]string, len(irregular)*2),
	}
	t.synonymGroups, t.synonymIndex = buildGroups(synonyms, NormalizeForReading)
	t.variationGroups, t.variationIndex = buildGroups(variations, NormalizeForListening)

	for _, p := range irregular {
		singular := NormalizeForReading(p.Singular)
		plural := NormalizeForReading(p.Plural)
		if singular == "" || plural == "" {
			continue
		}
		t.irregularPairs = append(t.irregularPairs, IrregularPair{Singular: singular, Plural: plural})
		t.irregularPlural[singular] = plural
		t.irregularPlural[plural] = singular
	}
	return t
}

func buildGroups(raw [][]string, norm func(string) string) ([][]string, map[string][]int) {
	groups := make([][]string, 0, len(raw))
	index := make(map[string][]int)
	for _, group := range raw {
		seen := make(map[string]struct{}, len(group))
		forms := make([]string, 0, len(group))
		for _, entry := range group {
			n := norm(entry)
			if n == "" {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			forms = append(forms, n)
		}
		if len(forms) < 2 {
			continue
		}
		id := len(groups)
		groups = append(groups, forms)
		for _, f := range forms {
			index[f] = append(index[f], id)
		}
	}
	return groups, index
}

// AreSynonyms reports whether some synonym group contains both words under reading
// normalization, so case and punctuation are ignored.
func (t *ReferenceTables) AreSynonyms(a, b string) bool {
	return shareGroup(t.synonymIndex, NormalizeForReading(a), NormalizeForReading(b))
}

// MatchesVariationGroup reports whether some variation group contains both forms under
// listening normalization.
func (t *ReferenceTables) MatchesVariationGroup(a, b string) bool {
	return shareGroup(t.variationIndex, NormalizeForListening(a), NormalizeForListening(b))
}

func shareGroup(index map[string][]int, a, b string) bool {
	ga, ok := index[a]
	if !ok {
		return false
	}
	gb, ok := index[b]
	if !ok {
		return false
	}
	for _, x := range ga {
		for _, y := range gb {
			if x == y {
				return true
			}
		}
	}
	return false
}

// ArePluralVariants reports whether a and b differ only by a trailing "s" on one side,
// or form a known irregular singular/plural pair in either direction. Both sides are
// compared under reading normalization.
func (t *ReferenceTables) ArePluralVariants(a, b string) bool {
	a, b = NormalizeForReading(a), NormalizeForReading(b)
	if a == "" || b == "" {
		return false
	}
	if strings.TrimSuffix(a, "s") == b || strings.TrimSuffix(b, "s") == a {
		return true
	}
	other, ok := t.irregularPlural[a]
	return ok && other == b
}

// SynonymGroups returns a copy of the normalized synonym groups.
func (t *ReferenceTables) SynonymGroups() [][]string {
	return copyGroups(t.synonymGroups)
}

// VariationGroups returns a copy of the normalized variation groups.
func (t *ReferenceTables) VariationGroups() [][]string {
	return copyGroups(t.variationGroups)
}

// IrregularPlurals returns the singular/plural pairs.
func (t *ReferenceTables) IrregularPlurals() []IrregularPair {
	return append([]IrregularPair(nil), t.irregularPairs...)
}

func copyGroups(groups [][]string) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = append([]string(nil), g...)
	}
	return out
}

// IsPartialMatch reports whether both strings are at least MinPartialMatchLength runes
// long and one contains the other.
func IsPartialMatch(a, b string) bool {
	if len([]rune(a)) < MinPartialMatchLength || len([]rune(b)) < MinPartialMatchLength {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
