package evaluation

import "sync"

const (
	// ReadingSimilarityThreshold is the minimum similarity accepted for reading free text.
	ReadingSimilarityThreshold = 0.8
	// ListeningSimilarityThreshold is lower: listening answers are transcribed under time pressure.
	ListeningSimilarityThreshold = 0.75
	// MinPartialMatchLength is the shortest string eligible for containment matching.
	MinPartialMatchLength = 4
)

var defaultSynonymGroups = [][]string{
	{"big", "large", "huge", "enormous", "massive", "giant"},
	{"small", "little", "tiny", "miniature"},
	{"fast", "quick", "rapid", "swift"},
	{"happy", "glad", "joyful", "cheerful"},
	{"sad", "unhappy", "miserable"},
	{"important", "significant", "crucial", "vital", "essential"},
	{"begin", "start", "commence"},
	{"end", "finish", "conclude"},
	{"buy", "purchase"},
	{"help", "assist", "aid"},
	{"show", "demonstrate", "display"},
	{"increase", "rise", "grow"},
	{"decrease", "decline", "fall", "drop"},
	{"old", "ancient", "elderly", "aged"},
	{"difficult", "hard", "challenging"},
	{"easy", "simple", "effortless"},
}

// Variation groups cover numbers, dates, times, money, spelling and contractions.
// Entries are compared after listening normalization, so apostrophes are already gone.
var defaultVariationGroups = [][]string{
	// numbers
	{"1", "one"},
	{"2", "two"},
	{"3", "three"},
	{"4", "four"},
	{"5", "five"},
	{"6", "six"},
	{"7", "seven"},
	{"8", "eight"},
	{"9", "nine"},
	{"10", "ten"},
	{"12", "twelve", "dozen", "a dozen"},
	{"100", "hundred", "one hundred", "a hundred"},
	// dates
	{"1st", "first"},
	{"2nd", "second"},
	{"3rd", "third"},
	{"jan", "january"},
	{"feb", "february"},
	{"mar", "march"},
	{"apr", "april"},
	{"aug", "august"},
	{"sept", "sep", "september"},
	{"oct", "october"},
	{"nov", "november"},
	{"dec", "december"},
	// times
	{"12 pm", "12pm", "noon", "midday"},
	{"12 am", "12am", "midnight"},
	// money
	{"dollar", "dollars", "usd"},
	{"pound", "pounds", "gbp"},
	{"euro", "euros", "eur"},
	// spelling
	{"colour", "color"},
	{"centre", "center"},
	{"theatre", "theater"},
	{"organise", "organize"},
	{"travelling", "traveling"},
	{"programme", "program"},
	{"licence", "license"},
	// contractions
	{"dont", "do not"},
	{"cant", "cannot", "can not"},
	{"wont", "will not"},
	{"isnt", "is not"},
	{"doesnt", "does not"},
}

var defaultIrregularPlurals = []IrregularPair{
	{Singular: "child", Plural: "children"},
	{Singular: "person", Plural: "people"},
	{Singular: "man", Plural: "men"},
	{Singular: "woman", Plural: "women"},
	{Singular: "foot", Plural: "feet"},
	{Singular: "tooth", Plural: "teeth"},
}

var (
	defaultTablesOnce sync.Once
	defaultTables     *ReferenceTables
)

// DefaultReferenceTables returns the shared built-in tables.
func DefaultReferenceTables() *ReferenceTables {
	defaultTablesOnce.Do(func() {
		defaultTables = NewReferenceTables(defaultSynonymGroups, defaultVariationGroups, defaultIrregularPlurals)
	})
	return defaultTables
}
