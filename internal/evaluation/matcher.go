package evaluation

import "github.com/kishansingy/ielts-backend-sub000/internal/models"

// Matcher decides whether a raw user answer matches any of the accepted answers.
// Implementations apply their own normalization.
type Matcher interface {
	Match(answer string, correctAnswers []string) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(answer string, correctAnswers []string) bool

func (f MatcherFunc) Match(answer string, correctAnswers []string) bool {
	return f(answer, correctAnswers)
}

// exactMatcher accepts only a case-sensitive, byte-equal option key.
type exactMatcher struct{}

func (exactMatcher) Match(answer string, correctAnswers []string) bool {
	for _, c := range correctAnswers {
		if answer == c {
			return true
		}
	}
	return false
}

// readingMatcher accepts normalized equality, near spellings, synonyms, plural forms and
// containment, checked in that order per candidate.
type readingMatcher struct {
	tables    *ReferenceTables
	threshold float64
}

func (m readingMatcher) Match(answer string, correctAnswers []string) bool {
	user := NormalizeForReading(answer)
	for _, c := range correctAnswers {
		candidate := NormalizeForReading(c)
		switch {
		case user == candidate,
			Similarity(user, candidate) >= m.threshold,
			m.tables.AreSynonyms(user, candidate),
			m.tables.ArePluralVariants(user, candidate),
			IsPartialMatch(user, candidate):
			return true
		}
	}
	return false
}

// listeningMatcher accepts normalized equality, variation groups and near spellings.
type listeningMatcher struct {
	tables    *ReferenceTables
	threshold float64
}

func (m listeningMatcher) Match(answer string, correctAnswers []string) bool {
	user := NormalizeForListening(answer)
	for _, c := range correctAnswers {
		candidate := NormalizeForListening(c)
		switch {
		case user == candidate,
			m.tables.MatchesVariationGroup(user, candidate),
			Similarity(user, candidate) >= m.threshold:
			return true
		}
	}
	return false
}

// Judgement buckets for true/false/not given questions.
const (
	judgementTrue     = "true"
	judgementFalse    = "false"
	judgementNotGiven = "not_given"
)

var judgementBuckets = map[string]string{
	"true":    judgementTrue,
	"t":       judgementTrue,
	"yes":     judgementTrue,
	"y":       judgementTrue,
	"correct": judgementTrue,
	"right":   judgementTrue,

	"false":     judgementFalse,
	"f":         judgementFalse,
	"no":        judgementFalse,
	"n":         judgementFalse,
	"incorrect": judgementFalse,
	"wrong":     judgementFalse,

	"not given":      judgementNotGiven,
	"notgiven":       judgementNotGiven,
	"ng":             judgementNotGiven,
	"not mentioned":  judgementNotGiven,
	"not stated":     judgementNotGiven,
	"no information": judgementNotGiven,
}

// judgement maps s to its bucket. Unrecognized input stays as its normalized form, so two
// identical unrecognized strings still compare equal.
func judgement(s string) string {
	n := NormalizeForReading(s)
	if bucket, ok := judgementBuckets[n]; ok {
		return bucket
	}
	return n
}

type judgementMatcher struct{}

func (judgementMatcher) Match(answer string, correctAnswers []string) bool {
	user := judgement(answer)
	for _, c := range correctAnswers {
		if user == judgement(c) {
			return true
		}
	}
	return false
}

type matcherSet struct {
	byType    map[models.QuestionType]Matcher
	reading   Matcher
	listening Matcher
}

func newMatcherSet(tables *ReferenceTables, readingThreshold, listeningThreshold float64) matcherSet {
	reading := readingMatcher{tables: tables, threshold: readingThreshold}
	listening := listeningMatcher{tables: tables, threshold: listeningThreshold}
	return matcherSet{
		byType: map[models.QuestionType]Matcher{
			models.MultipleChoice:     exactMatcher{},
			models.Matching:           exactMatcher{},
			models.FillBlank:          reading,
			models.ShortAnswer:        reading,
			models.SentenceCompletion: reading,
			models.TrueFalseNotGiven:  judgementMatcher{},
			models.FormCompletion:     listening,
			models.NoteCompletion:     listening,
			models.MapLabeling:        listening,
			models.DiagramLabeling:    listening,
			models.TableCompletion:    listening,
		},
		reading:   reading,
		listening: listening,
	}
}

// forQuestion returns the matcher for q and whether it came from the skill fallback.
func (s matcherSet) forQuestion(q models.Question) (Matcher, bool) {
	if m, ok := s.byType[q.Type]; ok {
		return m, false
	}
	if q.SkillArea == models.SkillListening {
		return s.listening, true
	}
	return s.reading, true
}
