package validator

import (
	"fmt"
	"strings"

	"github.com/kishansingy/ielts-backend-sub000/internal/evaluation"
	"github.com/kishansingy/ielts-backend-sub000/internal/models"
)

// QuestionValidator inspects questions for authoring problems. Evaluation tolerates all of
// them, so findings are warnings rather than errors.
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// Inspect returns one message per problem found in q.
func (v *QuestionValidator) Inspect(q models.Question) []string {
	var issues []string

	if len(q.CorrectAnswers) == 0 {
		issues = append(issues, "no correct answers: every response will be marked incorrect")
	}
	for i, a := range q.CorrectAnswers {
		switch {
		case strings.TrimSpace(a) == "":
			issues = append(issues, fmt.Sprintf("correct answer %d is blank", i+1))
		case !exactKeyed(q.Type) && normalizedFor(q.SkillArea, a) == "":
			issues = append(issues, fmt.Sprintf("correct answer %d has no letters or digits: an empty response will match it", i+1))
		}
	}
	if !q.Type.IsKnown() {
		issues = append(issues, fmt.Sprintf("unknown question type %q: %s fuzzy rules apply", q.Type, fallbackRules(q.SkillArea)))
	}

	return issues
}

// InspectBatch keys findings by question position.
func (v *QuestionValidator) InspectBatch(questions []models.Question) map[int][]string {
	found := make(map[int][]string)
	for i, q := range questions {
		if issues := v.Inspect(q); len(issues) > 0 {
			found[i] = issues
		}
	}
	return found
}

// exactKeyed types compare raw option keys, so normalization never applies to them.
func exactKeyed(t models.QuestionType) bool {
	return t == models.MultipleChoice || t == models.Matching
}

func normalizedFor(skill models.SkillArea, s string) string {
	if skill == models.SkillListening {
		return evaluation.NormalizeForListening(s)
	}
	return evaluation.NormalizeForReading(s)
}

func fallbackRules(skill models.SkillArea) string {
	if skill == models.SkillListening {
		return "listening"
	}
	return "reading"
}
