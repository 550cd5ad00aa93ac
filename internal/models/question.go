package models

type QuestionType string

const (
	// Option-key types
	MultipleChoice QuestionType = "multiple_choice"
	Matching       QuestionType = "matching"

	// Reading free-text types
	FillBlank          QuestionType = "fill_blank"
	ShortAnswer        QuestionType = "short_answer"
	SentenceCompletion QuestionType = "sentence_completion"

	TrueFalseNotGiven QuestionType = "true_false_not_given"

	// Listening free-text types
	FormCompletion  QuestionType = "form_completion"
	NoteCompletion  QuestionType = "note_completion"
	MapLabeling     QuestionType = "map_labeling"
	DiagramLabeling QuestionType = "diagram_labeling"
	TableCompletion QuestionType = "table_completion"
)

// QuestionTypes lists every question type the evaluator has a dedicated rule for.
var QuestionTypes = []QuestionType{
	MultipleChoice,
	Matching,
	FillBlank,
	ShortAnswer,
	SentenceCompletion,
	TrueFalseNotGiven,
	FormCompletion,
	NoteCompletion,
	MapLabeling,
	DiagramLabeling,
	TableCompletion,
}

// IsKnown reports whether t has a dedicated matching rule.
func (t QuestionType) IsKnown() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

type SkillArea string

const (
	SkillReading   SkillArea = "reading"
	SkillListening SkillArea = "listening"
)

func (s SkillArea) IsValid() bool {
	return s == SkillReading || s == SkillListening
}

// Question is the view of a question the evaluator needs. CorrectAnswers holds every
// acceptable surface form; an empty list makes every answer incorrect.
type Question struct {
	ID             string       `json:"id,omitempty"`
	Type           QuestionType `json:"type" validate:"required"`
	CorrectAnswers []string     `json:"correct_answers"`
	SkillArea      SkillArea    `json:"skill_area" validate:"required,skill_area"`
}
