package models

// EvaluationResult is the verdict for one answer. It is created fresh per evaluation
// and never mutated.
type EvaluationResult struct {
	QuestionID     string    `json:"question_id,omitempty"`
	SkillArea      SkillArea `json:"skill_area"`
	IsCorrect      bool      `json:"is_correct"`
	UserAnswer     string    `json:"user_answer"`
	CorrectAnswers []string  `json:"correct_answers"`
	Explanation    string    `json:"explanation"`
}

// AggregateOutcome is the folded count of evaluation results for one skill area.
type AggregateOutcome struct {
	CorrectCount int       `json:"correct_count"`
	TotalCount   int       `json:"total_count"`
	SkillArea    SkillArea `json:"skill_area"`
}

// NoBand marks a report computed from zero questions.
const NoBand = 0.0

type ScoreReport struct {
	SkillArea          SkillArea `json:"skill_area"`
	CorrectCount       int       `json:"correct_count"`
	TotalCount         int       `json:"total_count"`
	AccuracyPercentage float64   `json:"accuracy_percentage"`
	Band               float64   `json:"band"`
}

// Scoreable is false for the no-data sentinel, which callers must not show as a band.
func (r ScoreReport) Scoreable() bool {
	return r.Band != NoBand
}
