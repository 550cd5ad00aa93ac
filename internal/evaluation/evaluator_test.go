package evaluation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/kishansingy/ielts-backend-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reading(t models.QuestionType, answers ...string) models.Question {
	return models.Question{Type: t, CorrectAnswers: answers, SkillArea: models.SkillReading}
}

func listening(t models.QuestionType, answers ...string) models.Question {
	return models.Question{Type: t, CorrectAnswers: answers, SkillArea: models.SkillListening}
}

func TestEvaluator_Evaluate(t *testing.T) {
	e := NewEvaluator()

	tests := []struct {
		name     string
		question models.Question
		answer   string
		want     bool
	}{
		// option keys
		{"multiple choice exact", reading(models.MultipleChoice, "B"), "B", true},
		{"multiple choice is case sensitive", reading(models.MultipleChoice, "B"), "b", false},
		{"multiple choice is not trimmed", reading(models.MultipleChoice, "B"), " B", false},
		{"matching exact", reading(models.Matching, "iv"), "iv", true},
		{"matching other key", reading(models.Matching, "iv"), "vi", false},

		// reading free text
		{"fill blank transposition", reading(models.FillBlank, "receive"), "recieve", true},
		{"fill blank case and punctuation", reading(models.FillBlank, "Library"), " library. ", true},
		{"short answer synonym", reading(models.ShortAnswer, "big"), "enormous", true},
		{"short answer plural", reading(models.ShortAnswer, "child"), "children", true},
		{"short answer trailing s", reading(models.ShortAnswer, "tree"), "trees", true},
		{"sentence completion partial", reading(models.SentenceCompletion, "football"), "football field", true},
		{"sentence completion second candidate", reading(models.SentenceCompletion, "harbour", "port"), "port", true},
		{"reading unrelated", reading(models.FillBlank, "mountain"), "river", false},
		{"reading short words need exact", reading(models.FillBlank, "cat"), "cut", false},

		// true false not given
		{"ng to not given", reading(models.TrueFalseNotGiven, "Not Given"), "NG", true},
		{"yes to true", reading(models.TrueFalseNotGiven, "TRUE"), "yes", true},
		{"incorrect to false", reading(models.TrueFalseNotGiven, "False"), "incorrect", true},
		{"not mentioned to not given", reading(models.TrueFalseNotGiven, "not given"), "Not mentioned", true},
		{"true is not false", reading(models.TrueFalseNotGiven, "True"), "False", false},
		{"false is not not given", reading(models.TrueFalseNotGiven, "False"), "NG", false},
		{"unknown compares as text", reading(models.TrueFalseNotGiven, "maybe"), "maybe", true},

		// listening
		{"form dollar stripped", listening(models.FormCompletion, "$50"), "50", true},
		{"note number word", listening(models.NoteCompletion, "3"), "three", true},
		{"map spelling variant", listening(models.MapLabeling, "theatre"), "Theater", true},
		{"diagram contraction", listening(models.DiagramLabeling, "do not"), "don't", true},
		{"table lenient spelling", listening(models.TableCompletion, "tuesday"), "tusday", true},
		{"listening percent", listening(models.TableCompletion, "45%"), "45", true},
		{"listening unrelated", listening(models.FormCompletion, "station"), "museum", false},

		// fallback by skill
		{"unknown reading uses synonyms", reading("picture_matching", "quick"), "rapid", true},
		{"unknown listening uses variations", listening("flow_chart", "2nd"), "second", true},
		{"unknown listening has no synonyms", listening("flow_chart", "quick"), "rapid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Evaluate(tt.answer, tt.question)
			assert.Equal(t, tt.want, result.IsCorrect)
			assert.Equal(t, tt.answer, result.UserAnswer)
			assert.Equal(t, tt.question.CorrectAnswers, result.CorrectAnswers)
		})
	}
}

func TestEvaluator_CurrencyWordIsNotAVariation(t *testing.T) {
	// The money variation groups relate currency words to each other, not an amount with
	// its unit, so "50 dollars" does not match "$50".
	e := NewEvaluator()

	result := e.Evaluate("50 dollars", listening(models.FormCompletion, "$50"))
	assert.False(t, result.IsCorrect)
}

func TestEvaluator_EmptyCorrectAnswersNeverCorrect(t *testing.T) {
	e := NewEvaluator()

	types := append([]models.QuestionType{"unknown"}, models.QuestionTypes...)
	for _, qt := range types {
		for _, skill := range []models.SkillArea{models.SkillReading, models.SkillListening} {
			for _, answer := range []string{"", "anything", "B", "true"} {
				q := models.Question{Type: qt, SkillArea: skill, CorrectAnswers: []string{}}
				assert.False(t, e.Evaluate(answer, q).IsCorrect, "%s/%s/%q", qt, skill, answer)
			}
		}
	}
}

func TestEvaluator_ExactNormalizedMatchIsCorrect(t *testing.T) {
	e := NewEvaluator()
	answers := []string{"Receive", "the town hall", "B", "Not Given", "$50", "45%", "x"}

	for _, qt := range models.QuestionTypes {
		for _, a := range answers {
			q := reading(qt, "zzzz", a)
			assert.True(t, e.Evaluate(a, q).IsCorrect, "%s %q", qt, a)
		}
	}
}

func TestEvaluator_Explanation(t *testing.T) {
	e := NewEvaluator()

	ok := e.Evaluate("B", reading(models.MultipleChoice, "B"))
	assert.Equal(t, "Correct!", ok.Explanation)

	bad := e.Evaluate("C", reading(models.MultipleChoice, "A", "B"))
	assert.Equal(t, "Incorrect. The correct answer(s): A, B. Your answer: C", bad.Explanation)
}

func TestEvaluator_EvaluateBatch(t *testing.T) {
	e := NewEvaluator()
	questions := []models.Question{
		reading(models.MultipleChoice, "A"),
		reading(models.FillBlank, "receive"),
	}

	t.Run("positional pairing", func(t *testing.T) {
		results := e.EvaluateBatch([]string{"A", "recieve"}, questions)
		require.Len(t, results, 2)
		assert.True(t, results[0].IsCorrect)
		assert.True(t, results[1].IsCorrect)
	})

	t.Run("extra answers skipped", func(t *testing.T) {
		results := e.EvaluateBatch([]string{"B", "receive", "extra", "more"}, questions)
		require.Len(t, results, 2)
		assert.False(t, results[0].IsCorrect)
		assert.True(t, results[1].IsCorrect)
	})

	t.Run("missing answers not evaluated", func(t *testing.T) {
		results := e.EvaluateBatch([]string{"A"}, questions)
		require.Len(t, results, 1)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, e.EvaluateBatch(nil, questions))
		assert.Empty(t, e.EvaluateBatch([]string{"A"}, nil))
	})
}

func TestEvaluator_EvaluateBatchParallel(t *testing.T) {
	e := NewEvaluator(WithWorkers(3))

	var answers []string
	var questions []models.Question
	for i := 0; i < 50; i++ {
		word := fmt.Sprintf("answer%d", i)
		questions = append(questions, reading(models.ShortAnswer, word))
		if i%2 == 0 {
			answers = append(answers, strings.ToUpper(word))
		} else {
			answers = append(answers, "wrong")
		}
	}
	answers = append(answers, "dangling")

	got, err := e.EvaluateBatchParallel(context.Background(), answers, questions)
	require.NoError(t, err)
	assert.Equal(t, e.EvaluateBatch(answers, questions), got)
}

func TestEvaluator_EvaluateBatchParallelCancelled(t *testing.T) {
	e := NewEvaluator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.EvaluateBatchParallel(ctx, []string{"A"}, []models.Question{reading(models.MultipleChoice, "A")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluator_Options(t *testing.T) {
	tables := NewReferenceTables([][]string{{"automobile", "car"}}, nil, nil)
	custom := MatcherFunc(func(answer string, correct []string) bool { return answer == "always" })

	e := NewEvaluator(
		WithReferenceTables(tables),
		WithMatcher("essay", custom),
	)

	assert.Same(t, tables, e.ReferenceTables())
	assert.True(t, e.Evaluate("car", reading(models.ShortAnswer, "automobile")).IsCorrect)
	assert.False(t, e.Evaluate("enormous", reading(models.ShortAnswer, "big")).IsCorrect)
	assert.True(t, e.Evaluate("always", reading("essay", "anything")).IsCorrect)
}
