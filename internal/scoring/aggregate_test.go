package scoring

import (
	"testing"

	"github.com/kishansingy/ielts-backend-sub000/internal/models"
	"github.com/stretchr/testify/assert"
)

func results() []models.EvaluationResult {
	return []models.EvaluationResult{
		{SkillArea: models.SkillListening, IsCorrect: true},
		{SkillArea: models.SkillReading, IsCorrect: true},
		{SkillArea: models.SkillReading, IsCorrect: false},
		{SkillArea: models.SkillListening, IsCorrect: true},
		{SkillArea: models.SkillReading, IsCorrect: true},
	}
}

func TestAggregate(t *testing.T) {
	assert.Equal(t, models.AggregateOutcome{CorrectCount: 2, TotalCount: 3, SkillArea: models.SkillReading},
		Aggregate(results(), models.SkillReading))
	assert.Equal(t, models.AggregateOutcome{CorrectCount: 2, TotalCount: 2, SkillArea: models.SkillListening},
		Aggregate(results(), models.SkillListening))
	assert.Equal(t, models.AggregateOutcome{SkillArea: models.SkillReading},
		Aggregate(nil, models.SkillReading))
}

func TestAggregateBySkill(t *testing.T) {
	outcomes := AggregateBySkill(results())

	assert.Equal(t, []models.AggregateOutcome{
		{CorrectCount: 2, TotalCount: 2, SkillArea: models.SkillListening},
		{CorrectCount: 2, TotalCount: 3, SkillArea: models.SkillReading},
	}, outcomes)
	assert.Empty(t, AggregateBySkill(nil))
}

func TestScoreOutcome(t *testing.T) {
	report := ScoreOutcome(models.AggregateOutcome{CorrectCount: 27, TotalCount: 30, SkillArea: models.SkillReading})
	assert.Equal(t, 8.5, report.Band)
	assert.Equal(t, 27, report.CorrectCount)
}
