package scoring

import "github.com/kishansingy/ielts-backend-sub000/internal/models"

// Aggregate counts the results that belong to skill.
func Aggregate(results []models.EvaluationResult, skill models.SkillArea) models.AggregateOutcome {
	out := models.AggregateOutcome{SkillArea: skill}
	for _, r := range results {
		if r.SkillArea != skill {
			continue
		}
		out.TotalCount++
		if r.IsCorrect {
			out.CorrectCount++
		}
	}
	return out
}

// AggregateBySkill folds results into one outcome per skill, in order of first appearance.
func AggregateBySkill(results []models.EvaluationResult) []models.AggregateOutcome {
	index := make(map[models.SkillArea]int)
	var outcomes []models.AggregateOutcome

	for _, r := range results {
		i, ok := index[r.SkillArea]
		if !ok {
			i = len(outcomes)
			index[r.SkillArea] = i
			outcomes = append(outcomes, models.AggregateOutcome{SkillArea: r.SkillArea})
		}
		outcomes[i].TotalCount++
		if r.IsCorrect {
			outcomes[i].CorrectCount++
		}
	}
	return outcomes
}
