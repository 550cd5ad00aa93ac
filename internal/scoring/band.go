package scoring

import "github.com/kishansingy/ielts-backend-sub000/internal/models"

// FloorBand is awarded when accuracy is below every threshold of a table.
const FloorBand = 2.5

// BandThreshold awards Band when accuracy is at least MinAccuracy percent.
type BandThreshold struct {
	MinAccuracy float64
	Band        float64
}

// Thresholds are ordered from the highest band down. Historical score reports depend on
// these exact values.
var (
	readingBands = []BandThreshold{
		{95, 9.0},
		{89, 8.5},
		{83, 8.0},
		{75, 7.5},
		{67, 7.0},
		{58, 6.5},
		{50, 6.0},
		{42, 5.5},
		{33, 5.0},
		{25, 4.5},
		{17, 4.0},
		{8, 3.5},
		{4, 3.0},
	}

	listeningBands = []BandThreshold{
		{97, 9.0},
		{92, 8.5},
		{87, 8.0},
		{80, 7.5},
		{72, 7.0},
		{65, 6.5},
		{57, 6.0},
		{50, 5.5},
		{42, 5.0},
		{35, 4.5},
		{27, 4.0},
		{20, 3.5},
		{12, 3.0},
	}
)

// BandTable returns a copy of the threshold table for skill, or nil when the skill is not
// band scored.
func BandTable(skill models.SkillArea) []BandThreshold {
	table := bandTable(skill)
	if table == nil {
		return nil
	}
	return append([]BandThreshold(nil), table...)
}

func bandTable(skill models.SkillArea) []BandThreshold {
	switch skill {
	case models.SkillReading:
		return readingBands
	case models.SkillListening:
		return listeningBands
	default:
		return nil
	}
}

// Score converts correct/total for one skill into an accuracy percentage and band.
//
// A zero total yields accuracy 0 and models.NoBand. The same sentinel is returned for a
// skill without a band table. Accuracy is clamped to [0, 100].
func Score(correct, total int, skill models.SkillArea) models.ScoreReport {
	report := models.ScoreReport{
		SkillArea:    skill,
		CorrectCount: correct,
		TotalCount:   total,
		Band:         models.NoBand,
	}
	if total <= 0 {
		return report
	}

	accuracy := float64(correct) * 100 / float64(total)
	report.AccuracyPercentage = min(max(accuracy, 0), 100)

	table := bandTable(skill)
	if table == nil {
		return report
	}
	report.Band = lookupBand(table, report.AccuracyPercentage)
	return report
}

func lookupBand(table []BandThreshold, accuracy float64) float64 {
	for _, t := range table {
		if accuracy >= t.MinAccuracy {
			return t.Band
		}
	}
	return FloorBand
}

// ScoreOutcome scores a folded aggregate.
func ScoreOutcome(o models.AggregateOutcome) models.ScoreReport {
	return Score(o.CorrectCount, o.TotalCount, o.SkillArea)
}
