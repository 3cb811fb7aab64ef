package selector

import (
	"math"
	"sort"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/mastery"
)

// WeakAdditionFacts returns facts with at least minAttempts attempts and an
// accuracy at or below maxAccuracy, worst accuracy first.
func WeakAdditionFacts(records []facts.AdditionRecord, minAttempts int, maxAccuracy float64, limit int) []facts.AdditionRecord {
	var weak []facts.AdditionRecord
	for _, r := range records {
		if r.TotalAttempts >= minAttempts && r.Accuracy() <= maxAccuracy {
			weak = append(weak, r)
		}
	}

	sort.SliceStable(weak, func(i, j int) bool {
		ai, aj := weak[i].Accuracy(), weak[j].Accuracy()
		if ai != aj {
			return ai < aj
		}
		return weak[i].FactKey < weak[j].FactKey
	})
	return truncate(weak, limit)
}

// MasteredAdditionFacts returns mastered facts, most recently attempted
// first.
func MasteredAdditionFacts(records []facts.AdditionRecord, limit int) []facts.AdditionRecord {
	var mastered []facts.AdditionRecord
	for _, r := range records {
		if r.Level == mastery.LevelMastered {
			mastered = append(mastered, r)
		}
	}

	sort.SliceStable(mastered, func(i, j int) bool {
		a, b := mastered[i].LastAttempted, mastered[j].LastAttempted
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return mastered[i].FactKey < mastered[j].FactKey
	})
	return truncate(mastered, limit)
}

// AdditionFactsInRange keeps the facts whose operands both lie in
// [low, high]. Records with unparsable keys are dropped.
func AdditionFactsInRange(records []facts.AdditionRecord, low, high int) []facts.AdditionRecord {
	var in []facts.AdditionRecord
	for _, r := range records {
		op1, op2, err := facts.ParseFactKey(r.FactKey)
		if err != nil {
			continue
		}
		if op1 >= low && op1 <= high && op2 >= low && op2 <= high {
			in = append(in, r)
		}
	}
	return in
}

// AdditionSummary aggregates a learner's table-practice records.
type AdditionSummary struct {
	TotalFacts        int                 `json:"total_facts"`
	Learning          int                 `json:"learning"`
	Practicing        int                 `json:"practicing"`
	Mastered          int                 `json:"mastered"`
	TotalAttempts     int                 `json:"total_attempts"`
	OverallAccuracy   float64             `json:"overall_accuracy"`
	MasteryPercentage float64             `json:"mastery_percentage"`
	Proficiency       mastery.Proficiency `json:"proficiency_level"`
}

// SummarizeAdditions counts facts per level and derives the learner's
// proficiency. Percentages are rounded to one decimal place.
func SummarizeAdditions(records []facts.AdditionRecord) AdditionSummary {
	sum := AdditionSummary{TotalFacts: len(records)}

	correct := 0
	for _, r := range records {
		switch r.Level {
		case mastery.LevelMastered:
			sum.Mastered++
		case mastery.LevelPracticing:
			sum.Practicing++
		default:
			sum.Learning++
		}
		sum.TotalAttempts += r.TotalAttempts
		correct += r.CorrectAttempts
	}

	if sum.TotalAttempts > 0 {
		sum.OverallAccuracy = RoundTenth(float64(correct) / float64(sum.TotalAttempts) * 100)
	}
	var pct float64
	if sum.TotalFacts > 0 {
		pct = float64(sum.Mastered) / float64(sum.TotalFacts) * 100
	}
	sum.MasteryPercentage = RoundTenth(pct)
	sum.Proficiency = mastery.ResolveProficiency(sum.TotalFacts, pct)
	return sum
}

// RoundTenth rounds v to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
