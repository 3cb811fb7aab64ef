package mastery

// Proficiency is the overall label derived from the share of mastered facts.
type Proficiency string

const (
	ProficiencyNew          Proficiency = "New Learner"
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyDeveloping   Proficiency = "Developing"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyExpert       Proficiency = "Expert"
)

// ResolveProficiency maps a mastery percentage (0-100) to a label.
// A learner with no tracked facts is always ProficiencyNew.
func ResolveProficiency(totalFacts int, masteryPercentage float64) Proficiency {
	if totalFacts == 0 {
		return ProficiencyNew
	}
	switch {
	case masteryPercentage >= 80:
		return ProficiencyExpert
	case masteryPercentage >= 60:
		return ProficiencyAdvanced
	case masteryPercentage >= 40:
		return ProficiencyIntermediate
	case masteryPercentage >= 20:
		return ProficiencyDeveloping
	default:
		return ProficiencyBeginner
	}
}
