package mastery

import "testing"

func TestResolveProficiency(t *testing.T) {
	tests := []struct {
		total int
		pct   float64
		want  Proficiency
	}{
		{0, 0, ProficiencyNew},
		{0, 100, ProficiencyNew},
		{10, 0, ProficiencyBeginner},
		{10, 19.9, ProficiencyBeginner},
		{10, 20, ProficiencyDeveloping},
		{10, 40, ProficiencyIntermediate},
		{10, 60, ProficiencyAdvanced},
		{10, 79.9, ProficiencyAdvanced},
		{10, 80, ProficiencyExpert},
		{10, 100, ProficiencyExpert},
	}
	for _, tt := range tests {
		got := ResolveProficiency(tt.total, tt.pct)
		if got != tt.want {
			t.Errorf("ResolveProficiency(%d, %v) = %q, want %q", tt.total, tt.pct, got, tt.want)
		}
	}
}
