package mastery

import "testing"

func statsOf(total, correct int) Stats {
	return Stats{TotalAttempts: total, CorrectAttempts: correct}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  Level
	}{
		{"no attempts", statsOf(0, 0), LevelLearning},
		{"four perfect attempts", statsOf(4, 4), LevelLearning},
		{"five perfect attempts", statsOf(5, 5), LevelPracticing},
		{"nine perfect attempts", statsOf(9, 9), LevelPracticing},
		{"ten perfect attempts", statsOf(10, 10), LevelMastered},
		{"twenty at 95 percent", statsOf(20, 19), LevelMastered},
		{"ten at 90 percent", statsOf(10, 9), LevelPracticing},
		{"five at 80 percent", statsOf(5, 4), LevelPracticing},
		{"five at 60 percent", statsOf(5, 3), LevelLearning},
		{"forty at 50 percent", statsOf(40, 20), LevelLearning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.stats); got != tt.want {
				t.Errorf("Classify(%d/%d) = %q, want %q", tt.stats.CorrectAttempts, tt.stats.TotalAttempts, got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for _, in := range []string{"mastered", "MASTERED", " Mastered "} {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != LevelMastered {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, LevelMastered)
		}
	}
	if _, err := ParseLevel("expert"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestTransition_Improved(t *testing.T) {
	if !(Transition{From: LevelLearning, To: LevelMastered}).Improved() {
		t.Error("learning -> mastered should be an improvement")
	}
	if (Transition{From: LevelMastered, To: LevelPracticing}).Improved() {
		t.Error("mastered -> practicing should not be an improvement")
	}
	if (Transition{From: LevelPracticing, To: LevelPracticing}).Improved() {
		t.Error("no change should not be an improvement")
	}
}
