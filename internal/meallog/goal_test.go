package meallog

import "testing"

func TestCalculateGoal(t *testing.T) {
	tests := []struct {
		weight float64
		tier   string
		want   int
	}{
		{70, Active, 140},
		{70, Sedentary, 84},
		{70, Moderate, 112},
		{70, Athlete, 154},
		{70, "couch", 112},
		{62.5, Moderate, 100},
		{0, Active, 0},
	}
	for _, tt := range tests {
		if got := CalculateGoal(tt.weight, tt.tier); got != tt.want {
			t.Errorf("CalculateGoal(%v, %q) = %d, want %d", tt.weight, tt.tier, got, tt.want)
		}
	}
}

func TestMultiplier_UnknownTier(t *testing.T) {
	if got := Multiplier("unknown"); got != 1.6 {
		t.Errorf("expected 1.6, got %v", got)
	}
}
