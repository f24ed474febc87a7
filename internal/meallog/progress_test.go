package meallog

import (
	"strings"
	"testing"
)

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name        string
		current     float64
		goal        int
		percentage  float64
		remaining   float64
		prefix      string
		suggestions int
	}{
		{"reached", 120, 100, 100, 0, "Great job!", 0},
		{"almost", 80, 100, 80, 20, "Almost there! Just 20g", 3},
		{"halfway", 50, 100, 50, 50, "Good progress! 50g", 3},
		{"start", 10, 100, 10, 90, "You need 90g", 3},
		{"zero goal", 0, 0, 100, 0, "Great job!", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := computeProgress(tt.current, tt.goal)
			if p.Percentage != tt.percentage {
				t.Errorf("percentage = %v, want %v", p.Percentage, tt.percentage)
			}
			if p.Remaining != tt.remaining {
				t.Errorf("remaining = %v, want %v", p.Remaining, tt.remaining)
			}
			if !strings.HasPrefix(p.Message, tt.prefix) {
				t.Errorf("message = %q, want prefix %q", p.Message, tt.prefix)
			}
			if len(p.Suggestions) != tt.suggestions {
				t.Errorf("got %d suggestions, want %d", len(p.Suggestions), tt.suggestions)
			}
		})
	}
}

func TestComputeProgress_SuggestionsAreFirstThree(t *testing.T) {
	p := computeProgress(0, 100)
	want := []string{"2 eggs (12g)", "Chicken breast 100g (31g)", "Greek yogurt 200g (20g)"}
	for i, s := range want {
		if p.Suggestions[i] != s {
			t.Errorf("suggestion %d = %q, want %q", i, p.Suggestions[i], s)
		}
	}
}
