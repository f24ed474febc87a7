package meallog

import (
	"fmt"
	"math"
	"time"
)

// Progress summarizes today's intake against the goal
type Progress struct {
	Current     float64
	Goal        int
	Percentage  float64
	Remaining   float64
	Message     string
	Suggestions []string
}

var highProteinSuggestions = []string{
	"2 eggs (12g)",
	"Chicken breast 100g (31g)",
	"Greek yogurt 200g (20g)",
	"Peanuts 30g (8g)",
	"Paneer 100g (18g)",
	"Dal 1 cup (18g)",
	"Protein shake (25g)",
}

func (l *Log) Progress(now time.Time) Progress {
	l.mu.Lock()
	defer l.mu.Unlock()
	return computeProgress(l.todayTotal(now), l.goal)
}

func computeProgress(current float64, goal int) Progress {
	g := float64(goal)
	p := Progress{
		Current:    current,
		Goal:       goal,
		Percentage: 100,
		Remaining:  math.Max(g-current, 0),
	}
	if goal > 0 {
		p.Percentage = math.Min(current/g*100, 100)
	}

	switch {
	case current >= g:
		p.Message = "Great job! You've reached your daily protein goal!"
	case current >= g*0.75:
		p.Message = fmt.Sprintf("Almost there! Just %.0fg more to go!", p.Remaining)
	case current >= g*0.5:
		p.Message = fmt.Sprintf("Good progress! %.0fg more protein needed today.", p.Remaining)
	default:
		p.Message = fmt.Sprintf("You need %.0fg more protein to reach your goal.", p.Remaining)
	}

	if current < g {
		p.Suggestions = append([]string(nil), highProteinSuggestions[:3]...)
	}
	return p
}
