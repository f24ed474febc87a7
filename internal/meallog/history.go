package meallog

import "time"

// DayGroup is a run of meals shown under one date heading
type DayGroup struct {
	Label string
	Meals []Meal
}

// GroupByDay splits the log into runs of consecutive meals sharing a label:
// "Today", "Yesterday" or a short date such as "Jan 2".
func (l *Log) GroupByDay(now time.Time) []DayGroup {
	l.mu.Lock()
	defer l.mu.Unlock()

	var groups []DayGroup
	for _, m := range l.meals {
		label := DayLabel(m.Timestamp, now, l.location)
		if n := len(groups); n > 0 && groups[n-1].Label == label {
			groups[n-1].Meals = append(groups[n-1].Meals, m)
			continue
		}
		groups = append(groups, DayGroup{Label: label, Meals: []Meal{m}})
	}
	return groups
}

// DayLabel names t's calendar day relative to now
func DayLabel(t, now time.Time, location *time.Location) string {
	if location == nil {
		location = time.Local
	}
	if sameDay(t, now, location) {
		return "Today"
	}
	if sameDay(t, now.In(location).AddDate(0, 0, -1), location) {
		return "Yesterday"
	}
	return t.In(location).Format("Jan 2")
}

// TimeOfDay formats t like "3:04 PM"
func TimeOfDay(t time.Time, location *time.Location) string {
	if location == nil {
		location = time.Local
	}
	return t.In(location).Format("3:04 PM")
}
