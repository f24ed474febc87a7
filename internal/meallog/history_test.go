package meallog

import (
	"context"
	"strconv"
	"testing"
	"time"
)

func TestGroupByDay(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(t, newMemoryStore())
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)

	_ = l.Add(ctx, meal("1", time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), 10))
	_ = l.Add(ctx, meal("2", now.AddDate(0, 0, -1), 10))
	_ = l.Add(ctx, meal("3", now.Add(-2*time.Hour), 10))
	_ = l.Add(ctx, meal("4", now.Add(-time.Hour), 10))

	groups := l.GroupByDay(now)
	want := []struct {
		label string
		count int
	}{{"Today", 2}, {"Yesterday", 1}, {"Jan 2", 1}}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}
	for i, w := range want {
		if groups[i].Label != w.label || len(groups[i].Meals) != w.count {
			t.Errorf("group %d = %q (%d meals), want %q (%d)", i, groups[i].Label, len(groups[i].Meals), w.label, w.count)
		}
	}
}

func TestTimeOfDay(t *testing.T) {
	ts := time.Date(2024, 3, 10, 15, 4, 0, 0, time.UTC)
	if got := TimeOfDay(ts, time.UTC); got != "3:04 PM" {
		t.Errorf("got %q", got)
	}
	if got := TimeOfDay(ts.Add(-15*time.Hour), time.UTC); got != "12:04 AM" {
		t.Errorf("got %q", got)
	}
}

func TestNewMealID_StrictlyIncreasing(t *testing.T) {
	now := time.Now()
	prev, _ := strconv.ParseInt(NewMealID(now), 10, 64)
	for i := 0; i < 100; i++ {
		id, err := strconv.ParseInt(NewMealID(now), 10, 64)
		if err != nil {
			t.Fatalf("id is not numeric: %v", err)
		}
		if id <= prev {
			t.Fatalf("id %d not greater than %d", id, prev)
		}
		prev = id
	}
}
