package meallog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Storage keys, one for the meal list and one for the goal
const (
	MealsKey = "meals"
	GoalKey  = "dailyGoal"

	DefaultGoal = 100
)

var ErrNegativeGoal = errors.New("daily goal must not be negative")

// Store persists string values by key
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Log keeps meals (newest first) and the daily goal in memory and writes
// every change through to the store.
type Log struct {
	mu       sync.Mutex
	store    Store
	location *time.Location
	meals    []Meal
	goal     int
}

// Load restores the log from store. Calendar days are evaluated in location,
// nil meaning time.Local.
func Load(ctx context.Context, store Store, location *time.Location) (*Log, error) {
	if location == nil {
		location = time.Local
	}
	l := &Log{
		store:    store,
		location: location,
		goal:     DefaultGoal,
	}

	raw, ok, err := store.Get(ctx, MealsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read meals: %w", err)
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &l.meals); err != nil {
			return nil, fmt.Errorf("failed to decode meals: %w", err)
		}
	}

	raw, ok, err = store.Get(ctx, GoalKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read daily goal: %w", err)
	}
	if ok {
		goal, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || goal < 0 {
			slog.Warn("ignoring invalid stored daily goal", "value", raw)
		} else {
			l.goal = goal
		}
	}

	return l, nil
}

// Meals returns a copy of the log, newest first
func (l *Log) Meals() []Meal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Meal(nil), l.meals...)
}

func (l *Log) Goal() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.goal
}

// Add puts meal at the front of the log
func (l *Log) Add(ctx context.Context, meal Meal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	meals := make([]Meal, 0, len(l.meals)+1)
	meals = append(meals, meal)
	meals = append(meals, l.meals...)
	return l.replaceMeals(ctx, meals)
}

// Delete removes the meal with id and reports whether it existed
func (l *Log) Delete(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	meals := make([]Meal, 0, len(l.meals))
	for _, m := range l.meals {
		if m.ID != id {
			meals = append(meals, m)
		}
	}
	if len(meals) == len(l.meals) {
		return false, nil
	}
	return true, l.replaceMeals(ctx, meals)
}

// Clear removes every meal. The goal is kept.
func (l *Log) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.replaceMeals(ctx, []Meal{})
}

func (l *Log) SetGoal(ctx context.Context, goal int) error {
	if goal < 0 {
		return ErrNegativeGoal
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Set(ctx, GoalKey, strconv.Itoa(goal)); err != nil {
		return fmt.Errorf("failed to persist daily goal: %w", err)
	}
	l.goal = goal
	return nil
}

// TodayTotal sums TotalProtein over meals on now's calendar day
func (l *Log) TodayTotal(now time.Time) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.todayTotal(now)
}

func (l *Log) todayTotal(now time.Time) float64 {
	var total float64
	for _, m := range l.meals {
		if sameDay(m.Timestamp, now, l.location) {
			total += m.TotalProtein
		}
	}
	return total
}

// replaceMeals persists meals first so a failed write leaves memory untouched.
// Callers hold l.mu.
func (l *Log) replaceMeals(ctx context.Context, meals []Meal) error {
	data, err := json.Marshal(meals)
	if err != nil {
		return fmt.Errorf("failed to encode meals: %w", err)
	}
	if err := l.store.Set(ctx, MealsKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist meals: %w", err)
	}
	l.meals = meals
	return nil
}

func sameDay(a, b time.Time, location *time.Location) bool {
	ay, am, ad := a.In(location).Date()
	by, bm, bd := b.In(location).Date()
	return ay == by && am == bm && ad == bd
}
