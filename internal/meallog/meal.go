package meallog

import "time"

type FoodItem struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Protein  float64 `json:"protein"`
}

// Meal is one analyzed photo. TotalProtein is the model's figure and is never
// recomputed from Foods.
type Meal struct {
	ID           string     `json:"id"`
	Timestamp    time.Time  `json:"timestamp"`
	Foods        []FoodItem `json:"foods"`
	TotalProtein float64    `json:"totalProtein"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	MealType     string     `json:"mealType,omitempty"`
}

// Meal types offered by the client
const (
	Breakfast = "breakfast"
	Lunch     = "lunch"
	Dinner    = "dinner"
	Snack     = "snack"
)

var MealTypes = []string{Breakfast, Lunch, Dinner, Snack}

func IsMealType(s string) bool {
	for _, t := range MealTypes {
		if t == s {
			return true
		}
	}
	return false
}
