package client

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/jo-hoe/proteinlens/internal/meallog"
)

// The server forwards model values untouched, so protein figures may arrive
// as strings such as "25g" and names as numbers.

var leadingNumber = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)`)

// looseFloat accepts a JSON number, or a string starting with one. Anything
// else decodes to 0.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = looseFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if m := leadingNumber.FindString(strings.TrimSpace(s)); m != "" {
			if n, err := strconv.ParseFloat(m, 64); err == nil {
				*f = looseFloat(n)
				return nil
			}
		}
	}
	*f = 0
	return nil
}

// looseString keeps strings as they are and renders other JSON values as text
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = ""
		return nil
	}
	*s = looseString(bytes.TrimSpace(data))
	return nil
}

type replyFood struct {
	Name     looseString `json:"name"`
	Quantity looseString `json:"quantity"`
	Protein  looseFloat  `json:"protein"`
}

type analyzeReply struct {
	Foods        json.RawMessage `json:"foods"`
	TotalProtein looseFloat      `json:"totalProtein"`
	Confidence   looseString     `json:"confidence"`
}

// foods returns the food items, or none when the reply holds something other
// than a list of objects
func (r *analyzeReply) foods() []meallog.FoodItem {
	if len(r.Foods) == 0 {
		return []meallog.FoodItem{}
	}
	var raw []replyFood
	if err := json.Unmarshal(r.Foods, &raw); err != nil {
		slog.Warn("ignoring unexpected foods value in analysis reply", "error", err)
		return []meallog.FoodItem{}
	}
	items := make([]meallog.FoodItem, 0, len(raw))
	for _, f := range raw {
		items = append(items, meallog.FoodItem{
			Name:     string(f.Name),
			Quantity: string(f.Quantity),
			Protein:  float64(f.Protein),
		})
	}
	return items
}
