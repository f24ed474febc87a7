package meallog

import (
	"strconv"
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewMealID derives an id from the creation time in Unix milliseconds. Ids
// handed out by one process strictly increase, so two meals created within
// the same millisecond still differ.
func NewMealID(now time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()

	ms := now.UnixMilli()
	if ms <= lastID {
		ms = lastID + 1
	}
	lastID = ms
	return strconv.FormatInt(ms, 10)
}
