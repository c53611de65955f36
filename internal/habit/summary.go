package habit

import (
	"github.com/dukerupert/habits/internal/model"
	"github.com/dukerupert/habits/internal/streak"
)

// Summary is the detail view of a habit.
type Summary struct {
	Habit     model.Habit   `json:"habit"`
	Completed int           `json:"completed"`
	Recent    streak.Streak `json:"recent"`
	Longest   streak.Streak `json:"longest"`
}

func Summarize(h model.Habit) Summary {
	return Summary{
		Habit:     h,
		Completed: len(h.Days),
		Recent:    streak.Recent(h.Days),
		Longest:   streak.Longest(h.Days),
	}
}
