package habit

import (
	"encoding/json"
	"fmt"

	"github.com/dukerupert/habits/internal/model"
)

// Encode serializes the habit list as a JSON array.
func Encode(habits []model.Habit) (string, error) {
	if habits == nil {
		habits = []model.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return "", fmt.Errorf("encode habits: %w", err)
	}
	return string(data), nil
}

// Decode parses a habit document. Day strings may be ISO or the legacy
// M/D/YY form; day sets come back sorted without duplicates. When an id
// repeats, only its first habit is kept.
func Decode(raw string) ([]model.Habit, error) {
	var habits []model.Habit
	if err := json.Unmarshal([]byte(raw), &habits); err != nil {
		return nil, fmt.Errorf("decode habits: %w", err)
	}
	return normalizeList(habits), nil
}
