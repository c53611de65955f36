package model

import "github.com/dukerupert/habits/internal/day"

// Habit is a tracked activity and the days it was completed. Days is kept
// sorted ascending with no duplicates.
type Habit struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	Days []day.Day `json:"days"`
}

// Clone returns a copy of h that shares no memory with it.
func (h Habit) Clone() Habit {
	days := make([]day.Day, len(h.Days))
	copy(days, h.Days)
	h.Days = days
	return h
}
