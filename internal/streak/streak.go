// Package streak computes contiguous runs of completed days.
package streak

import (
	"encoding/json"

	"github.com/dukerupert/habits/internal/day"
)

// Streak is a run of consecutive calendar days. The zero Streak means no run.
type Streak struct {
	Start day.Day
	End   day.Day
	Count int
}

// Empty reports whether s holds no days.
func (s Streak) Empty() bool {
	return s.Count == 0
}

// Label renders the run as "<start> - <end>", or "" when empty.
func (s Streak) Label() string {
	if s.Empty() {
		return ""
	}
	return s.Start.String() + " - " + s.End.String()
}

type streakJSON struct {
	Label *string  `json:"label"`
	Start *day.Day `json:"start,omitempty"`
	End   *day.Day `json:"end,omitempty"`
	Count int      `json:"count"`
}

// MarshalJSON encodes an empty streak with a null label.
func (s Streak) MarshalJSON() ([]byte, error) {
	var out streakJSON
	out.Count = s.Count
	if !s.Empty() {
		label := s.Label()
		out.Label = &label
		out.Start = &s.Start
		out.End = &s.End
	}
	return json.Marshal(out)
}

// Recent scans days in order and returns the run ending at the last element.
// A day extends the run only if it is exactly one day after the previous
// one; anything else restarts the run at that day. Earlier, possibly longer
// runs are not reported; use Longest for that.
//
// days must be sorted ascending.
func Recent(days []day.Day) Streak {
	var run Streak
	for _, d := range days {
		if !run.Empty() && run.End.AddDays(1).Equal(d) {
			run.End = d
			run.Count++
			continue
		}
		run = Streak{Start: d, End: d, Count: 1}
	}
	return run
}

// Longest returns the longest run in days. Ties go to the earliest run.
//
// days must be sorted ascending.
func Longest(days []day.Day) Streak {
	var best, run Streak
	for _, d := range days {
		if !run.Empty() && run.End.AddDays(1).Equal(d) {
			run.End = d
			run.Count++
		} else {
			run = Streak{Start: d, End: d, Count: 1}
		}
		if run.Count > best.Count {
			best = run
		}
	}
	return best
}
