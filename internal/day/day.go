// Package day models calendar days without a time-of-day component.
//
// A Day is the only comparable date representation used inside the module.
// Strings exist at the edges: DisplayLayout for people, ISOLayout for storage.
package day

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	// DisplayLayout renders days as M/D/YY, e.g. 6/10/23.
	DisplayLayout = "1/2/06"
	// ISOLayout is the storage representation.
	ISOLayout = "2006-01-02"
)

// Layouts accepted by Parse, in order. "1/2/06" also accepts zero-padded
// MM/DD/YY input.
var parseLayouts = []string{ISOLayout, DisplayLayout, "1/2/2006"}

// Clock reports the current real-world time.
type Clock func() time.Time

// Day is a calendar date. The zero value is not a valid day; see IsZero.
type Day struct {
	t time.Time
}

// New returns the day for the given calendar date. Out-of-range values
// normalize the way time.Date does.
func New(year int, month time.Month, d int) Day {
	return Day{t: time.Date(year, month, d, 0, 0, 0, 0, time.UTC)}
}

// FromTime returns the calendar day of t in t's own location.
func FromTime(t time.Time) Day {
	return New(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day according to clock. A nil clock
// means time.Now.
func Today(clock Clock) Day {
	if clock == nil {
		clock = time.Now
	}
	return FromTime(clock())
}

// Parse reads a day in ISO (2006-01-02) or M/D/YY form.
func Parse(s string) (Day, error) {
	s = strings.TrimSpace(s)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}
	return Day{}, fmt.Errorf("parse day %q: unrecognized format", s)
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Day {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// AddDays returns d shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

func (d Day) Before(o Day) bool { return d.t.Before(o.t) }
func (d Day) After(o Day) bool  { return d.t.After(o.t) }
func (d Day) Equal(o Day) bool  { return d.t.Equal(o.t) }

// Compare returns -1, 0 or +1 in calendar order.
func (d Day) Compare(o Day) int {
	return d.t.Compare(o.t)
}

// Time returns midnight UTC of d.
func (d Day) Time() time.Time {
	return d.t
}

// String renders d in DisplayLayout.
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DisplayLayout)
}

// ISO renders d in ISOLayout.
func (d Day) ISO() string {
	return d.t.Format(ISOLayout)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.ISO()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Normalize returns a sorted copy of days with duplicates removed.
func Normalize(days []Day) []Day {
	out := slices.Clone(days)
	slices.SortFunc(out, Day.Compare)
	return slices.CompactFunc(out, Day.Equal)
}

// Contains reports whether days holds d.
func Contains(days []Day, d Day) bool {
	return slices.ContainsFunc(days, d.Equal)
}
