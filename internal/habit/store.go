// Package habit holds the habit list, the active selection and its day
// cursor, and writes the full list through to a key-value store after every
// mutation.
package habit

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dukerupert/habits/internal/day"
	"github.com/dukerupert/habits/internal/model"
	"github.com/dukerupert/habits/internal/store"
)

// StorageKey is the key the habit document lives under.
const StorageKey = "habits"

var (
	ErrNoActiveHabit = errors.New("no active habit")
	ErrHabitNotFound = errors.New("habit not found")
)

// IDFunc generates habit identifiers unique within the process.
type IDFunc func() string

// Active is the habit currently opened for editing, with the day the cursor
// points at. It is a working copy; the list in the Store is authoritative.
type Active struct {
	Habit  model.Habit `json:"habit"`
	Cursor day.Day     `json:"cursor"`
}

// Done reports whether the cursor day is marked complete.
func (a Active) Done() bool {
	return day.Contains(a.Habit.Days, a.Cursor)
}

type Option func(*Store)

// WithClock overrides the source of "today".
func WithClock(clock day.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// WithIDFunc overrides identifier generation.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) { s.newID = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Store owns the habit list. The held slice is never modified in place:
// every mutation builds a new list, persists it, and only then swaps it in,
// so a failed save leaves the previous state untouched.
type Store struct {
	mu     sync.Mutex
	kv     store.KV
	clock  day.Clock
	newID  IDFunc
	logger *slog.Logger

	habits []model.Habit
	active *Active
}

// NewStore loads the habit document from kv. Missing or malformed data
// starts an empty list. A failed read is returned so the stored document is
// not overwritten by the next mutation.
func NewStore(kv store.KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:     kv,
		newID:  uuid.NewString,
		logger: slog.Default(),
		habits: []model.Habit{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	raw, ok, err := s.kv.Load(StorageKey)
	if err != nil {
		return fmt.Errorf("load habits: %w", err)
	}
	if !ok {
		return nil
	}
	habits, err := Decode(raw)
	if err != nil {
		s.logger.Warn("decode habits, starting empty", "error", err)
		return nil
	}
	s.habits = habits
	s.logger.Debug("loaded habits", "count", len(habits))
	return nil
}

// commit persists next and makes it the held list. Callers hold s.mu.
func (s *Store) commit(next []model.Habit) error {
	raw, err := Encode(next)
	if err != nil {
		return err
	}
	if err := s.kv.Save(StorageKey, raw); err != nil {
		return fmt.Errorf("persist habits: %w", err)
	}
	s.habits = next
	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.habits, func(h model.Habit) bool { return h.ID == id })
}

// Habits returns a copy of the list in insertion order.
func (s *Store) Habits() []model.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Habit, len(s.habits))
	for i, h := range s.habits {
		out[i] = h.Clone()
	}
	return out
}

// Get returns a copy of the habit with the given id.
func (s *Store) Get(id string) (model.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Habit{}, false
	}
	return s.habits[i].Clone(), true
}

// Add appends a habit with a fresh id and no completed days. Text is stored
// as given, empty included.
func (s *Store) Add(text string) (model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := model.Habit{ID: s.newID(), Text: text, Days: []day.Day{}}
	next := append(slices.Clone(s.habits), h)
	if err := s.commit(next); err != nil {
		return model.Habit{}, err
	}
	return h.Clone(), nil
}

// Remove deletes the habit with the given id. An unknown id leaves the list
// as it was; the list is still written back. Removing the active habit
// closes it.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.habits), func(h model.Habit) bool { return h.ID == id })
	if err := s.commit(next); err != nil {
		return err
	}
	if s.active != nil && s.active.Habit.ID == id {
		s.active = nil
	}
	return nil
}

// Rename changes a habit's label and returns the renamed habit. An unknown
// id changes nothing and reports ErrHabitNotFound.
func (s *Store) Rename(id, text string) (model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Habit{}, ErrHabitNotFound
	}
	next := slices.Clone(s.habits)
	next[i].Text = text
	if err := s.commit(next); err != nil {
		return model.Habit{}, err
	}
	if s.active != nil && s.active.Habit.ID == id {
		s.active.Habit.Text = text
	}
	return next[i].Clone(), nil
}

// Replace swaps in a whole new list, e.g. from an imported backup. Day sets
// are normalized, repeated ids keep their first habit, and the active
// selection is closed.
func (s *Store) Replace(habits []model.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := normalizeList(habits)
	if err := s.commit(next); err != nil {
		return err
	}
	s.active = nil
	return nil
}

// Open makes a copy of the habit the active selection with the cursor on
// today.
func (s *Store) Open(id string) (Active, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Active{}, ErrHabitNotFound
	}
	s.active = &Active{Habit: s.habits[i].Clone(), Cursor: day.Today(s.clock)}
	return s.activeCopy(), nil
}

// Active returns the current selection, if any.
func (s *Store) Active() (Active, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return Active{}, false
	}
	return s.activeCopy(), true
}

func (s *Store) activeCopy() Active {
	a := *s.active
	a.Habit = a.Habit.Clone()
	return a
}

// Close drops the active selection. Day changes were already persisted.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

// ToggleActiveDay flips the cursor day in the active habit: removed if
// present, inserted in calendar order otherwise. The habit is written back
// into the list and persisted.
func (s *Store) ToggleActiveDay() (Active, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return Active{}, ErrNoActiveHabit
	}
	i := s.indexOf(s.active.Habit.ID)
	if i < 0 {
		s.active = nil
		return Active{}, ErrHabitNotFound
	}

	cursor := s.active.Cursor
	h := s.active.Habit.Clone()
	if day.Contains(h.Days, cursor) {
		h.Days = slices.DeleteFunc(h.Days, cursor.Equal)
	} else {
		h.Days = day.Normalize(append(h.Days, cursor))
	}

	next := slices.Clone(s.habits)
	next[i] = h
	if err := s.commit(next); err != nil {
		return Active{}, err
	}
	s.active = &Active{Habit: h.Clone(), Cursor: cursor}
	return s.activeCopy(), nil
}

// StepBackward moves the cursor one day back.
func (s *Store) StepBackward() (Active, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return Active{}, ErrNoActiveHabit
	}
	s.active.Cursor = day.StepBackward(s.active.Cursor)
	return s.activeCopy(), nil
}

// StepForward moves the cursor one day ahead; the step is ignored if it
// would pass today.
func (s *Store) StepForward() (Active, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return Active{}, ErrNoActiveHabit
	}
	s.active.Cursor = day.StepForward(s.active.Cursor, day.Today(s.clock))
	return s.activeCopy(), nil
}

// Summary returns completion statistics for a habit.
func (s *Store) Summary(id string) (Summary, error) {
	h, ok := s.Get(id)
	if !ok {
		return Summary{}, ErrHabitNotFound
	}
	return Summarize(h), nil
}

// normalizeList normalizes every habit and drops any habit whose id was
// already seen, so each id names exactly one habit.
func normalizeList(habits []model.Habit) []model.Habit {
	out := make([]model.Habit, 0, len(habits))
	seen := make(map[string]bool, len(habits))
	for _, h := range habits {
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		out = append(out, normalize(h))
	}
	return out
}

func normalize(h model.Habit) model.Habit {
	h.Days = day.Normalize(h.Days)
	if h.Days == nil {
		h.Days = []day.Day{}
	}
	return h
}
