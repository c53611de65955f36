// Package ui is the terminal front end: a habit list and a detail view with
// a day cursor.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dukerupert/habits/internal/habit"
	"github.com/dukerupert/habits/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	doneStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Padding(0, 1)
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Background(lipgloss.Color("8")).Padding(0, 1)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeDetail
)

// Run starts the full-screen UI and blocks until the user quits.
func Run(ctx context.Context, store *habit.Store, logger *slog.Logger) error {
	program := tea.NewProgram(New(store, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Model is the bubbletea model. All state lives in the habit store; the
// model only tracks what is on screen.
type Model struct {
	store  *habit.Store
	logger *slog.Logger

	mode     mode
	habits   []model.Habit
	selected int
	input    string
	active   habit.Active
	err      error
}

func New(store *habit.Store, logger *slog.Logger) *Model {
	m := &Model{store: store, logger: logger}
	m.refresh()
	return m
}

func (m *Model) refresh() {
	m.habits = m.store.Habits()
	if m.selected >= len(m.habits) {
		m.selected = max(len(m.habits)-1, 0)
	}
	if a, ok := m.store.Active(); ok {
		m.active = a
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.err = nil

	switch m.mode {
	case modeAdd:
		return m.updateAdd(key)
	case modeDetail:
		return m.updateDetail(key)
	default:
		return m.updateList(key)
	}
}

func (m *Model) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.habits)-1 {
			m.selected++
		}
	case "a", "n":
		m.mode = modeAdd
		m.input = ""
	case "d", "delete":
		if len(m.habits) == 0 {
			break
		}
		id := m.habits[m.selected].ID
		m.fail(m.store.Remove(id), "remove habit")
		m.refresh()
	case "enter":
		if len(m.habits) == 0 {
			break
		}
		a, err := m.store.Open(m.habits[m.selected].ID)
		if m.fail(err, "open habit") {
			break
		}
		m.active = a
		m.mode = modeDetail
	}
	return m, nil
}

func (m *Model) updateAdd(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeList
	case tea.KeyEnter:
		h, err := m.store.Add(m.input)
		if !m.fail(err, "add habit") {
			m.logger.Debug("habit added", "id", h.ID)
		}
		m.input = ""
		m.mode = modeList
		m.refresh()
		m.selected = max(len(m.habits)-1, 0)
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

func (m *Model) updateDetail(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		a   habit.Active
		err error
	)
	switch key.String() {
	case "esc", "q":
		m.store.Close()
		m.mode = modeList
		m.refresh()
		return m, nil
	case "left", "h":
		a, err = m.store.StepBackward()
	case "right", "l":
		a, err = m.store.StepForward()
	case " ", "space", "x", "enter":
		a, err = m.store.ToggleActiveDay()
	default:
		return m, nil
	}
	if m.fail(err, "update active habit") {
		if errors.Is(err, habit.ErrNoActiveHabit) || errors.Is(err, habit.ErrHabitNotFound) {
			m.mode = modeList
			m.refresh()
		}
		return m, nil
	}
	m.active = a
	return m, nil
}

// fail records err for the status line and reports whether it was non-nil.
// Missing-selection errors are programming slips, not user errors, so they
// are logged but not shown.
func (m *Model) fail(err error, op string) bool {
	if err == nil {
		return false
	}
	m.logger.Warn(op, "error", err)
	if !errors.Is(err, habit.ErrNoActiveHabit) && !errors.Is(err, habit.ErrHabitNotFound) {
		m.err = err
	}
	return true
}

func (m *Model) View() string {
	var b strings.Builder
	switch m.mode {
	case modeDetail:
		m.viewDetail(&b)
	default:
		m.viewList(&b)
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("error: "+m.err.Error()) + "\n")
	}
	return b.String()
}

func (m *Model) viewList(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Habits") + "\n\n")
	if len(m.habits) == 0 {
		b.WriteString(dimStyle.Render("  no habits yet") + "\n")
	}
	for i, h := range m.habits {
		line := fmt.Sprintf("  %s", h.Text)
		if i == m.selected && m.mode == modeList {
			line = selectedStyle.Render("> " + h.Text)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	if m.mode == modeAdd {
		b.WriteString("Add a habit: " + m.input + "_\n")
		b.WriteString(dimStyle.Render("enter save • esc cancel") + "\n")
		return
	}
	b.WriteString(dimStyle.Render("↑/↓ move • enter open • a add • d delete • q quit") + "\n")
}

func (m *Model) viewDetail(b *strings.Builder) {
	sum := habit.Summarize(m.active.Habit)
	b.WriteString(titleStyle.Render(m.active.Habit.Text) + "\n\n")

	plural := "s"
	if sum.Completed == 1 {
		plural = ""
	}
	fmt.Fprintf(b, "completed: %d day%s\n", sum.Completed, plural)
	fmt.Fprintf(b, "current streak: %s\n", streakText(sum.Recent.Label(), sum.Recent.Count))
	fmt.Fprintf(b, "longest streak: %s\n\n", streakText(sum.Longest.Label(), sum.Longest.Count))

	fmt.Fprintf(b, "  ‹  %s  ›\n\n", m.active.Cursor)
	if m.active.Done() {
		b.WriteString("  " + doneStyle.Render("completed ✓") + "\n\n")
	} else {
		b.WriteString("  " + pendingStyle.Render("no check-in") + "\n\n")
	}
	b.WriteString(dimStyle.Render("←/→ day • space toggle • esc back") + "\n")
}

func streakText(label string, count int) string {
	if count == 0 {
		return "none"
	}
	return fmt.Sprintf("%s (%d days)", label, count)
}
