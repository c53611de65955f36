package backup

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dukerupert/habits/internal/habit"
	"github.com/dukerupert/habits/internal/store"
)

func newStore(t *testing.T) *habit.Store {
	t.Helper()
	now := time.Date(2023, 6, 10, 9, 0, 0, 0, time.UTC)
	s, err := habit.NewStore(store.NewMemoryKV(), habit.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newStore(t)
	h, _ := src.Add("Read")
	src.Open(h.ID)
	src.ToggleActiveDay()
	src.Add("Run")

	path := filepath.Join(t.TempDir(), "habits.enc")
	if err := ExportFile(src, path, "hunter2"); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newStore(t)
	dst.Add("to be replaced")
	n, err := ImportFile(dst, path, "hunter2")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Errorf("restored = %d, want 2", n)
	}

	habits := dst.Habits()
	if len(habits) != 2 || habits[0].ID != h.ID || habits[1].Text != "Run" {
		t.Fatalf("habits = %+v", habits)
	}
	if len(habits[0].Days) != 1 || habits[0].Days[0].String() != "6/10/23" {
		t.Errorf("days = %v", habits[0].Days)
	}
}

func TestExportRequiresPassphrase(t *testing.T) {
	if _, err := Export(newStore(t), ""); err == nil {
		t.Fatal("expected error for empty passphrase")
	}
}

func TestImportWrongPassphraseKeepsList(t *testing.T) {
	src := newStore(t)
	src.Add("Read")
	data, err := Export(src, "right")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newStore(t)
	dst.Add("Keep me")
	if _, err := Import(dst, data, "wrong"); err == nil {
		t.Fatal("expected error with wrong passphrase")
	}
	if habits := dst.Habits(); len(habits) != 1 || habits[0].Text != "Keep me" {
		t.Errorf("habits = %+v", habits)
	}
}
