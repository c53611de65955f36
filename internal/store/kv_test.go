package store

import (
	"errors"
	"testing"

	"github.com/dukerupert/habits/internal/database"
)

func setupKVTestDB(t *testing.T) *SQLiteKV {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteKV(db)
}

func TestSQLiteKVMissingKey(t *testing.T) {
	kv := setupKVTestDB(t)

	value, ok, err := kv.Load("habits")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Errorf("expected missing key, got %q", value)
	}
}

func TestSQLiteKVSaveLoad(t *testing.T) {
	kv := setupKVTestDB(t)

	if err := kv.Save("habits", `[{"id":"a"}]`); err != nil {
		t.Fatalf("save: %v", err)
	}
	value, ok, err := kv.Load("habits")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok || value != `[{"id":"a"}]` {
		t.Errorf("load = %q, %v", value, ok)
	}
}

func TestSQLiteKVOverwrite(t *testing.T) {
	kv := setupKVTestDB(t)

	if err := kv.Save("habits", "one"); err != nil {
		t.Fatalf("save one: %v", err)
	}
	if err := kv.Save("habits", "two"); err != nil {
		t.Fatalf("save two: %v", err)
	}
	value, _, err := kv.Load("habits")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if value != "two" {
		t.Errorf("value = %q, want %q", value, "two")
	}
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()

	if _, ok, _ := kv.Load("habits"); ok {
		t.Fatal("expected empty store")
	}
	kv.Save("habits", "[]")
	kv.Save("habits", "[1]")

	value, ok, err := kv.Load("habits")
	if err != nil || !ok || value != "[1]" {
		t.Errorf("load = %q, %v, %v", value, ok, err)
	}
	if kv.Writes() != 2 {
		t.Errorf("writes = %d, want 2", kv.Writes())
	}
}

type failingKV struct{}

func (failingKV) Load(string) (string, bool, error) { return "", false, errors.New("load failed") }
func (failingKV) Save(string, string) error         { return errors.New("save failed") }

func TestInstrumentedPassesThrough(t *testing.T) {
	mem := NewMemoryKV()
	kv := Instrumented(mem, "memory")

	if err := kv.Save("habits", "[]"); err != nil {
		t.Fatalf("save: %v", err)
	}
	value, ok, err := kv.Load("habits")
	if err != nil || !ok || value != "[]" {
		t.Errorf("load = %q, %v, %v", value, ok, err)
	}
	if mem.Writes() != 1 {
		t.Errorf("writes = %d, want 1", mem.Writes())
	}

	bad := Instrumented(failingKV{}, "broken")
	if err := bad.Save("habits", "[]"); err == nil {
		t.Error("expected save error")
	}
	if _, _, err := bad.Load("habits"); err == nil {
		t.Error("expected load error")
	}
}
