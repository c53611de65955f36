package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	path := filepath.Join(t.TempDir(), "habits.log")
	logger, closer, err := SetupFile(path, "warn")
	if err != nil {
		t.Fatalf("setup file: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "component", "test")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "component=test") {
		t.Errorf("log output = %q", out)
	}
}

func TestSetupFileEmptyPathDiscards(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	logger, closer, err := SetupFile("", "debug")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	logger.Debug("nowhere")
	if _, ok := closer.(nopCloser); !ok {
		t.Errorf("closer = %T, want nopCloser", closer)
	}
	if err := closer.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}
