package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("test", flag.ContinueOnError)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HABITS_CONFIG", "HABITS_BACKEND", "HABITS_DB_PATH", "HABITS_PORT",
		"HABITS_LOG_LEVEL", "HABITS_LOG_FILE", "HABITS_REDIS_ADDR",
		"HABITS_REDIS_PASSWORD", "HABITS_REDIS_PREFIX", "HABITS_REDIS_DB",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.DBPath != "habits.db" || cfg.Port != "8080" || cfg.LogLevel != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Redis.Prefix != "habits:" {
		t.Errorf("redis prefix = %q", cfg.Redis.Prefix)
	}
}

func TestFileEnvFlagPrecedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "habits.toml")
	content := `
backend = "redis"
db_path = "from-file.db"
port = "9000"
log_level = "debug"

[redis]
addr = "redis.local:6379"
db = 2
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("HABITS_PORT", "9100")
	t.Setenv("HABITS_REDIS_DB", "3")

	cfg, err := Load(newFlagSet(), []string{"-config", path, "-log-level", "warn"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendRedis {
		t.Errorf("backend = %q, want redis (file)", cfg.Backend)
	}
	if cfg.DBPath != "from-file.db" {
		t.Errorf("db_path = %q, want from-file.db", cfg.DBPath)
	}
	if cfg.Port != "9100" {
		t.Errorf("port = %q, want 9100 (env)", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log_level = %q, want warn (flag)", cfg.LogLevel)
	}
	if cfg.Redis.Addr != "redis.local:6379" || cfg.Redis.DB != 3 {
		t.Errorf("redis = %+v", cfg.Redis)
	}
}

func TestProjectFileIsOptional(t *testing.T) {
	clearEnv(t)
	if err := os.WriteFile("habits.toml", []byte(`backend = "memory"`), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("backend = %q, want memory", cfg.Backend)
	}
}

func TestExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(newFlagSet(), []string{"-config", "nope.toml"}); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"sqlite", Config{Backend: BackendSQLite, DBPath: "x.db", Port: "80"}, true},
		{"sqlite without path", Config{Backend: BackendSQLite, Port: "80"}, false},
		{"redis without addr", Config{Backend: BackendRedis, Port: "80"}, false},
		{"memory", Config{Backend: BackendMemory, Port: "80"}, true},
		{"unknown backend", Config{Backend: "etcd", Port: "80"}, false},
		{"bad port", Config{Backend: BackendMemory, Port: "http"}, false},
	}
	for _, c := range cases {
		err := c.cfg.Validate()
		if (err == nil) != c.ok {
			t.Errorf("%s: err = %v, want ok=%v", c.name, err, c.ok)
		}
	}
}

func TestInvalidRedisDBEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HABITS_REDIS_DB", "two")
	if _, err := Load(newFlagSet(), nil); err == nil {
		t.Fatal("expected error for non-numeric HABITS_REDIS_DB")
	}
}
