// Package config loads settings from defaults, an optional TOML file, the
// environment and command-line flags, each overriding the previous.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Backend  string      `toml:"backend"`
	DBPath   string      `toml:"db_path"`
	Redis    RedisConfig `toml:"redis"`
	Port     string      `toml:"port"`
	LogLevel string      `toml:"log_level"`
	// LogFile is where the terminal UI writes logs. Empty discards them.
	LogFile string `toml:"log_file"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

func defaults() *Config {
	return &Config{
		Backend:  BackendSQLite,
		DBPath:   "habits.db",
		Port:     "8080",
		LogLevel: "info",
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "habits:",
		},
	}
}

// Load builds a Config. The file comes from -config, then HABITS_CONFIG,
// then ./habits.toml if present.
func Load(flags *flag.FlagSet, args []string) (*Config, error) {
	cfg := defaults()

	configPath := flags.String("config", "", "path to a TOML config file")
	backend := flags.String("backend", "", "storage backend: sqlite, redis or memory")
	dbPath := flags.String("db", "", "SQLite database path")
	port := flags.String("port", "", "HTTP listen port")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn, error")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	path := *configPath
	explicit := path != ""
	if path == "" {
		path = os.Getenv("HABITS_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = "habits.toml"
	}
	if err := loadFile(cfg, path, explicit); err != nil {
		return nil, err
	}

	if err := loadEnv(cfg); err != nil {
		return nil, err
	}

	setIf(&cfg.Backend, *backend)
	setIf(&cfg.DBPath, *dbPath)
	setIf(&cfg.Port, *port)
	setIf(&cfg.LogLevel, *logLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string, required bool) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	setIf(&cfg.Backend, os.Getenv("HABITS_BACKEND"))
	setIf(&cfg.DBPath, os.Getenv("HABITS_DB_PATH"))
	setIf(&cfg.Port, os.Getenv("HABITS_PORT"))
	setIf(&cfg.LogLevel, os.Getenv("HABITS_LOG_LEVEL"))
	setIf(&cfg.LogFile, os.Getenv("HABITS_LOG_FILE"))
	setIf(&cfg.Redis.Addr, os.Getenv("HABITS_REDIS_ADDR"))
	setIf(&cfg.Redis.Password, os.Getenv("HABITS_REDIS_PASSWORD"))
	setIf(&cfg.Redis.Prefix, os.Getenv("HABITS_REDIS_PREFIX"))
	if v := os.Getenv("HABITS_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HABITS_REDIS_DB: %w", err)
		}
		cfg.Redis.DB = n
	}
	return nil
}

func setIf(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("db_path is required for the sqlite backend")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	return nil
}
