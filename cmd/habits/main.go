// Command habits is the terminal habit tracker.
//
// Usage:
//
//	habits [flags]                 open the interactive tracker
//	habits [flags] export FILE     write an encrypted backup
//	habits [flags] import FILE     replace all habits from a backup
//
// Backups use the passphrase in HABITS_BACKUP_PASSPHRASE.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dukerupert/habits/internal/backup"
	"github.com/dukerupert/habits/internal/config"
	"github.com/dukerupert/habits/internal/habit"
	"github.com/dukerupert/habits/internal/logging"
	"github.com/dukerupert/habits/internal/store"
	"github.com/dukerupert/habits/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "habits: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.SetupFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	kv, closer, err := store.Open(cfg, logger.With("component", "store"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closer.Close()

	habits, err := habit.NewStore(kv, habit.WithLogger(logger.With("component", "habit_store")))
	if err != nil {
		return err
	}

	args := flag.Args()
	if len(args) == 0 {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return ui.Run(ctx, habits, logger.With("component", "ui"))
	}

	if len(args) != 2 {
		return fmt.Errorf("usage: habits [export|import] FILE")
	}
	passphrase := os.Getenv("HABITS_BACKUP_PASSPHRASE")
	if passphrase == "" {
		return fmt.Errorf("HABITS_BACKUP_PASSPHRASE is not set")
	}

	switch args[0] {
	case "export":
		if err := backup.ExportFile(habits, args[1], passphrase); err != nil {
			return err
		}
		fmt.Printf("exported %d habits to %s\n", len(habits.Habits()), args[1])
	case "import":
		n, err := backup.ImportFile(habits, args[1], passphrase)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d habits from %s\n", n, args[1])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}
