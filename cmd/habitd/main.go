package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/habits/internal/config"
	"github.com/dukerupert/habits/internal/habit"
	"github.com/dukerupert/habits/internal/logging"
	"github.com/dukerupert/habits/internal/server"
	"github.com/dukerupert/habits/internal/store"
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "habitd: %v\n", err)
		os.Exit(2)
	}

	logger := logging.Setup(cfg.LogLevel)

	kv, closer, err := store.Open(cfg, logger.With("component", "store"))
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	habits, err := habit.NewStore(kv, habit.WithLogger(logger.With("component", "habit_store")))
	if err != nil {
		logger.Error("failed to load habits", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	srv := server.New(habits, logger)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("habitd listening", "addr", "http://localhost:"+cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	srv.Hub().Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
