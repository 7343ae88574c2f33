package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"rcfetch/internal/config"
)

func main() {
	// Setup logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errDownloadFailed) {
			slog.Error("application failed", "error", err)
		}
		stop()
		os.Exit(1)
	}
}

// logOutput owns the current log destination so a config reload can swap it
type logOutput struct {
	mu     sync.Mutex
	closer io.Closer
}

func (l *logOutput) apply(logConfig config.LoggingConfig, stderr io.Writer) error {
	closer, err := setupLogging(logConfig, stderr)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		l.closer.Close()
	}
	l.closer = closer
	return nil
}

func (l *logOutput) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

func setupLogging(logConfig config.LoggingConfig, stderr io.Writer) (io.Closer, error) {
	level, err := config.ParseLevel(logConfig.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// stdout belongs to the progress display
	out := stderr
	var closer io.Closer
	if logConfig.File != "" {
		f, err := os.OpenFile(logConfig.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	}

	var handler slog.Handler
	if logConfig.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	slog.SetDefault(slog.New(handler))
	return closer, nil
}
