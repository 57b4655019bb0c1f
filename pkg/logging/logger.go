// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for the pairgen CLI.
//
// The package wraps Go's standard library slog with the conventions the
// tool relies on:
//
//   - stderr output by default, so JSONL written to stdout stays clean
//     and the tool composes in shell pipelines
//   - optional file logging with automatic directory creation, for batch
//     runs whose stderr nobody watches
//
// # Basic Usage
//
//	logger := logging.Default()
//	logger.Info("corpus loaded", "segments", len(segments))
//	logger.Warn("prompt missing, using fallback", "segment_id", id)
//
// # File Logging
//
// To keep a per-run log alongside the produced dataset:
//
//	logger, err := logging.New(logging.Config{
//	    Level:   logging.LevelDebug,
//	    LogDir:  "logs",
//	    Service: "pairgen",
//	})
//	if err != nil { ... }
//	defer logger.Close()
//
// File logs are always JSON; stderr is text unless Config.JSON is set.
//
// # Log Levels
//
// Four levels, matching slog conventions: Debug for per-segment trace
// output, Info for run milestones, Warn for soft failures the run survives
// (missing prompt, unscored segment under a scoring strategy), Error for
// failures that abort the run.
//
// # Thread Safety
//
// Logger is safe for concurrent use; slog handlers serialize writes.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Level represents log severity, ordered Debug < Info < Warn < Error.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR" or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") into
// a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Config configures a Logger. The zero value writes Info+ text to stderr.
type Config struct {
	// Level is the minimum severity to emit. Default: LevelInfo.
	Level Level

	// LogDir, when set, enables file logging in addition to stderr. The
	// file is named "{Service}_{YYYY-MM-DD}.log" and always JSON. The
	// directory is created with 0750 permissions when missing.
	LogDir string

	// Service is attached as a "service" attribute to every entry and names
	// the log file. Default: "pairgen".
	Service string

	// JSON switches stderr output from text to JSON.
	JSON bool

	// Quiet disables stderr output entirely; only file logging remains.
	Quiet bool
}

// Logger is a structured logger with optional file output.
type Logger struct {
	slog *slog.Logger
	file *os.File
}

// Default returns a stderr-only logger at Info level.
func Default() *Logger {
	l, _ := New(Config{})
	return l
}

// New creates a Logger from the config. The only error path is file
// logging: an unwritable LogDir fails construction rather than silently
// dropping the file destination.
func New(cfg Config) (*Logger, error) {
	if cfg.Service == "" {
		cfg.Service = "pairgen"
	}

	opts := &slog.HandlerOptions{Level: cfg.Level.toSlogLevel()}

	var handlers []slog.Handler
	if !cfg.Quiet {
		if cfg.JSON {
			handlers = append(handlers, slog.NewJSONHandler(os.Stderr, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(os.Stderr, opts))
		}
	}

	var file *os.File
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0o750); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		name := fmt.Sprintf("%s_%s.log", cfg.Service, time.Now().Format("2006-01-02"))
		f, err := os.OpenFile(filepath.Join(cfg.LogDir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	var base *slog.Logger
	switch len(handlers) {
	case 0:
		base = slog.New(slog.NewTextHandler(io.Discard, opts))
	case 1:
		base = slog.New(handlers[0])
	default:
		base = slog.New(multiHandler(handlers))
	}

	return &Logger{slog: base.With("service", cfg.Service), file: file}, nil
}

// With returns a child logger carrying additional attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), file: l.file}
}

// Debug logs at debug level with alternating key/value attributes.
func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.slog.Info(msg, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.slog.Warn(msg, args...) }

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// Close flushes and closes the log file, if any. Safe to call on a
// stderr-only logger.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
