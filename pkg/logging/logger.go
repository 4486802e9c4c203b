// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging setup for Bellwether
// components.
//
// The package is a thin layer over the standard library's slog: it
// standardizes the level configuration and the per-service attribute so every
// component logs with the same shape. Nothing in the library imports it; the
// engine logs through the process-default slog logger. It exists for host
// binaries embedding the library: build a logger here and install it with
// slog.SetDefault so every component emits the same fields.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//	    Level:   logging.LevelDebug,
//	    Service: "stability",
//	})
//	logger.Info("run started", "trials", 1000)
//
// # Thread Safety
//
// The returned *slog.Logger is safe for concurrent use.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Level represents log severity, ordered Debug < Info < Warn < Error.
type Level int

// LevelInfo is the zero value so an unconfigured logger defaults to Info.
const (
	// LevelDebug is for development troubleshooting.
	LevelDebug Level = iota - 1

	// LevelInfo is for normal operational messages.
	LevelInfo

	// LevelWarn is for recoverable issues (fallbacks, partial orders).
	LevelWarn

	// LevelError is for failed operations where the system continues.
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
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

// Config configures a logger. The zero value writes Info+ text to stderr.
type Config struct {
	// Level is the minimum level; messages below it are discarded.
	Level Level

	// Service is attached to every entry as the "service" attribute.
	// Empty means no attribute.
	Service string

	// JSON switches output to machine-parseable JSON records.
	JSON bool

	// Writer overrides the output destination. Defaults to stderr.
	Writer io.Writer
}

// New builds a structured logger from the config.
func New(config Config) *slog.Logger {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: config.Level.toSlogLevel()}

	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	if config.Service != "" {
		logger = logger.With(slog.String("service", config.Service))
	}
	return logger
}

// Default returns an Info-level text logger on stderr.
func Default() *slog.Logger {
	return New(Config{})
}
