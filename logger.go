// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"context"
	"log/slog"
)

// Logger is the structured logging interface used during rendering.
//
// Attributes are alternating key/value pairs, following log/slog:
//
//	logger.Warn("unresolvable reference", "ref", "#/definitions/Missing", "path", "/properties/a")
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	// With returns a Logger that prepends attrs to every record.
	With(attrs ...any) Logger
}

// SlogAdapter adapts *slog.Logger to Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps slog logger; nil selects slog.Default().
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogAdapter{logger: logger}
}

// Debug logs at debug level.
func (a *SlogAdapter) Debug(msg string, attrs ...any) {
	a.logger.Log(context.Background(), slog.LevelDebug, msg, attrs...)
}

// Info logs at info level.
func (a *SlogAdapter) Info(msg string, attrs ...any) {
	a.logger.Log(context.Background(), slog.LevelInfo, msg, attrs...)
}

// Warn logs at warn level.
func (a *SlogAdapter) Warn(msg string, attrs ...any) {
	a.logger.Log(context.Background(), slog.LevelWarn, msg, attrs...)
}

// Error logs at error level.
func (a *SlogAdapter) Error(msg string, attrs ...any) {
	a.logger.Log(context.Background(), slog.LevelError, msg, attrs...)
}

// With returns adapter with attrs attached.
func (a *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: a.logger.With(attrs...)}
}

// NopLogger discards all records.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// With returns the same no-op logger.
func (n NopLogger) With(...any) Logger { return n }
