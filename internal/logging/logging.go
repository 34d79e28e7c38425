// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging holds the process-wide *slog.Logger used for notices that
// are not part of a command's regular output (short templates, overwritten
// outputs, history failures).
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger installs sl as the package logger. A nil logger discards output.
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		sl = slog.New(slog.DiscardHandler)
	}
	logger.Store(sl)
}

// Logger returns the package logger, or a discarding logger when none was set.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = slog.New(slog.DiscardHandler)
		logger.Store(l)
	}
	return l
}

// NewTextLogger returns a text logger writing to w. Debug records are kept
// when verbose is set.
func NewTextLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
