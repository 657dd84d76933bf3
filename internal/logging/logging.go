// Package logging provides the structured logger every map builder
// and planner accepts through a functional option. It mirrors the
// teacher corpus's zap-over-appender convention, reduced to the piece
// this library actually exercises: a leveled, named logger that
// defaults to silent so the core stays dependency-free of a caller's
// logging setup unless one is supplied.
package logging

import (
	"go.uber.org/zap"
)

// Logger is zap's SugaredLogger, the logger type the planning core calls.
type Logger = zap.SugaredLogger

// NewNop returns a logger that discards everything. It is the default
// every planner and map builder uses when no WithLogger option is
// given.
func NewNop() *Logger {
	return zap.NewNop().Sugar()
}

// NewDevelopment returns a human-readable console logger
// suitable for the cmd/plandemo binary and for local debugging of
// replanning behavior.
func NewDevelopment(name string) *Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		// zap.NewDevelopment only fails on an unwritable sink; stderr
		// is always writable in practice, so fall back to Nop rather
		// than propagate a constructor error from a logging helper.
		return NewNop()
	}
	return l.Sugar().Named(name)
}
