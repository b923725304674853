// Package logging provides structured logging for Cascade runs.
//
// It wraps Go's log/slog package to produce JSON-formatted logs with
// persistent attributes, so every entry from a run can be traced back to
// the task and wave that produced it. Output goes to a file (with
// size-based rotation) or to stderr when no log file is configured.
package logging
