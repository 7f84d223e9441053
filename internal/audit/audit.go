//go:build !wasm

// Package audit implements the parameter-override audit log called for in
// the design notes: a debug-only record of "parameter X was overridden in
// stage Y", meant to catch regressions like the SLIC hex/Poisson
// refinement bug class. It is compiled into native (CLI) builds and
// compiled out of the WASM build entirely, per the instruction to keep it
// out of the hot WASM path.
package audit

import (
	"log/slog"
	"sync"
)

// Entry is one recorded override.
type Entry struct {
	Stage     string
	Parameter string
	Reason    string
}

var (
	mu      sync.Mutex
	enabled bool
	log     []Entry
	logger  *slog.Logger
)

// Enable turns on audit recording. Disabled by default so release-mode
// callers pay no cost.
func Enable(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
	logger = l
}

// Disable turns off audit recording and clears the log.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
	log = nil
}

// Record notes that parameter was overridden (or deliberately skipped) in
// stage, for reason. A no-op unless Enable was called.
func Record(stage, parameter, reason string) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	log = append(log, Entry{Stage: stage, Parameter: parameter, Reason: reason})
	if logger != nil {
		logger.Debug("parameter override", "stage", stage, "parameter", parameter, "reason", reason)
	}
}

// Entries returns a copy of the recorded log, for tests and CLI reporting.
func Entries() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(log))
	copy(out, log)
	return out
}
