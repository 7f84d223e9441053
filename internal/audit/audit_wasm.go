//go:build wasm

// In the WASM build the audit log is a compile-time no-op: every call
// inlines to nothing so the hot path carries no bookkeeping cost.
package audit

import "log/slog"

func Enable(l *slog.Logger) {}
func Disable()              {}
func Record(stage, parameter, reason string) {}

func Entries() []Entry { return nil }

type Entry struct {
	Stage     string
	Parameter string
	Reason    string
}
