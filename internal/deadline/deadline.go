// Package deadline implements the core's cooperative timeout: a deadline
// checked at stage boundaries and coarse intra-stage checkpoints.
package deadline

import (
	"time"

	"github.com/lindqvist/vectorize/internal/errs"
)

// Checker holds an optional deadline derived from max_processing_time_ms.
// A zero-value maxMs means unlimited (every Check call succeeds).
type Checker struct {
	deadline  time.Time
	unlimited bool
}

// New creates a Checker starting now, with budget maxMs milliseconds.
// maxMs==0 means unlimited.
func New(maxMs uint32) Checker {
	if maxMs == 0 {
		return Checker{unlimited: true}
	}
	return Checker{deadline: time.Now().Add(time.Duration(maxMs) * time.Millisecond)}
}

// Check returns a Timeout error once the deadline has passed.
func (c Checker) Check(stage string) error {
	if c.unlimited {
		return nil
	}
	if time.Now().After(c.deadline) {
		return errs.NewTimeout(stage)
	}
	return nil
}
