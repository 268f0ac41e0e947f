package app

import (
	"time"

	"photorename/internal/rename"
)

// Operation identifies a single CLI invocation. Its ID tags every log line
// written during the run so interleaved runs can be told apart in the
// shared log file.
type Operation struct {
	ID      string
	Name    string
	Started time.Time
}

// NewOperation creates an operation for the named command.
func NewOperation(name string, clock rename.Clock) *Operation {
	now := clock.Now()
	return &Operation{
		ID:      now.UTC().Format("20060102T150405Z"),
		Name:    name,
		Started: now,
	}
}

// Elapsed returns the time since the operation started.
func (op *Operation) Elapsed(clock rename.Clock) time.Duration {
	return clock.Now().Sub(op.Started)
}
