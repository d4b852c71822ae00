package e2etest

import (
	"time"

	"e2esource/internal/protocol"
)

const (
	StreamName = "data"
	ColumnName = "column1"

	// recordsPerTick is the cadence of state messages.
	recordsPerTick = 5
)

// Counters is the mutable run state. It belongs to exactly one Machine and is
// only changed by Machine.Next.
type Counters struct {
	RecordsEmitted      int64
	CurrentValue        int64
	StateEmittedForTick bool
}

// Machine produces the bounded STATE/RECORD sequence for one run and fails
// with ErrScheduledFailure once ThrowAfterNRecords records were emitted.
// It is not safe for concurrent use.
type Machine struct {
	throwAfter int64
	counters   Counters
	now        func() time.Time
	failed     error
}

type MachineOption func(*Machine)

// WithClock overrides the source of emitted_at timestamps.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) { m.now = now }
}

// NewMachine seeds CurrentValue from the checkpoint, if any. RecordsEmitted
// always starts at zero: the threshold window restarts on every run.
func NewMachine(throwAfterNRecords int64, checkpoint *protocol.ColumnData, opts ...MachineOption) *Machine {
	m := &Machine{throwAfter: throwAfterNRecords, now: time.Now}
	if checkpoint != nil {
		m.counters.CurrentValue = checkpoint.Column1
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Counters returns a snapshot of the run state.
func (m *Machine) Counters() Counters { return m.counters }

// Next returns the next message. Once it has returned the terminal error it
// keeps returning it.
func (m *Machine) Next() (protocol.Message, error) {
	if m.failed != nil {
		return protocol.Message{}, m.failed
	}
	c := &m.counters

	// tick boundary comes first, so a failure on a multiple of 5 is still
	// preceded by its state message
	if c.RecordsEmitted%recordsPerTick == 0 && !c.StateEmittedForTick {
		c.StateEmittedForTick = true
		return protocol.NewState(c.CurrentValue), nil
	}

	if c.RecordsEmitted < m.throwAfter {
		c.RecordsEmitted++
		c.CurrentValue++
		c.StateEmittedForTick = false
		return protocol.NewRecord(StreamName, c.CurrentValue, m.now().UnixMilli()), nil
	}

	m.failed = NewTerminalError(ErrScheduledFailure)
	return protocol.Message{}, m.failed
}
