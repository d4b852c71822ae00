package e2etest

import (
	"context"
	"errors"
	"time"

	"e2esource/internal/logging"
	"e2esource/internal/protocol"
)

const DriverExceptionAfterN = "exception_after_n"

// ExceptionAfterNDriver emits records and checkpoints and then fails on
// purpose after ThrowAfterNRecords records.
type ExceptionAfterNDriver struct {
	cfg Config
	now func() time.Time
}

func (d *ExceptionAfterNDriver) Configure(cfg Config) error {
	if cfg.ThrowAfterNRecords < 0 {
		return &ConfigError{Field: keyThrowAfterN, Reason: "must be non-negative"}
	}
	d.cfg = cfg
	return nil
}

// SetClock is used by tests to pin emitted_at.
func (d *ExceptionAfterNDriver) SetClock(now func() time.Time) { d.now = now }

func (d *ExceptionAfterNDriver) Check(context.Context) protocol.ConnectionStatus {
	return protocol.ConnectionStatus{Status: protocol.StatusSucceeded}
}

func (d *ExceptionAfterNDriver) Discover(context.Context) (*protocol.Catalog, error) {
	return Catalog()
}

func (d *ExceptionAfterNDriver) Read(ctx context.Context, checkpoint *protocol.ColumnData, emit EmitFunc) error {
	log := logging.L().With("driver", DriverExceptionAfterN)
	if checkpoint != nil {
		log.Info("found state", ColumnName, checkpoint.Column1)
	} else {
		log.Info("no state found")
	}

	var opts []MachineOption
	if d.now != nil {
		opts = append(opts, WithClock(d.now))
	}
	m := NewMachine(d.cfg.ThrowAfterNRecords, checkpoint, opts...)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := m.Next()
		if err != nil {
			if errors.Is(err, ErrScheduledFailure) {
				c := m.Counters()
				log.Error("throwing scheduled failure", "records", c.RecordsEmitted, "value", c.CurrentValue)
			}
			return err
		}
		switch msg.Type {
		case protocol.TypeState:
			log.Debug("emitting state", "value", msg.State.Data.Column1)
		case protocol.TypeRecord:
			log.Debug("emitting record", "value", msg.Record.Data.Column1, "records", m.Counters().RecordsEmitted)
		}
		if err := emit(msg); err != nil {
			return err
		}
	}
}

func (d *ExceptionAfterNDriver) Close() error { return nil }

func init() {
	Register(DriverExceptionAfterN, func() Adapter { return &ExceptionAfterNDriver{} })
}
