package pipeline

import (
	"context"
	"errors"
	"fmt"

	"e2esource/internal/checkpoint"
	"e2esource/internal/logging"
	"e2esource/internal/protocol"
	"e2esource/internal/telemetry"
	"e2esource/sink"
	"e2esource/source/e2etest"
)

// Runner drives one source run: every message goes to every sink, and a state
// message is persisted once all sinks accepted it.
type Runner struct {
	source  e2etest.Adapter
	sinks   []sink.Adapter
	store   checkpoint.Store
	metrics *telemetry.Metrics
}

func NewRunner() *Runner { return &Runner{} }

func (r *Runner) AddSink(s sink.Adapter)          { r.sinks = append(r.sinks, s) }
func (r *Runner) SetSource(s e2etest.Adapter)     { r.source = s }
func (r *Runner) SetStore(s checkpoint.Store)     { r.store = s }
func (r *Runner) SetMetrics(m *telemetry.Metrics) { r.metrics = m }
func (r *Runner) Source() e2etest.Adapter         { return r.source }

/*──────── message routing ───────*/
func (r *Runner) pushMessage(m protocol.Message) error {
	for _, s := range r.sinks {
		if err := s.Push(m); err != nil {
			return err
		}
	}
	r.metrics.Observe(m)

	if m.Type == protocol.TypeState && r.store != nil {
		err := r.store.Save(m.State.Data)
		r.metrics.Checkpointed(m.State.Data, err)
		if err != nil {
			return fmt.Errorf("persist state: %w", err)
		}
	}
	return nil
}

// Run blocks until the source stops. With the exception_after_n driver that is
// always an error: the scheduled failure, a sink error, or ctx.
func (r *Runner) Run(ctx context.Context) error {
	if r.source == nil {
		return errors.New("runner: no source configured")
	}
	var cp *protocol.ColumnData
	if r.store != nil {
		var err error
		if cp, err = r.store.Load(); err != nil {
			return err
		}
	}
	return r.run(ctx, cp)
}

// RunFrom is Run with an explicit inbound checkpoint instead of the store's.
func (r *Runner) RunFrom(ctx context.Context, cp *protocol.ColumnData) error {
	if r.source == nil {
		return errors.New("runner: no source configured")
	}
	return r.run(ctx, cp)
}

func (r *Runner) run(ctx context.Context, cp *protocol.ColumnData) error {
	err := r.source.Read(ctx, cp, r.pushMessage)
	if errors.Is(err, e2etest.ErrScheduledFailure) {
		r.metrics.ScheduledFailure()
		logging.L().Warn("runner: source stopped with scheduled failure", "retryable", e2etest.IsRetryable(err))
	}
	return err
}

func (r *Runner) Close() error {
	var errs []error
	for _, s := range r.sinks {
		errs = append(errs, s.Close())
	}
	if r.source != nil {
		errs = append(errs, r.source.Close())
	}
	return errors.Join(errs...)
}
