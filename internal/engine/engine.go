package engine

import (
	"context"
	"errors"

	"google.golang.org/grpc"

	"e2esource/internal/logging"
	"e2esource/internal/pipeline"
	"e2esource/internal/transport"
)

type Engine struct {
	transport *transport.Server
	runner    *pipeline.Runner
}

// Run serves health in the background and runs the pipeline to its end. The
// pipeline's error, normally the scheduled failure, is returned as is.
func (e *Engine) Run(ctx context.Context) error {
	if e.transport != nil {
		go e.serve()
		logging.L().Info("engine: health server listening", "addr", e.transport.Addr().String())
	}

	runErr := e.runner.Run(ctx)

	if e.transport != nil {
		e.transport.Stop()
	}
	return errors.Join(runErr, e.runner.Close())
}

// serve runs the health server until Stop. A short pipeline can reach Stop
// before Serve starts; that ErrServerStopped is not a failure.
func (e *Engine) serve() {
	if err := e.transport.Serve(); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		logging.L().Error("engine: transport stopped", "err", err)
	}
}
