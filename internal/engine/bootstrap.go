package engine

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"e2esource/internal/pipeline"
	"e2esource/internal/telemetry"
	"e2esource/internal/transport"
)

type Config struct {
	GRPCPort    int // 0 disables the health server
	MetricsPort int // 0 disables /metrics
	PipelineYml string
	Registerer  prometheus.Registerer
}

func Bootstrap(ctx context.Context, cfg Config) (*Engine, error) {
	// 1. pipeline runner
	runner, err := pipeline.Compile(cfg.PipelineYml)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runner.SetMetrics(telemetry.NewMetrics(reg))

	// 2. transport server, publishing the connectivity check
	var srv *transport.Server
	if cfg.GRPCPort > 0 {
		srv, err = transport.StartServer(cfg.GRPCPort)
		if err != nil {
			_ = runner.Close()
			return nil, fmt.Errorf("transport: %w", err)
		}
		srv.SetConnectionStatus(runner.Source().Check(ctx))
	}

	// 3. metrics
	if cfg.MetricsPort > 0 {
		telemetry.Expose(cfg.MetricsPort)
	}

	return &Engine{
		transport: srv,
		runner:    runner,
	}, nil
}
