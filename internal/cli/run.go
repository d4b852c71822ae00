package cli

import (
	"github.com/spf13/cobra"

	"e2esource/internal/engine"
)

type runOptions struct {
	Pipeline    string
	GRPCPort    int
	MetricsPort int
}

// NewRunCommand runs a pipeline file: the source, its sinks, checkpoint
// persistence, the health endpoint and metrics.
func NewRunCommand() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a pipeline with checkpoint persistence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := engine.Bootstrap(cmd.Context(), engine.Config{
				GRPCPort:    opts.GRPCPort,
				MetricsPort: opts.MetricsPort,
				PipelineYml: opts.Pipeline,
			})
			if err != nil {
				return err
			}
			return e.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&opts.Pipeline, "pipeline", "pipeline.yml", "pipeline file")
	cmd.Flags().IntVar(&opts.GRPCPort, "grpc-port", 7070, "health server port (0 disables)")
	cmd.Flags().IntVar(&opts.MetricsPort, "metrics-port", 9100, "metrics port (0 disables)")
	return cmd
}
