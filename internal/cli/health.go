package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"e2esource/internal/protocol"
	"e2esource/internal/transport"
)

func NewHealthCommand() *cobra.Command {
	var addr string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Query the health endpoint of a running pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			cs, err := transport.Check(ctx, addr)
			if err != nil {
				return err
			}
			return writeMessage(cmd.OutOrStdout(), protocol.Message{Type: protocol.TypeConnectionStatus, ConnectionStatus: &cs})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:7070", "health server address")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")
	return cmd
}
