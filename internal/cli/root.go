package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"e2esource/internal/protocol"
	"e2esource/source/e2etest"
)

const (
	ExitOK = iota
	ExitError
	ExitConfigError
)

// NewRootCommand creates the root command for the e2esource CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "e2esource",
		Short:         "Deterministic fault-injection source",
		Long:          "Emits records and checkpoints, then fails on purpose after a configured number of records.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewSpecCommand())
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewDiscoverCommand())
	cmd.AddCommand(NewReadCommand())
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewHealthCommand())

	return cmd
}

// ExitCode maps an error returned by a command to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cfgErr *e2etest.ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	return ExitError
}

func writeMessage(w io.Writer, m protocol.Message) error {
	return protocol.NewEncoder(w).Encode(m)
}
