package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"e2esource/internal/pipeline"
	"e2esource/internal/protocol"
	"e2esource/sink"
	"e2esource/sink/stdout"
)

type readOptions struct {
	connectorOptions
	State   string
	Catalog string
}

// NewReadCommand streams STATE and RECORD lines to stdout until the
// scheduled failure, which is returned as the command's error.
func NewReadCommand() *cobra.Command {
	opts := &readOptions{}
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Emit records and checkpoints until the scheduled failure",
		Long: `Emit records and checkpoints until the scheduled failure.

A state message is emitted before every block of 5 records. Passing the last
state back with --state continues the value sequence from it.

Example:
  e2esource read --config config.json
  e2esource read --config config.json --state state.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRead(cmd, opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.State, "state", "", "path to the last persisted state")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "configured catalog (accepted and ignored: the source has one stream)")
	return cmd
}

func runRead(cmd *cobra.Command, opts *readOptions) error {
	// config errors surface before any message is written
	src, err := opts.adapter()
	if err != nil {
		return err
	}
	var cp *protocol.ColumnData
	if opts.State != "" {
		raw, err := os.ReadFile(opts.State)
		if err != nil {
			return fmt.Errorf("read state: %w", err)
		}
		if cp, err = protocol.ParseCheckpoint(raw); err != nil {
			return err
		}
	}

	out, err := sink.NewAdapter("stdout")
	if err != nil {
		return err
	}
	if err := out.Configure(stdout.Config{Writer: cmd.OutOrStdout()}); err != nil {
		return err
	}

	r := pipeline.NewRunner()
	r.SetSource(src)
	r.AddSink(out)
	defer r.Close()
	return r.RunFrom(cmd.Context(), cp)
}
