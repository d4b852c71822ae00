package cli

import (
	"github.com/spf13/cobra"

	"e2esource/internal/config"
	"e2esource/internal/protocol"
	"e2esource/source/e2etest"
)

type connectorOptions struct {
	Config string
	Driver string
}

func (o *connectorOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Config, "config", "", "path to the source config (JSON or YAML)")
	cmd.Flags().StringVar(&o.Driver, "driver", e2etest.DriverExceptionAfterN, "source behaviour")
	_ = cmd.MarkFlagRequired("config")
}

// driver builds the source without reading the config. check and discover
// answer for any configuration; only read validates it.
func (o *connectorOptions) driver() (e2etest.Adapter, error) {
	return e2etest.NewAdapter(o.Driver)
}

func (o *connectorOptions) adapter() (e2etest.Adapter, error) {
	cfg, err := config.LoadSourceConfig(o.Config)
	if err != nil {
		return nil, err
	}
	src, err := e2etest.NewAdapter(o.Driver)
	if err != nil {
		return nil, err
	}
	if err := src.Configure(cfg); err != nil {
		return nil, err
	}
	return src, nil
}

// NewSpecCommand prints the configuration the source accepts.
func NewSpecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "spec",
		Short: "Print the connector specification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := e2etest.Spec()
			return writeMessage(cmd.OutOrStdout(), protocol.Message{Type: protocol.TypeSpec, Spec: &s})
		},
	}
}

// NewCheckCommand reports connectivity. It succeeds for any config.
func NewCheckCommand() *cobra.Command {
	opts := &connectorOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := opts.driver()
			if err != nil {
				return err
			}
			defer src.Close()
			cs := src.Check(cmd.Context())
			return writeMessage(cmd.OutOrStdout(), protocol.Message{Type: protocol.TypeConnectionStatus, ConnectionStatus: &cs})
		},
	}
	opts.bind(cmd)
	return cmd
}

func NewDiscoverCommand() *cobra.Command {
	opts := &connectorOptions{}
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Print the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := opts.driver()
			if err != nil {
				return err
			}
			defer src.Close()
			c, err := src.Discover(cmd.Context())
			if err != nil {
				return err
			}
			return writeMessage(cmd.OutOrStdout(), protocol.Message{Type: protocol.TypeCatalog, Catalog: c})
		},
	}
	opts.bind(cmd)
	return cmd
}
