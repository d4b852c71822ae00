package e2etest

import (
	"context"

	"e2esource/internal/protocol"
)

type EmitFunc func(protocol.Message) error

type Adapter interface {
	Configure(Config) error
	Check(context.Context) protocol.ConnectionStatus
	Discover(context.Context) (*protocol.Catalog, error)
	// Read emits messages until the source terminates, emit fails, or ctx is
	// done. A nil checkpoint starts the value sequence at zero.
	Read(ctx context.Context, checkpoint *protocol.ColumnData, emit EmitFunc) error
	Close() error
}
