package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"e2esource/internal/protocol"
)

func startBufServer(t *testing.T) (*Server, []grpc.DialOption) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(lis)
	go func() { _ = srv.Serve() }()
	t.Cleanup(srv.Stop)

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	}
	return srv, opts
}

func TestHealth_ReportsConnectionStatus(t *testing.T) {
	srv, opts := startBufServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cs, err := Check(ctx, "passthrough:///bufnet", opts...)
	require.NoError(t, err)
	assert.Equal(t, protocol.StatusFailed, cs.Status)

	srv.SetConnectionStatus(protocol.ConnectionStatus{Status: protocol.StatusSucceeded})
	cs, err = Check(ctx, "passthrough:///bufnet", opts...)
	require.NoError(t, err)
	assert.Equal(t, protocol.StatusSucceeded, cs.Status)
}
