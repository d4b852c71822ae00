package transport

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"e2esource/internal/protocol"
)

// Check asks a running engine for the source's connection status.
func Check(ctx context.Context, target string, opts ...grpc.DialOption) (protocol.ConnectionStatus, error) {
	if len(opts) == 0 {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	cc, err := grpc.NewClient(target, opts...)
	if err != nil {
		return protocol.ConnectionStatus{}, err
	}
	defer cc.Close()

	resp, err := healthpb.NewHealthClient(cc).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return protocol.ConnectionStatus{}, fmt.Errorf("health %s: %w", target, err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return protocol.ConnectionStatus{Status: protocol.StatusFailed, Message: resp.GetStatus().String()}, nil
	}
	return protocol.ConnectionStatus{Status: protocol.StatusSucceeded}, nil
}
