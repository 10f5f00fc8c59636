package server

import (
	"context"
	"time"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	"github.com/msto63/lexan/foundation/lexan"
	"github.com/msto63/lexan/internal/analyzer/service"
	coreGrpc "github.com/msto63/lexan/pkg/core/grpc"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a lexan server
type Client struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

// Dial connects to the server at target
func Dial(cfg coreGrpc.ClientConfig, opts ...grpc.DialOption) (*Client, error) {
	conn, err := coreGrpc.Dial(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, timeout: cfg.Timeout}, nil
}

// NewClient wraps an existing connection
func NewClient(conn *grpc.ClientConn, timeout time.Duration) *Client {
	return &Client{conn: conn, timeout: timeout}
}

// Analyze runs mode remotely
func (c *Client) Analyze(ctx context.Context, mode lexan.Mode, text, locale string) (*service.Response, error) {
	if !mode.IsValid() {
		return nil, mdwerror.New("unknown analysis mode").
			WithCode(mdwerror.CodeUnknownMode).
			WithOperation("client.Analyze").
			WithDetail("mode", string(mode))
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, FullMethod(mode), NewRequest(text, locale), out); err != nil {
		return nil, coreGrpc.FromStatus(err)
	}
	return fromStruct(out)
}

// Health returns the serving status reported by the server
func (c *Client) Health(ctx context.Context) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, coreGrpc.FromStatus(err)
	}
	return resp.GetStatus(), nil
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}
