package grpc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/unitconv/backend/internal/types"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

var errClosed = errors.New("grpc client closed")

// Client calls a remote conversion service through a circuit breaker
type Client struct {
	conn    grpc.ClientConnInterface
	closer  func() error
	addr    string
	breaker *resilience.Breaker

	mu     sync.Mutex
	closed bool
}

// ClientOptions configures NewClient
type ClientOptions struct {
	Tracer      *tracing.Tracer
	Logger      *zap.Logger
	DialOptions []grpc.DialOption
}

// NewClient creates a client for addr. The connection is established lazily.
func NewClient(addr string, opts ClientOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                60 * time.Second,
			Timeout:             20 * time.Second,
			PermitWithoutStream: false,
		}),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(4*1024*1024),
		),
	}
	if opts.Tracer != nil {
		dialOpts = append(dialOpts, grpc.WithUnaryInterceptor(tracing.GRPCClientInterceptor(opts.Tracer)))
	}
	dialOpts = append(dialOpts, opts.DialOptions...)

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc client for %s: %w", addr, err)
	}

	c := NewClientWithConn(conn, addr, opts.Logger)
	c.closer = conn.Close
	return c, nil
}

// NewClientWithConn wraps an existing connection. Close does not close conn.
func NewClientWithConn(conn grpc.ClientConnInterface, addr string, logger *zap.Logger) *Client {
	return &Client{
		conn:    conn,
		addr:    addr,
		breaker: newBreaker(addr, logger),
	}
}

// newBreaker only counts server-side trouble against the breaker; bad
// requests from this client leave it closed.
func newBreaker(addr string, logger *zap.Logger) *resilience.Breaker {
	return resilience.ForRemote("grpc:"+addr, logger, func(err error) bool {
		switch status.Code(err) {
		case codes.OK, codes.InvalidArgument, codes.NotFound, codes.Canceled:
			return true
		default:
			return false
		}
	})
}

// Addr returns the target address
func (c *Client) Addr() string {
	return c.addr
}

// Breaker exposes the circuit breaker for health reporting
func (c *Client) Breaker() *resilience.Breaker {
	return c.breaker
}

// Execute runs a tool on the remote server
func (c *Client) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"tool_id": toolID}
	if params != nil {
		fields["params"] = normalize(params)
	}
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	resp, err := resilience.Call(c.breaker, func() (*structpb.Struct, error) {
		out := new(structpb.Struct)
		if err := c.conn.Invoke(ctx, ExecuteMethod, req, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("execute %s: %w", toolID, err)
	}

	return structToResult(resp), nil
}

// Convert runs a single conversion by id and returns the numeric result
func (c *Client) Convert(ctx context.Context, conversionID string, value float64) (float64, error) {
	result, err := c.Execute(ctx, "conversion."+conversionID, map[string]interface{}{"value": value})
	if err != nil {
		return 0, err
	}
	if !result.Success {
		return 0, fmt.Errorf("conversion failed: %s", result.ErrorMessage())
	}
	v, ok := types.Number(result.Data["result"])
	if !ok {
		return 0, fmt.Errorf("conversion returned no numeric result")
	}
	return v, nil
}

// ListTools fetches the remote tool catalog
func (c *Client) ListTools(ctx context.Context) ([]types.Tool, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	resp, err := resilience.Call(c.breaker, func() (*structpb.Struct, error) {
		out := new(structpb.Struct)
		if err := c.conn.Invoke(ctx, ListToolsMethod, &emptypb.Empty{}, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	return structToTools(resp), nil
}

// Close closes the connection if the client owns it
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.closer != nil {
		return c.closer()
	}
	return nil
}

func (c *Client) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClosed
	}
	return nil
}
