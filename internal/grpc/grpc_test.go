package grpc

import (
	"context"
	"errors"
	"math"
	"net"
	"testing"
	"time"

	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/unitconv/backend/internal/providers/conversion"
	"github.com/GriffinCanCode/unitconv/backend/internal/service"
	"github.com/GriffinCanCode/unitconv/backend/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type fixture struct {
	client  *Client
	conn    *grpc.ClientConn
	metrics *monitoring.Metrics
}

func setup(t *testing.T) *fixture {
	t.Helper()

	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	registry := service.NewRegistry().WithRecorder(metrics)
	require.NoError(t, registry.Register(conversion.NewProvider()))

	lis := bufconn.Listen(1 << 20)
	srv := NewServer(registry, metrics, nil).GRPCServer(nil)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &fixture{
		client:  NewClientWithConn(conn, "bufnet", nil),
		conn:    conn,
		metrics: metrics,
	}
}

func TestConvert(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tests := []struct {
		id    string
		input float64
		want  float64
	}{
		{"celsius_to_fahrenheit", 0, 32},
		{"fahrenheit_to_celsius", 32, 0},
		{"dollar_to_vnd", 1, 23000},
		{"vnd_to_dollar", 23000, 1},
		{"inch_to_cm", 1, 2.54},
		{"kg_to_lb", 1, 2.205},
		{"kph_to_mps", 1, 3.6},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := f.client.Convert(ctx, tt.id, tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestExecuteNonFinite(t *testing.T) {
	f := setup(t)

	result, err := f.client.Execute(context.Background(), "conversion.hp_to_watts",
		map[string]interface{}{"hp": math.Inf(-1)})
	require.NoError(t, err)
	require.True(t, result.Success)
	got, ok := types.Number(result.Data["result"])
	require.True(t, ok, result.Data["result"])
	assert.True(t, math.IsInf(got, -1))

	// finite input overflowing to +Inf
	v, err := f.client.Convert(context.Background(), "dollar_to_vnd", 1e305)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))

	v, err = f.client.Convert(context.Background(), "kg_to_lb", math.NaN())
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	result, err = f.client.Execute(context.Background(), "conversion.batch", map[string]interface{}{
		"conversion": "inch_to_cm",
		"values":     []interface{}{math.Inf(1), 1.0},
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	results := result.Data["results"].([]interface{})
	assert.True(t, math.IsInf(results[0].(float64), 1))
	assert.Equal(t, 2.54, results[1])
}

func TestDecodeStructKeepsNonFinite(t *testing.T) {
	s, err := structpb.NewStruct(map[string]interface{}{
		"inf":    math.Inf(1),
		"nested": map[string]interface{}{"nan": math.NaN()},
		"list":   []interface{}{math.Inf(-1), "x", true, nil},
	})
	require.NoError(t, err)

	m := decodeStruct(s)
	assert.True(t, math.IsInf(m["inf"].(float64), 1))
	assert.True(t, math.IsNaN(m["nested"].(map[string]interface{})["nan"].(float64)))
	list := m["list"].([]interface{})
	assert.True(t, math.IsInf(list[0].(float64), -1))
	assert.Equal(t, []interface{}{"x", true, nil}, list[1:])
}

func TestExecuteToolFailure(t *testing.T) {
	f := setup(t)

	result, err := f.client.Execute(context.Background(), "conversion.kg_to_lb", map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "kg parameter required", result.ErrorMessage())

	_, err = f.client.Convert(context.Background(), "stone_to_kg", 1)
	assert.ErrorContains(t, err, "unknown tool")
}

func TestExecuteStatusCodes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.client.Execute(ctx, "math.add", nil)
	assert.Equal(t, codes.NotFound, status.Code(errors.Unwrap(err)))

	// Raw call without tool_id
	out := new(structpb.Struct)
	err = f.conn.Invoke(ctx, ExecuteMethod, &structpb.Struct{}, out)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	// Client errors do not trip the breaker
	assert.Equal(t, resilience.StateClosed, f.client.Breaker().State())
}

func TestListTools(t *testing.T) {
	f := setup(t)

	tools, err := f.client.ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 17)

	assert.Equal(t, "conversion.celsius_to_fahrenheit", tools[0].ID)
	require.Len(t, tools[0].Parameters, 1)
	assert.Equal(t, "celsius", tools[0].Parameters[0].Name)
	assert.True(t, tools[0].Parameters[0].Required)
}

func TestHealthService(t *testing.T) {
	f := setup(t)

	resp, err := healthpb.NewHealthClient(f.conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestMetricsRecorded(t *testing.T) {
	f := setup(t)

	_, err := f.client.Convert(context.Background(), "joule_to_cal", 1000)
	require.NoError(t, err)
	_, _ = f.client.Execute(context.Background(), "math.add", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.GRPCCalls.WithLabelValues(ServiceName, "Execute", "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.GRPCErrors.WithLabelValues(ServiceName, "Execute", "NotFound")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ConversionsTotal.WithLabelValues("joule_to_cal", "energy")))
}

func TestDeadline(t *testing.T) {
	f := setup(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := f.client.Execute(ctx, "conversion.kg_to_lb", map[string]interface{}{"kg": 1})
	require.Error(t, err)
	assert.Equal(t, codes.DeadlineExceeded, status.Code(errors.Unwrap(err)))
}

func TestClosedClient(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.client.Close())
	require.NoError(t, f.client.Close())

	_, err := f.client.ListTools(context.Background())
	assert.ErrorIs(t, err, errClosed)
}

func TestMethodName(t *testing.T) {
	assert.Equal(t, "Execute", methodName(ExecuteMethod))
	assert.Equal(t, "ListTools", methodName(ListToolsMethod))
	assert.Equal(t, "bare", methodName("bare"))
}

// failingConn answers every call with a fixed status
type failingConn struct {
	code codes.Code
}

func (f failingConn) Invoke(ctx context.Context, method string, args, reply interface{}, opts ...grpc.CallOption) error {
	return status.Error(f.code, "injected")
}

func (f failingConn) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, status.Error(f.code, "injected")
}

func TestClientBreakerClassification(t *testing.T) {
	ctx := context.Background()

	notFound := NewClientWithConn(failingConn{code: codes.NotFound}, "nf", nil)
	for i := 0; i < 6; i++ {
		_, err := notFound.Execute(ctx, "conversion.kg_to_lb", nil)
		require.Error(t, err)
	}
	assert.Equal(t, resilience.StateClosed, notFound.Breaker().State())

	down := NewClientWithConn(failingConn{code: codes.Unavailable}, "down", nil)
	for i := 0; i < 5; i++ {
		_, err := down.Execute(ctx, "conversion.kg_to_lb", nil)
		assert.Equal(t, codes.Unavailable, status.Code(errors.Unwrap(err)))
	}
	assert.Equal(t, resilience.StateOpen, down.Breaker().State())

	_, err := down.Execute(ctx, "conversion.kg_to_lb", nil)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
}
