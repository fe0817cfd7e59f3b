package grpc

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/unitconv/backend/internal/providers/conversion"
	"github.com/GriffinCanCode/unitconv/backend/internal/service"
	"github.com/GriffinCanCode/unitconv/backend/internal/shared/id"
	"github.com/GriffinCanCode/unitconv/backend/internal/types"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server implements ConversionServiceServer on top of the service registry
type Server struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewServer creates the gRPC service implementation. metrics may be nil.
func NewServer(registry *service.Registry, metrics *monitoring.Metrics, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{
		registry: registry,
		metrics:  metrics,
		logger:   logger.Component("grpc"),
	}
}

// GRPCServer builds a grpc.Server serving the conversion and health
// services. tracer may be nil.
func (s *Server) GRPCServer(tracer *tracing.Tracer) *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{s.recoveryInterceptor}
	if tracer != nil {
		interceptors = append(interceptors, tracing.GRPCUnaryInterceptor(tracer))
	}
	interceptors = append(interceptors, s.metricsInterceptor)

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptors...),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             30 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.MaxRecvMsgSize(4*1024*1024),
	)

	RegisterConversionServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

// Execute runs a tool. Tool-level failures come back as success=false
// with an OK status; only transport and routing problems are gRPC errors.
func (s *Server) Execute(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	toolID := fields["tool_id"].GetStringValue()
	if toolID == "" {
		return nil, status.Error(codes.InvalidArgument, "tool_id required")
	}

	var params map[string]interface{}
	if p := fields["params"].GetStructValue(); p != nil {
		params = decodeStruct(p)
	}

	reqID := id.NewRequestID().String()
	appCtx := &types.Context{RequestID: &reqID, Transport: "grpc"}
	if clientID := fields["client_id"].GetStringValue(); clientID != "" {
		appCtx.ClientID = &clientID
	}

	result, err := s.registry.Execute(ctx, toolID, params, appCtx)
	if err != nil {
		return nil, toStatus(err, result)
	}

	return resultToStruct(result)
}

// ListTools returns the conversion service definition
func (s *Server) ListTools(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	provider, ok := s.registry.Get(conversion.ServiceID)
	if !ok {
		return nil, status.Error(codes.Unavailable, "conversion service not registered")
	}
	return serviceToStruct(provider.Definition())
}

func toStatus(err error, result *types.Result) error {
	if st := status.FromContextError(err); st.Code() != codes.Unknown {
		return st.Err()
	}
	if result != nil {
		// Registry rejected the id before reaching a provider
		return status.Error(codes.NotFound, result.ErrorMessage())
	}
	return status.Error(codes.Internal, err.Error())
}

func (s *Server) metricsInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	timer := monitoring.NewTimer(s.metrics, ServiceName, methodName(info.FullMethod))
	resp, err := handler(ctx, req)

	code := status.Code(err)
	duration := timer.Stop(code.String())
	if err != nil && s.metrics != nil {
		s.metrics.RecordGRPCError(ServiceName, methodName(info.FullMethod), code.String())
	}

	s.logger.Debug("rpc handled",
		zap.String("method", info.FullMethod),
		zap.String("code", code.String()),
		zap.Duration("duration", duration))
	return resp, err
}

func (s *Server) recoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in rpc handler",
				zap.String("method", info.FullMethod),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			err = status.Error(codes.Internal, fmt.Sprintf("internal error: %v", r))
		}
	}()
	return handler(ctx, req)
}

func methodName(fullMethod string) string {
	for i := len(fullMethod) - 1; i >= 0; i-- {
		if fullMethod[i] == '/' {
			return fullMethod[i+1:]
		}
	}
	return fullMethod
}
