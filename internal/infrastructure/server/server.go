package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	apihttp "github.com/GriffinCanCode/unitconv/backend/internal/api/http"
	"github.com/GriffinCanCode/unitconv/backend/internal/api/middleware"
	"github.com/GriffinCanCode/unitconv/backend/internal/api/ws"
	grpcapi "github.com/GriffinCanCode/unitconv/backend/internal/grpc"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/unitconv/backend/internal/providers/conversion"
	"github.com/GriffinCanCode/unitconv/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP and gRPC servers and their dependencies
type Server struct {
	config   *config.Config
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
	registry *service.Registry

	router     *gin.Engine
	httpServer *http.Server
	grpcServer *grpc.Server

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, version string) (*Server, error) {
	logger := logging.FromLevel(cfg.Logging.Level, cfg.Logging.Development)

	logger.Info("Initializing unitconv server",
		zap.String("http_addr", cfg.HTTPAddr()),
		zap.Bool("grpc_enabled", cfg.GRPC.Enabled),
		zap.String("grpc_addr", cfg.GRPCAddr()),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics(nil)
	tracer := tracing.New("unitconv", logger.Logger)

	registry := service.NewRegistry().WithRecorder(metrics)
	if err := registry.Register(conversion.NewProvider()); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to register conversion provider: %w", err)
	}
	logger.Info("Registered service providers", zap.Int("count", len(registry.List(nil))))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.BodyLimit(middleware.MaxBodySize))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	apihttp.NewHandlers(registry, metrics, logger.Component("http"), version).Register(router)
	router.GET("/stream", ws.NewHandler(registry, metrics, logger.Component("ws")).HandleConnection)

	s := &Server{
		config:   cfg,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		registry: registry,
		router:   router,
	}

	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.GRPC.Enabled {
		s.grpcServer = grpcapi.NewServer(registry, metrics, logger.Component("grpc")).GRPCServer(tracer)
	}

	logger.Info("Server initialized successfully")
	return s, nil
}

// Handler returns the root HTTP handler. Responses are gzip-compressed when
// compression is enabled; WebSocket upgrades always bypass compression.
func (s *Server) Handler() http.Handler {
	if !s.config.Compression.Enabled {
		return s.router
	}

	gzipped := gzhttp.GzipHandler(s.router)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			s.router.ServeHTTP(w, r)
			return
		}
		gzipped.ServeHTTP(w, r)
	})
}

// Registry exposes the service registry
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Metrics exposes the metrics collector
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Run listens on the configured addresses and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	httpLis, err := net.Listen("tcp", s.config.HTTPAddr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.HTTPAddr(), err)
	}

	var grpcLis net.Listener
	if s.grpcServer != nil {
		grpcLis, err = net.Listen("tcp", s.config.GRPCAddr())
		if err != nil {
			httpLis.Close()
			return fmt.Errorf("failed to listen on %s: %w", s.config.GRPCAddr(), err)
		}
	}

	return s.Serve(ctx, httpLis, grpcLis)
}

// Serve serves on the given listeners until ctx is done or a server fails,
// then shuts down gracefully. grpcLis may be nil.
func (s *Server) Serve(ctx context.Context, httpLis, grpcLis net.Listener) error {
	errChan := make(chan error, 2)

	s.logger.Info("Starting HTTP server", zap.String("addr", httpLis.Addr().String()))
	go func() {
		if err := s.httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	if grpcLis != nil && s.grpcServer != nil {
		s.logger.Info("Starting gRPC server", zap.String("addr", grpcLis.Addr().String()))
		go func() {
			if err := s.grpcServer.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errChan <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down gracefully...")
	case runErr = <-errChan:
		s.logger.Error("Server error", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown stops both servers, flushes traces and syncs the logger.
// It is safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
			s.shutdownErr = fmt.Errorf("failed to shut down http server: %w", err)
		}

		if s.grpcServer != nil {
			stopped := make(chan struct{})
			go func() {
				s.grpcServer.GracefulStop()
				close(stopped)
			}()
			select {
			case <-stopped:
			case <-ctx.Done():
				s.grpcServer.Stop()
			}
		}

		s.tracer.Close()
		s.logger.Info("Server stopped")
		_ = s.logger.Sync()
	})
	return s.shutdownErr
}
