package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/server"
)

// Set via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override environment
	flag.StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "HTTP server port")
	flag.StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "Listen host")
	flag.StringVar(&cfg.GRPC.Port, "grpc-port", cfg.GRPC.Port, "gRPC server port")
	flag.BoolVar(&cfg.GRPC.Enabled, "grpc", cfg.GRPC.Enabled, "Serve gRPC")
	flag.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level (debug, info, warn, error)")
	flag.BoolVar(&cfg.Logging.Development, "dev", cfg.Logging.Development, "Development mode (colored logs)")
	flag.BoolVar(&cfg.Compression.Enabled, "gzip", cfg.Compression.Enabled, "Compress HTTP responses")
	flag.BoolVar(&cfg.RateLimit.Enabled, "rate-limit", cfg.RateLimit.Enabled, "Enable per-IP rate limiting")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("unitconv-server version %s\n", version)
		return
	}

	srv, err := server.NewServer(cfg, version)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
