// Package main is the entry point for the unitconv server.
//
// The server exposes the conversion service over:
//   - REST API (gin) with Prometheus metrics
//   - WebSocket streaming at /stream
//   - gRPC (unitconv.v1.ConversionService) with health checks
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -grpc-port 50061
//
//	# Development mode (colored logs, debug level)
//	./server -dev -log-level debug
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
