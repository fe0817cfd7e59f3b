// Package server wires the unitconv process together.
//
// NewServer builds the logger, metrics, tracer and service registry from
// config, mounts the HTTP API and the /stream WebSocket on a gin router and,
// when enabled, a gRPC server exposing the same registry.
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger, metrics and tracer
//  3. Register the conversion provider
//  4. Setup HTTP routes and middleware
//  5. Serve HTTP (gzip when enabled) and gRPC
//  6. Graceful shutdown when the context is cancelled
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg, version)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
