// Package config provides 12-factor configuration management for the unitconv backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - GRPC: gRPC listener settings
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Compression: gzip response compression
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.HTTPAddr())
//
// Environment Variables:
//   - PORT, HOST, GRPC_PORT, GRPC_ENABLED
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - COMPRESSION_ENABLED
package config
