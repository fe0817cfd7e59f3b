// Package service provides the service registry for provider management.
//
// The registry maintains a catalog of available service providers and handles
// service discovery, tool execution, and relevance scoring for free-text queries.
//
// Components:
//   - Registry: Central service catalog
//   - Provider: Interface for service implementations
//   - Recorder: Optional per-call telemetry sink
//
// Discovery Algorithm:
//   - Keyword matching in name/description
//   - Capability matching
//   - Category bonus for exact matches
//   - Tool-level scoring on ID, name and description words
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(conversion.NewProvider())
//	tools := registry.DiscoverTools("celsius to fahrenheit", 3)
//	result, err := registry.Execute(ctx, "conversion.celsius_to_fahrenheit", params, appCtx)
package service
