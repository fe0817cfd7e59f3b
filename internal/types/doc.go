// Package types provides shared data structures for the unitconv backend.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool: Service tool definition
//   - Context: Execution context for operations
//   - Result: Standard operation result
//
// Request Types:
//   - DiscoverRequest: Service discovery by intent
//   - ExecuteRequest: Service tool execution
//   - BatchRequest: Batch conversion input
//   - WSMessage: WebSocket communication
//
// Example Usage:
//
//	result, err := registry.Execute(ctx, "conversion.inch_to_cm",
//	    map[string]interface{}{"inch": 1.0}, nil)
package types
