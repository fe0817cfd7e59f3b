// Package grpc exposes the conversion registry as the gRPC service
// unitconv.v1.ConversionService and provides a client for it.
//
// The service is declared by hand over well-known protobuf types
// (google.protobuf.Struct and Empty), so no protoc step is involved:
//
//	Execute(Struct{tool_id, params, client_id?}) -> Struct{success, data, error}
//	ListTools(Empty)                             -> Struct{service, name, tools}
//
// The server also registers the standard grpc.health.v1 service.
//
// Status codes:
//   - InvalidArgument: tool_id missing
//   - NotFound: malformed tool id or unknown service
//   - DeadlineExceeded / Canceled: caller context ended
//   - OK with success=false: the tool itself rejected the input
//
// Example Usage:
//
//	srv := grpc.NewServer(registry, metrics, logger).GRPCServer(tracer)
//	go srv.Serve(listener)
//
//	client, err := grpc.NewClient("localhost:50061", grpc.ClientOptions{})
//	value, err := client.Convert(ctx, "kg_to_lb", 2)
package grpc
