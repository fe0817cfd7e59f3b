/*
Package tracing provides lightweight request tracing for the conversion
server.

# Overview

Every HTTP request and gRPC call gets a span. Spans carry a trace ID that
is taken from the caller when present (X-Trace-ID / X-Span-ID headers or
the matching gRPC metadata) and generated otherwise. Finished spans are
buffered and written through zap by a single collector goroutine.

# Usage

	tracer := tracing.New("unitconv", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(tracing.GRPCUnaryInterceptor(tracer)),
	)

	conn, err := grpc.NewClient(addr,
		grpc.WithUnaryInterceptor(tracing.GRPCClientInterceptor(tracer)),
	)

# Status codes

HTTP spans record the response status. gRPC spans record the numeric
grpc code, so an OK call has status 0.
*/
package tracing
