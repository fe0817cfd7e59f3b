/*
Package monitoring provides metrics collection for the conversion server.

# Overview

Metrics are Prometheus collectors registered on a per-instance registry,
so every server (and every test) owns its own set. A small snapshot is
mirrored alongside for the JSON endpoint.

# Features

- HTTP request metrics (latency, throughput, size)
- Service call metrics (duration, errors)
- Per-conversion counters labelled by quantity
- gRPC call metrics (latency, status codes)
- WebSocket connection metrics
- Uptime as a GaugeFunc

# Usage

	metrics := monitoring.NewMetrics(nil)
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "unitconv.v1.ConversionService", "Execute")
	// ... handle call ...
	timer.Stop("OK")
*/
package monitoring
