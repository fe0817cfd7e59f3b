// Package http exposes the conversion registry over REST using gin.
//
// Routes:
//
//	GET  /                         status
//	GET  /health                   registry statistics
//	GET  /services?category=       registered services
//	POST /services/discover        rank services and tools for an intent
//	POST /services/execute         run any tool by id
//	GET  /conversions?quantity=    conversion catalog
//	GET  /conversions/:id?value=x  single conversion
//	POST /conversions/:id/batch    one conversion over many values
//	GET  /metrics                  Prometheus exposition
//	GET  /metrics/json             JSON snapshot
//
// JSON cannot carry NaN or infinities, so results render them as the
// strings "NaN", "+Inf" and "-Inf".
package http
