// Package middleware provides the HTTP middleware of the conversion server.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing via gin-contrib/cors
//   - RateLimit: Per-IP token bucket rate limiting with idle eviction
//   - GlobalRateLimit: One bucket shared by every caller
//   - RequestID: ULID request IDs echoed in X-Request-ID
//   - BodyLimit: Caps request body size
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
