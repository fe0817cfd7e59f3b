// Package cli implements the unitconv command line.
//
// Conversions run in-process by default; convert can instead target a
// running server over HTTP (--remote) or gRPC (--grpc).
package cli
