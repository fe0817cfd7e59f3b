// Package ws serves conversions over a WebSocket at /stream.
//
// Message Types (Client → Server):
//   - execute: run a tool, {"type":"execute","id":"1","tool_id":"conversion.kg_to_lb","params":{"kg":2}}
//   - list: return the conversion catalog
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - system: sent once on connect, carries the client_id
//   - result: tool outcome, echoing the request id
//   - conversions: catalog listing
//   - pong: reply to ping
//   - error: malformed or failed request
//
// Example Usage:
//
//	handler := ws.NewHandler(registry, metrics, logger)
//	router.GET("/stream", handler.HandleConnection)
package ws
