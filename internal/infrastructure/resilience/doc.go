/*
Package resilience provides a circuit breaker for calls to remote
conversion servers.

# Overview

The HTTP and gRPC clients route every request through a Breaker so a dead
or overloaded server fails fast instead of stacking up retries.

# Usage

	breaker := resilience.ForRemote("http://localhost:8000", logger, nil)

	result, err := resilience.Call(breaker, func() (*types.Result, error) {
		return client.execute(ctx, toolID, params)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		// server considered down
	}

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open

Cancelled contexts are never counted as failures.
*/
package resilience
