/*
Package client is the remote HTTP client for a unitconv server.

Requests go through a client-side rate limiter and a circuit breaker and
use a retryablehttp transport underneath resty. 4xx responses surface as
*APIError and do not count against the breaker.

	c := client.New("http://localhost:8000", client.DefaultOptions())
	f, err := c.ConvertValue(ctx, "celsius_to_fahrenheit", 100)
*/
package client
