// Package backend provides an HTTP client for the site's API.
//
// # Overview
//
// The API exposes two endpoints the terminal front end uses:
//
//   - POST /api/analyze: {"image_url": ...} → {caption, tags, dominant_color}
//   - POST /api/contact: {name, email, service, message} → {message}
//
// GET / is used as a cheap reachability probe.
//
// # Architecture
//
//   - client.go: HTTP client, request encoding, error mapping, circuit breaker
//   - types.go: request/response structures and error types
//
// # Error Handling
//
// Responses with status >= 400 become *StatusError, carrying the "error"
// field of the JSON body when present. Transport failures are wrapped with
// "execute request". Callers are expected to degrade rather than fail: the
// analyzer shows a failure caption, the contact form queues the submission
// locally.
//
// Every request runs through a gobreaker circuit breaker. Five consecutive
// transport or 5xx failures open it for 30 seconds, during which calls fail
// fast with ErrUnavailable. 4xx responses prove the API is reachable and do
// not count as failures.
//
// # Client Usage
//
//	client, err := backend.NewClient("127.0.0.1:5000")
//	if err != nil {
//		return err
//	}
//	analysis, err := client.Analyze(ctx, item.Source())
package backend
