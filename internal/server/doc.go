// Package server exposes the jukebox page over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with per-method dispatch.
//
// # Handlers
//
// [APIHandler] renders the page view as JSON and accepts toggle and refetch commands.
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Middleware
//
//   - [Logging] : one structured log line per request
//   - [RateLimit] : token bucket (golang.org/x/time/rate) for mutating requests
//   - [Recover] : converts handler panics into 500 responses
package server
