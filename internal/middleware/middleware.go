// Package middleware stores the global middleware of the HTTP server.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request-scoped logging, CORS, tracing, metrics and panic
// recovery, and provide the global error handler every error ends up in.
package middleware
