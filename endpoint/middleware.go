package endpoint

import "net/http"

// Middleware wraps an http.Handler mounted on the endpoint's HTTP transport.
type Middleware func(next http.Handler) http.Handler

// ChainMiddlewareHandlers wraps handler with middleware, first one outermost.
func ChainMiddlewareHandlers(handler http.Handler, middleware ...Middleware) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}
