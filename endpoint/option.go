package endpoint

import (
	"github.com/RileyEv/databridge/provider"
	"github.com/viant/jsonrpc/transport/server/stdio"
)

// Option is a function that configures the endpoint.
type Option func(e *Endpoint) error

// WithRegistry sets the provider registry the endpoint resolves descriptors
// through.
func WithRegistry(registry *provider.Registry) Option {
	return func(e *Endpoint) error {
		e.registry = registry
		return nil
	}
}

// WithEndpointAddress sets the default HTTP listen address.
func WithEndpointAddress(addr string) Option {
	return func(e *Endpoint) error {
		e.addr = addr
		return nil
	}
}

// WithSSEURI sets the SSE handler base URI.
func WithSSEURI(uri string) Option {
	return func(e *Endpoint) error {
		e.sseURI = uri
		return nil
	}
}

// WithSSEMessageURI sets the SSE message URI.
func WithSSEMessageURI(uri string) Option {
	return func(e *Endpoint) error {
		e.sseMessageURI = uri
		return nil
	}
}

// WithStreamableURI sets the streamable HTTP handler URI.
func WithStreamableURI(uri string) Option {
	return func(e *Endpoint) error {
		e.streamableURI = uri
		return nil
	}
}

// WithCORS adds a CORS handler to the HTTP transport.
func WithCORS(cors *Cors) Option {
	return func(e *Endpoint) error {
		handler := &corsHandler{Cors: cors}
		e.corsHandler = handler.Middleware
		return nil
	}
}

// WithStdioOptions passes options through to the stdio server.
func WithStdioOptions(options ...stdio.Option) Option {
	return func(e *Endpoint) error {
		e.stdioServerOption = options
		return nil
	}
}
