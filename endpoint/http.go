package endpoint

import (
	"context"
	"net/http"

	"github.com/viant/jsonrpc/transport/server/http/sse"
	"github.com/viant/jsonrpc/transport/server/http/streamable"
)

type httpServer struct {
	sseHandler        *sse.Handler
	streamingHandler  *streamable.Handler
	useStreamableHTTP bool
	addr              string
	sseURI            string
	sseMessageURI     string
	streamableURI     string
	corsHandler       Middleware
}

// UseStreamableHTTP sets whether callers are pointed at the streamable HTTP
// handler instead of SSE.
func (e *Endpoint) UseStreamableHTTP(flag bool) {
	e.useStreamableHTTP = flag
}

// HTTP creates an HTTP server exposing the endpoint to network-attached
// callers over SSE and streamable HTTP.
func (e *Endpoint) HTTP(_ context.Context, addr string) *http.Server {
	if addr == "" {
		addr = e.addr
	}
	if addr == "" {
		// default binds only to localhost
		addr = "127.0.0.1:5000"
	}
	if e.sseURI == "" {
		e.sseURI = "/sse"
	}
	if e.sseMessageURI == "" {
		e.sseMessageURI = "/message"
	}
	if e.streamableURI == "" {
		e.streamableURI = "/bridge"
	}

	e.sseHandler = sse.New(e.NewHandler,
		sse.WithURI(e.sseURI),
		sse.WithMessageURI(e.sseMessageURI),
	)
	e.streamingHandler = streamable.New(e.NewHandler,
		streamable.WithURI(e.streamableURI),
	)

	var middlewareHandlers []Middleware
	if e.corsHandler != nil {
		middlewareHandlers = append(middlewareHandlers, e.corsHandler)
	}
	sseChain := ChainMiddlewareHandlers(e.sseHandler, middlewareHandlers...)
	streamChain := ChainMiddlewareHandlers(e.streamingHandler, middlewareHandlers...)

	mux := http.NewServeMux()
	mux.Handle(e.sseURI, sseChain)
	mux.Handle(e.sseMessageURI, sseChain)
	mux.Handle(e.streamableURI, streamChain)
	// root redirect points callers at the active transport base
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		target := e.sseURI
		if e.useStreamableHTTP {
			target = e.streamableURI
		}
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	})
	return &http.Server{
		Addr:    addr,
		Handler: mux,
	}
}
