package endpoint

import (
	"context"
	"errors"

	"github.com/RileyEv/databridge/provider"
	"github.com/viant/jsonrpc/transport"
)

// Endpoint hosts provider trees behind an asynchronous message channel. It
// carries the registry and transport settings shared by all channels; each
// channel gets its own Handler owning exactly one provider instance.
type Endpoint struct {
	registry *provider.Registry

	stdioServer
	httpServer
}

// NewHandler creates a per-channel handler; its signature matches
// transport.NewHandler so it plugs directly into the jsonrpc servers.
func (e *Endpoint) NewHandler(ctx context.Context, aTransport transport.Transport) transport.Handler {
	return e.newHandler(ctx, aTransport)
}

func (e *Endpoint) newHandler(ctx context.Context, aTransport transport.Transport) *Handler {
	return &Handler{
		Endpoint:  e,
		Transport: aTransport,
		baseCtx:   ctx,
	}
}

// New creates an Endpoint instance.
func New(options ...Option) (*Endpoint, error) {
	e := &Endpoint{}
	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}
	if e.registry == nil {
		return nil, errors.New("no provider registry specified")
	}
	return e, nil
}
