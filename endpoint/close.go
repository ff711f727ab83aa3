package endpoint

import (
	"context"

	"github.com/RileyEv/databridge/schema"
	"github.com/viant/jsonrpc"
)

// Close forwards to the provider and stops the extension point, so no
// callback events are forwarded once the reply is sent. Further requests on
// this channel fail; the caller is not expected to issue any.
func (h *Handler) Close(ctx context.Context, request *jsonrpc.Request) (*schema.CloseResult, *jsonrpc.Error) {
	h.mux.Lock()
	defer h.mux.Unlock()
	if h.closed {
		return &schema.CloseResult{}, nil
	}
	h.closed = true

	aProvider, extension := h.provider, h.extension
	h.provider, h.extension = nil, nil
	if aProvider == nil {
		return &schema.CloseResult{}, nil
	}
	err := aProvider.Close(ctx)
	extension.Close()
	if err != nil {
		return nil, schema.NewProviderFailure(err)
	}
	return &schema.CloseResult{}, nil
}
