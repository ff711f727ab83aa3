package endpoint

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RileyEv/databridge/provider"
	"github.com/RileyEv/databridge/schema"
	"github.com/viant/jsonrpc"
)

// Initialize builds the provider from the caller's descriptor, wires the
// extension point to the channel and resolves with the provider's metadata.
// The channel protocol guarantees a single initialize in practice; a second
// call silently replaces the first provider after closing it.
func (h *Handler) Initialize(ctx context.Context, request *jsonrpc.Request) (*schema.Metadata, *jsonrpc.Error) {
	params := &schema.InitializeRequestParams{}
	if err := json.Unmarshal(request.Params, params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse %v", err), request.Params)
	}

	h.mux.Lock()
	defer h.mux.Unlock()
	if h.closed {
		return nil, schema.NewNotInitialized(request.Method)
	}
	if h.provider != nil {
		_ = h.provider.Close(ctx)
		h.extension.Close()
		h.provider, h.extension = nil, nil
	}

	aProvider, err := h.registry.New(ctx, &params.ChildDescriptor)
	if err != nil {
		return nil, jsonrpc.NewInvalidParamsError(err.Error(), request.Params)
	}
	// extension point lifetime is bound to the channel, not to this request
	extension := provider.NewExtensionPoint(h.baseCtx, h.Transport)
	metadata, err := aProvider.Initialize(ctx, extension)
	if err != nil {
		extension.Close()
		return nil, schema.NewProviderFailure(err)
	}
	h.provider, h.extension = aProvider, extension
	return metadata, nil
}
