package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/RileyEv/databridge/provider"
	"github.com/RileyEv/databridge/schema"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

// Handler serves one channel. It exclusively owns the single provider
// instance and its extension point for the channel's lifetime; callback
// events and request replies share the transport but write disjoint state.
type Handler struct {
	transport.Transport
	*Endpoint

	baseCtx context.Context

	mux       sync.Mutex
	provider  provider.Provider
	extension *provider.ExtensionPoint
	closed    bool
}

// Serve handles incoming requests against the owned provider.
func (h *Handler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}
	switch request.Method {
	case schema.MethodInitialize:
		result, err := h.Initialize(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodGetMessages:
		result, err := h.GetMessages(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodClose:
		result, err := h.Close(ctx, request)
		h.setResponse(response, result, err)
	default:
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
	}
}

// OnNotification handles incoming notifications; close needs no reply, so it
// is accepted here as well.
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	if notification.Method == schema.MethodClose {
		_, _ = h.Close(ctx, &jsonrpc.Request{Method: schema.MethodClose})
	}
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	var err error
	response.Result, err = json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), []byte{})
	}
}
