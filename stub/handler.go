package stub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RileyEv/databridge/schema"
	"github.com/viant/jsonrpc"
)

// Listener receives the payload of one extension point event. Delivery order
// follows emission order only as far as the transport preserves it.
type Listener func(ctx context.Context, data json.RawMessage)

// Handler is the transport handler for the caller side of the channel: it
// dispatches extensionPointCallback requests to registered listeners and
// acknowledges them with an empty reply. Events arrive as requests rather
// than notifications so their payload survives the wire codec. Any other
// bridge-initiated request is answered with method-not-found.
type Handler struct {
	listeners map[schema.CallbackKind][]Listener
}

// Serve dispatches extension point events; the protocol defines no other
// bridge-initiated request.
func (h *Handler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	response.Id = request.Id
	response.Jsonrpc = request.Jsonrpc
	switch request.Method {
	case schema.MethodExtensionPointCallback:
		callback := &schema.ExtensionPointCallback{}
		if err := json.Unmarshal(request.Params, callback); err != nil {
			response.Error = jsonrpc.NewInvalidParamsError(err.Error(), request.Params)
			return
		}
		for _, listener := range h.listeners[callback.Type] {
			listener(ctx, callback.Data)
		}
		response.Result = json.RawMessage("{}")
	default:
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method %s not found", request.Method), nil)
	}
}

// OnNotification is a no-op; the bridge defines no notifications toward the
// caller.
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
}

// NewHandler creates a caller-side transport handler with the supplied
// listeners.
func NewHandler(options ...HandlerOption) *Handler {
	ret := &Handler{listeners: make(map[schema.CallbackKind][]Listener)}
	for _, option := range options {
		option(ret)
	}
	return ret
}
