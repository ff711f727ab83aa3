package endpoint

import (
	"context"
	"encoding/json"

	"github.com/RileyEv/databridge/schema"
	"github.com/RileyEv/databridge/stub"
	"github.com/viant/jsonrpc"
)

// callbackTransport is the in-process channel backing an Adapter: callback
// requests pushed by the extension point dispatch straight to onCallback.
type callbackTransport struct {
	onCallback func(ctx context.Context, callback *schema.ExtensionPointCallback)
}

func (t *callbackTransport) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	if t.onCallback == nil || request.Method != schema.MethodExtensionPointCallback {
		return &jsonrpc.Response{}, nil
	}
	callback := &schema.ExtensionPointCallback{}
	if err := json.Unmarshal(request.Params, callback); err != nil {
		return nil, err
	}
	t.onCallback(ctx, callback)
	return &jsonrpc.Response{}, nil
}

func (t *callbackTransport) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	return nil
}

// Adapter drives a channel handler in-process, presenting the caller-side
// interface without any transport. Useful for tests and for embedding the
// provider tree in the same process as the caller.
type Adapter struct {
	handler *Handler
}

// AsStub creates an in-process caller for this endpoint. onCallback, when
// non-nil, receives the extension point events the remote caller would.
func (e *Endpoint) AsStub(ctx context.Context, onCallback func(ctx context.Context, callback *schema.ExtensionPointCallback)) *Adapter {
	return &Adapter{handler: e.newHandler(ctx, &callbackTransport{onCallback: onCallback})}
}

// Initialize builds the hosted provider from descriptor.
func (a *Adapter) Initialize(ctx context.Context, descriptor *schema.Descriptor) (*schema.Metadata, error) {
	params := &schema.InitializeRequestParams{ChildDescriptor: *descriptor}
	result := &schema.Metadata{}
	if err := a.roundTrip(ctx, schema.MethodInitialize, params, result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetMessages requests raw records for the topic set within [start, end].
func (a *Adapter) GetMessages(ctx context.Context, start, end int64, topics []string) (*schema.GetMessagesResult, error) {
	params := &schema.GetMessagesRequestParams{Start: start, End: end, Topics: topics}
	result := &schema.GetMessagesResult{}
	if err := a.roundTrip(ctx, schema.MethodGetMessages, params, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Close closes the hosted provider.
func (a *Adapter) Close(ctx context.Context) error {
	return a.roundTrip(ctx, schema.MethodClose, &schema.CloseRequestParams{}, &schema.CloseResult{})
}

func (a *Adapter) roundTrip(ctx context.Context, method string, params, result interface{}) error {
	req, err := jsonrpc.NewRequest(method, params)
	if err != nil {
		return err
	}
	response := &jsonrpc.Response{}
	a.handler.Serve(ctx, req, response)
	if response.Error != nil {
		return response.Error
	}
	return json.Unmarshal(response.Result, result)
}

// Ensure Adapter implements the stub interface
var _ stub.Interface = (*Adapter)(nil)
