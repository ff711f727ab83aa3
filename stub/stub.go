// Package stub implements the caller-side of the bridge: it issues named
// requests over an asynchronous message channel and surfaces the extension
// point events the remote provider pushes back.
package stub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RileyEv/databridge/schema"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

var errUninitialized = fmt.Errorf("stub is not initialized")

// Stub is the caller-side mirror of the bridge endpoint.
type Stub struct {
	transport   transport.Transport
	initialized bool
}

func (s *Stub) isInitialized() bool {
	return s.initialized
}

// Initialize builds the remote provider from descriptor. The channel
// protocol expects a single initialize per channel.
func (s *Stub) Initialize(ctx context.Context, descriptor *schema.Descriptor) (*schema.Metadata, error) {
	params := &schema.InitializeRequestParams{ChildDescriptor: *descriptor}
	req, err := jsonrpc.NewRequest(schema.MethodInitialize, params)
	if err != nil {
		return nil, jsonrpc.NewInvalidRequest(err.Error(), nil)
	}
	response, err := s.transport.Send(ctx, req)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), req.Params)
	}
	if response.Error != nil {
		return nil, response.Error
	}
	var result schema.Metadata
	if err = json.Unmarshal(response.Result, &result); err != nil {
		return nil, jsonrpc.NewInternalError(fmt.Sprintf("failed to unmarshal metadata: %v", err), nil)
	}
	s.initialized = true
	return &result, nil
}

// GetMessages requests raw records for the topic set within [start, end].
// The range is passed through verbatim; bounds semantics belong to the
// remote provider.
func (s *Stub) GetMessages(ctx context.Context, start, end int64, topics []string) (*schema.GetMessagesResult, error) {
	params := &schema.GetMessagesRequestParams{Start: start, End: end, Topics: topics}
	return send[schema.GetMessagesRequestParams, schema.GetMessagesResult](ctx, s, schema.MethodGetMessages, params)
}

// Close closes the remote provider. No further requests should be issued on
// this channel afterwards.
func (s *Stub) Close(ctx context.Context) error {
	_, err := send[schema.CloseRequestParams, schema.CloseResult](ctx, s, schema.MethodClose, &schema.CloseRequestParams{})
	s.initialized = false
	return err
}

// New creates a stub over the given channel transport.
func New(aTransport transport.Transport) *Stub {
	return &Stub{transport: aTransport}
}

func send[P any, R any](ctx context.Context, stub *Stub, method string, parameters *P) (*R, error) {
	if !stub.isInitialized() {
		return nil, jsonrpc.NewInternalError(errUninitialized.Error(), nil)
	}
	req, err := jsonrpc.NewRequest(method, parameters)
	if err != nil {
		return nil, jsonrpc.NewInvalidRequest(err.Error(), nil)
	}
	response, err := stub.transport.Send(ctx, req)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	if response.Error != nil {
		return nil, response.Error
	}
	var result R
	if err = json.Unmarshal(response.Result, &result); err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	return &result, nil
}

var _ Interface = (*Stub)(nil)
