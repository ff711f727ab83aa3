package stub

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/RileyEv/databridge/schema"
	"github.com/stretchr/testify/assert"
	"github.com/viant/jsonrpc"
)

type fakeTransport struct {
	requests []*jsonrpc.Request
	results  map[string]interface{}
}

func (t *fakeTransport) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	t.requests = append(t.requests, request)
	result, ok := t.results[request.Method]
	if !ok {
		return &jsonrpc.Response{Error: jsonrpc.NewMethodNotFound(request.Method, nil)}, nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &jsonrpc.Response{Result: data}, nil
}

func (t *fakeTransport) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	return nil
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{results: map[string]interface{}{
		schema.MethodInitialize:  &schema.Metadata{Start: 0, End: 100},
		schema.MethodGetMessages: &schema.GetMessagesResult{},
		schema.MethodClose:       &schema.CloseResult{},
	}}
}

func TestStubRequiresInitialize(t *testing.T) {
	aStub := New(newFakeTransport())
	_, err := aStub.GetMessages(context.Background(), 0, 100, nil)
	assert.Error(t, err)
}

func TestStubLifecycle(t *testing.T) {
	aTransport := newFakeTransport()
	aStub := New(aTransport)
	ctx := context.Background()

	metadata, err := aStub.Initialize(ctx, &schema.Descriptor{Kind: "memory"})
	assert.NoError(t, err)
	assert.Equal(t, int64(100), metadata.End)

	_, err = aStub.GetMessages(ctx, 10, 20, []string{"topicA"})
	assert.NoError(t, err)

	assert.NoError(t, aStub.Close(ctx))
	// closed stub refuses further traffic
	_, err = aStub.GetMessages(ctx, 10, 20, nil)
	assert.Error(t, err)

	methods := make([]string, 0, len(aTransport.requests))
	for _, request := range aTransport.requests {
		methods = append(methods, request.Method)
	}
	assert.Equal(t, []string{schema.MethodInitialize, schema.MethodGetMessages, schema.MethodClose}, methods)
}

func TestStubSurfacesRemoteError(t *testing.T) {
	aTransport := newFakeTransport()
	aTransport.results[schema.MethodGetMessages] = nil
	delete(aTransport.results, schema.MethodGetMessages)
	aStub := New(aTransport)
	ctx := context.Background()

	_, err := aStub.Initialize(ctx, &schema.Descriptor{Kind: "memory"})
	assert.NoError(t, err)
	_, err = aStub.GetMessages(ctx, 0, 100, nil)
	assert.Error(t, err)
}
