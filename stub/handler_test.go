package stub

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/RileyEv/databridge/schema"
	"github.com/stretchr/testify/assert"
	"github.com/viant/jsonrpc"
)

func callbackRequest(t *testing.T, kind schema.CallbackKind, data interface{}) *jsonrpc.Request {
	t.Helper()
	payload, err := json.Marshal(data)
	assert.NoError(t, err)
	request, err := jsonrpc.NewRequest(schema.MethodExtensionPointCallback,
		&schema.ExtensionPointCallback{Type: kind, Data: payload})
	assert.NoError(t, err)
	return request
}

func TestHandlerDispatch(t *testing.T) {
	var gotProgress *schema.Progress
	var metadataCalls int
	handler := NewHandler(
		WithProgressListener(func(ctx context.Context, data json.RawMessage) {
			gotProgress = &schema.Progress{}
			assert.NoError(t, json.Unmarshal(data, gotProgress))
		}),
		WithMetadataListener(func(ctx context.Context, data json.RawMessage) {
			metadataCalls++
		}),
	)

	ctx := context.Background()
	response := &jsonrpc.Response{}
	handler.Serve(ctx, callbackRequest(t, schema.ProgressCallback, &schema.Progress{
		FullyLoadedFractionRanges: []schema.Range{{Start: 0, End: 0.25}},
	}), response)
	assert.Nil(t, response.Error)
	assert.NotNil(t, gotProgress)
	assert.Equal(t, 0.25, gotProgress.FullyLoadedFractionRanges[0].End)
	assert.Equal(t, 0, metadataCalls)

	response = &jsonrpc.Response{}
	handler.Serve(ctx, callbackRequest(t, schema.ReportMetadataCallback, map[string]interface{}{"totalMessages": 3}), response)
	assert.Nil(t, response.Error)
	assert.Equal(t, 1, metadataCalls)
}

func TestHandlerRejectsMalformedCallback(t *testing.T) {
	var calls int
	handler := NewHandler(
		WithMetadataListener(func(ctx context.Context, data json.RawMessage) {
			calls++
		}),
	)
	request := &jsonrpc.Request{
		Jsonrpc: jsonrpc.Version,
		Method:  schema.MethodExtensionPointCallback,
		Params:  json.RawMessage(`{"type":`),
	}
	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), request, response)
	// a bad payload is a failed reply, never a silent drop
	assert.NotNil(t, response.Error)
	assert.Equal(t, 0, calls)
}

func TestHandlerRejectsUnknownMethod(t *testing.T) {
	handler := NewHandler()
	request, err := jsonrpc.NewRequest("initialize", struct{}{})
	assert.NoError(t, err)
	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), request, response)
	assert.NotNil(t, response.Error)
}
