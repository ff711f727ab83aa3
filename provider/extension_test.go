package provider

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RileyEv/databridge/schema"
	"github.com/stretchr/testify/assert"
	"github.com/viant/jsonrpc"
)

// channelTransport acknowledges callback requests and hands the decoded
// events to the test.
type channelTransport struct {
	events chan *schema.ExtensionPointCallback
	sends  atomic.Int64
}

func (t *channelTransport) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	t.sends.Add(1)
	event := &schema.ExtensionPointCallback{}
	if err := json.Unmarshal(request.Params, event); err != nil {
		return nil, err
	}
	t.events <- event
	return &jsonrpc.Response{}, nil
}

func (t *channelTransport) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	return nil
}

func newChannelTransport() *channelTransport {
	return &channelTransport{events: make(chan *schema.ExtensionPointCallback, 8)}
}

func waitEvent(t *testing.T, events chan *schema.ExtensionPointCallback) *schema.ExtensionPointCallback {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for callback")
		return nil
	}
}

func TestExtensionPointDispatch(t *testing.T) {
	aTransport := newChannelTransport()
	extension := NewExtensionPoint(context.Background(), aTransport)
	defer extension.Close()

	assert.NoError(t, extension.Progress(&schema.Progress{
		FullyLoadedFractionRanges: []schema.Range{{Start: 0, End: 0.5}},
	}))
	assert.NoError(t, extension.ReportMetadata(map[string]interface{}{"totalMessages": 12}))
	assert.NoError(t, extension.NotifyPlayerManager(map[string]interface{}{"reason": "reconnect"}))

	// a single drain goroutine preserves emission order
	event := waitEvent(t, aTransport.events)
	assert.Equal(t, schema.ProgressCallback, event.Type)
	progress := &schema.Progress{}
	assert.NoError(t, json.Unmarshal(event.Data, progress))
	assert.Equal(t, 0.5, progress.FullyLoadedFractionRanges[0].End)

	event = waitEvent(t, aTransport.events)
	assert.Equal(t, schema.ReportMetadataCallback, event.Type)

	event = waitEvent(t, aTransport.events)
	assert.Equal(t, schema.NotifyPlayerManager, event.Type)
}

func TestExtensionPointEventsCarryPayload(t *testing.T) {
	aTransport := newChannelTransport()
	extension := NewExtensionPoint(context.Background(), aTransport)
	defer extension.Close()

	assert.NoError(t, extension.ReportMetadata(map[string]interface{}{"totalMessages": 10}))
	event := waitEvent(t, aTransport.events)
	assert.Equal(t, schema.ReportMetadataCallback, event.Type)
	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(event.Data, &payload))
	assert.Equal(t, float64(10), payload["totalMessages"])
}

func TestExtensionPointClosedDrops(t *testing.T) {
	aTransport := newChannelTransport()
	extension := NewExtensionPoint(context.Background(), aTransport)
	extension.Close()

	assert.NoError(t, extension.Progress(&schema.Progress{}))
	select {
	case event := <-aTransport.events:
		t.Fatalf("unexpected callback after close: %v", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

// blockingTransport holds every send until its context is cancelled.
type blockingTransport struct {
	entered chan struct{}
	sends   atomic.Int64
}

func (t *blockingTransport) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	t.sends.Add(1)
	select {
	case t.entered <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (t *blockingTransport) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	return nil
}

func TestExtensionPointCloseAwaitsDrain(t *testing.T) {
	aTransport := &blockingTransport{entered: make(chan struct{}, 1)}
	extension := NewExtensionPoint(context.Background(), aTransport)

	assert.NoError(t, extension.Progress(&schema.Progress{}))
	select {
	case <-aTransport.entered:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the drain to pick the event up")
	}

	// Close cancels the in-flight send and returns only once the drain
	// goroutine has exited, so nothing is forwarded afterwards
	done := make(chan struct{})
	go func() {
		extension.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("close did not resolve")
	}

	before := aTransport.sends.Load()
	assert.NoError(t, extension.Progress(&schema.Progress{}))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, aTransport.sends.Load())
}

func TestExtensionPointCloseIsIdempotent(t *testing.T) {
	extension := NewExtensionPoint(context.Background(), newChannelTransport())
	extension.Close()
	extension.Close()
}

func TestExtensionPointUnmarshalableEvent(t *testing.T) {
	extension := NewExtensionPoint(context.Background(), newChannelTransport())
	defer extension.Close()

	assert.Error(t, extension.Progress(func() {}))
}
