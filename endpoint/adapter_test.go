package endpoint

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/RileyEv/databridge/provider"
	"github.com/RileyEv/databridge/provider/memory"
	"github.com/RileyEv/databridge/schema"
	"github.com/stretchr/testify/assert"
)

func memoryDescriptor(t *testing.T, records []schema.RawRecord) *schema.Descriptor {
	t.Helper()
	source, err := json.Marshal(&memory.Source{Records: records})
	assert.NoError(t, err)
	return &schema.Descriptor{Kind: memory.Kind, Source: source}
}

func TestAdapterRoundTrip(t *testing.T) {
	registry := provider.NewRegistry()
	memory.Register(registry)
	e, err := New(WithRegistry(registry))
	assert.NoError(t, err)

	ctx := context.Background()
	callbacks := make(chan *schema.ExtensionPointCallback, 8)
	adapter := e.AsStub(ctx, func(ctx context.Context, callback *schema.ExtensionPointCallback) {
		callbacks <- callback
	})

	metadata, err := adapter.Initialize(ctx, memoryDescriptor(t, []schema.RawRecord{
		{Topic: "topicA", Timestamp: 10, Data: []byte{0x01}},
		{Topic: "topicA", Timestamp: 20, Data: []byte{0x02}},
		{Topic: "topicB", Timestamp: 30, Data: []byte{0x03}},
	}))
	assert.NoError(t, err)
	assert.Equal(t, int64(10), metadata.Start)
	assert.Equal(t, int64(30), metadata.End)

	// the memory provider reports totals during initialize; the event is
	// queued before initialize resolves and delivered asynchronously
	select {
	case callback := <-callbacks:
		assert.Equal(t, schema.ReportMetadataCallback, callback.Type)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for metadata callback")
	}

	result, err := adapter.GetMessages(ctx, 10, 20, []string{"topicA"})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(result.Messages))
	assert.Equal(t, []byte{0x01}, result.Messages[0].Data)

	assert.NoError(t, adapter.Close(ctx))
	_, err = adapter.GetMessages(ctx, 0, 100, nil)
	assert.Error(t, err)
}

func TestAdapterUnknownKind(t *testing.T) {
	registry := provider.NewRegistry()
	e, err := New(WithRegistry(registry))
	assert.NoError(t, err)

	ctx := context.Background()
	adapter := e.AsStub(ctx, nil)
	_, err = adapter.Initialize(ctx, &schema.Descriptor{Kind: "unknown"})
	assert.Error(t, err)
}
