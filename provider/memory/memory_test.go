package memory

import (
	"context"
	"testing"

	"github.com/RileyEv/databridge/provider"
	"github.com/RileyEv/databridge/schema"
	"github.com/stretchr/testify/assert"
	"github.com/viant/jsonrpc"
)

type nopTransport struct{}

func (nopTransport) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	return &jsonrpc.Response{}, nil
}

func (nopTransport) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	return nil
}

func newInitialized(t *testing.T, records []schema.RawRecord) *Provider {
	t.Helper()
	ctx := context.Background()
	aProvider := New(nil, records)
	extension := provider.NewExtensionPoint(ctx, nopTransport{})
	t.Cleanup(extension.Close)
	metadata, err := aProvider.Initialize(ctx, extension)
	assert.NoError(t, err)
	assert.NotNil(t, metadata)
	return aProvider
}

func TestInitializeMetadata(t *testing.T) {
	records := []schema.RawRecord{
		{Topic: "topicB", Timestamp: 30, Data: []byte{0x03}},
		{Topic: "topicA", Timestamp: 10, Data: []byte{0x01}},
		{Topic: "topicA", Timestamp: 20, Data: []byte{0x02}},
	}
	ctx := context.Background()
	aProvider := New([]schema.Topic{{Name: "topicA"}, {Name: "topicB"}}, records)
	extension := provider.NewExtensionPoint(ctx, nopTransport{})
	defer extension.Close()

	metadata, err := aProvider.Initialize(ctx, extension)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), metadata.Start)
	assert.Equal(t, int64(30), metadata.End)
	assert.Equal(t, int64(3), *metadata.TotalMessages)
	assert.Equal(t, 2, len(metadata.Topics))
}

func TestGetMessagesInclusiveRange(t *testing.T) {
	aProvider := newInitialized(t, []schema.RawRecord{
		{Topic: "topicA", Timestamp: 10, Data: []byte{0x01}},
		{Topic: "topicA", Timestamp: 20, Data: []byte{0x02}},
		{Topic: "topicA", Timestamp: 30, Data: []byte{0x03}},
	})

	batch, err := aProvider.GetMessages(context.Background(), 10, 20, nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(batch.Raw))
	assert.Empty(t, batch.Parsed)
}

func TestGetMessagesTopicFilter(t *testing.T) {
	aProvider := newInitialized(t, []schema.RawRecord{
		{Topic: "topicA", Timestamp: 10, Data: []byte{0x01}},
		{Topic: "topicB", Timestamp: 10, Data: []byte{0x02}},
	})

	batch, err := aProvider.GetMessages(context.Background(), 0, 100, []string{"topicB"})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(batch.Raw))
	assert.Equal(t, "topicB", batch.Raw[0].Topic)
}

func TestGetMessagesAfterClose(t *testing.T) {
	aProvider := newInitialized(t, nil)
	assert.NoError(t, aProvider.Close(context.Background()))
	_, err := aProvider.GetMessages(context.Background(), 0, 100, nil)
	assert.Error(t, err)
}
