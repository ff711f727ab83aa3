package stub

import (
	"context"

	"github.com/RileyEv/databridge/schema"
)

// Interface is the caller-side surface of the bridge.
type Interface interface {
	// Initialize builds the remote provider from descriptor and returns its
	// metadata. Called once per channel.
	Initialize(ctx context.Context, descriptor *schema.Descriptor) (*schema.Metadata, error)

	// GetMessages requests raw records for the topic set within [start, end].
	// Pacing of successive calls is the caller's responsibility.
	GetMessages(ctx context.Context, start, end int64, topics []string) (*schema.GetMessagesResult, error)

	// Close closes the remote provider; the channel is inert afterwards.
	Close(ctx context.Context) error
}
