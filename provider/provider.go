// Package provider defines the capability the bridge endpoint hosts: a
// source of time-ranged binary record batches, constructed from an opaque
// descriptor through a registry supplied by the hosting environment.
package provider

import (
	"context"

	"github.com/RileyEv/databridge/schema"
)

// Provider produces time-ranged binary message batches on demand. Exactly
// one instance is owned by a bridge endpoint handler for the lifetime of its
// channel; the bridge treats it as an opaque capability and never constructs
// concrete kinds itself.
type Provider interface {
	// Initialize prepares the provider and hands it the extension point it
	// may use to push events for its whole lifetime, independent of any
	// pending request.
	Initialize(ctx context.Context, extensionPoint *ExtensionPoint) (*schema.Metadata, error)

	// GetMessages returns records for the topic set within [start, end].
	// Bounds are inclusive; tie-breaks at the boundaries are provider-defined
	// and must be documented by the provider.
	GetMessages(ctx context.Context, start, end int64, topics []string) (*MessageBatch, error)

	// Close releases the provider. After Close resolves the provider emits no
	// further extension point events.
	Close(ctx context.Context) error
}

// MessageBatch is the result of a GetMessages call. Only Raw may cross the
// channel; a batch carrying Parsed records violates the byte-exact contract
// and fails the request it belongs to.
type MessageBatch struct {
	Raw    []schema.RawRecord
	Parsed []ParsedMessage
}

// ParsedMessage is a decoded record representation. It exists so providers
// that produce one can be detected and rejected at the boundary.
type ParsedMessage struct {
	Topic     string
	Timestamp int64
	Message   interface{}
}
