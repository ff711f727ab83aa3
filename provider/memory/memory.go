// Package memory implements an in-memory record provider. It backs tests
// and the host demo; records are handed to it up front and served with
// inclusive [start, end] bounds, ties resolved by insertion order.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/RileyEv/databridge/provider"
	"github.com/RileyEv/databridge/schema"
)

// Kind is the descriptor kind this package registers.
const Kind = "memory"

// Source is the descriptor source payload for the memory kind.
type Source struct {
	Topics  []schema.Topic     `json:"topics,omitempty"`
	Records []schema.RawRecord `json:"records"`
}

// Provider serves records from memory.
type Provider struct {
	topics  []schema.Topic
	records []schema.RawRecord
	ext     *provider.ExtensionPoint
	closed  bool
}

// Initialize sorts records by timestamp and reports totals through the
// extension point before resolving.
func (p *Provider) Initialize(ctx context.Context, extensionPoint *provider.ExtensionPoint) (*schema.Metadata, error) {
	p.ext = extensionPoint
	sort.SliceStable(p.records, func(i, j int) bool {
		return p.records[i].Timestamp < p.records[j].Timestamp
	})
	total := int64(len(p.records))
	metadata := &schema.Metadata{Topics: p.topics, TotalMessages: &total}
	if len(p.records) > 0 {
		metadata.Start = p.records[0].Timestamp
		metadata.End = p.records[len(p.records)-1].Timestamp
	}
	if err := p.ext.ReportMetadata(map[string]interface{}{"totalMessages": total}); err != nil {
		return nil, err
	}
	return metadata, nil
}

// GetMessages returns records within [start, end] for the requested topics.
func (p *Provider) GetMessages(ctx context.Context, start, end int64, topics []string) (*provider.MessageBatch, error) {
	if p.closed {
		return nil, fmt.Errorf("provider closed")
	}
	wanted := make(map[string]bool, len(topics))
	for _, topic := range topics {
		wanted[topic] = true
	}
	batch := &provider.MessageBatch{}
	for _, record := range p.records {
		if record.Timestamp < start || record.Timestamp > end {
			continue
		}
		if len(wanted) > 0 && !wanted[record.Topic] {
			continue
		}
		batch.Raw = append(batch.Raw, record)
	}
	if p.ext != nil {
		_ = p.ext.Progress(&schema.Progress{
			FullyLoadedFractionRanges: []schema.Range{{Start: 0, End: 1}},
		})
	}
	return batch, nil
}

// Close marks the provider closed; further GetMessages calls fail. The
// extension point is owned by the endpoint, which stops it once Close
// resolves.
func (p *Provider) Close(ctx context.Context) error {
	p.closed = true
	return nil
}

// New creates a memory provider over the supplied records.
func New(topics []schema.Topic, records []schema.RawRecord) *Provider {
	return &Provider{topics: topics, records: append([]schema.RawRecord(nil), records...)}
}

// Register binds the memory kind; the descriptor source is a Source payload.
func Register(registry *provider.Registry) {
	registry.Register(Kind, func(ctx context.Context, descriptor *schema.Descriptor) (provider.Provider, error) {
		source := &Source{}
		if len(descriptor.Source) > 0 {
			if err := json.Unmarshal(descriptor.Source, source); err != nil {
				return nil, fmt.Errorf("invalid memory descriptor source: %w", err)
			}
		}
		return New(source.Topics, source.Records), nil
	})
}
