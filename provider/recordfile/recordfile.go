// Package recordfile implements a provider backed by a record log stored at
// any viant/afs URL (file, mem, s3, ...). The log is scanned once at
// initialize time; payload bytes are served exactly as stored.
package recordfile

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/RileyEv/databridge/provider"
	"github.com/RileyEv/databridge/schema"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
)

// Kind is the descriptor kind this package registers.
const Kind = "recordfile"

// Source is the descriptor source payload for the recordfile kind.
type Source struct {
	URL string `json:"url"`
}

// Provider serves records from a record log.
type Provider struct {
	url     string
	fs      afs.Service
	options []storage.Option
	ext     *provider.ExtensionPoint
	records []schema.RawRecord
	closed  bool
}

// progressEvery controls how often the initialize scan reports progress.
const progressEvery = 1024

// Initialize downloads and scans the log, reporting scan progress and final
// totals through the extension point.
func (p *Provider) Initialize(ctx context.Context, extensionPoint *provider.ExtensionPoint) (*schema.Metadata, error) {
	p.ext = extensionPoint
	data, err := p.fs.DownloadWithURL(ctx, p.url, p.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to download record log %v: %w", p.url, err)
	}
	records, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("corrupt record log %v: %w", p.url, err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp < records[j].Timestamp
	})
	p.records = records

	topics := map[string]bool{}
	metadata := &schema.Metadata{}
	for i := range records {
		if !topics[records[i].Topic] {
			topics[records[i].Topic] = true
			metadata.Topics = append(metadata.Topics, schema.Topic{Name: records[i].Topic})
		}
		if i%progressEvery == 0 {
			_ = p.ext.Progress(&schema.Progress{
				FullyLoadedFractionRanges: []schema.Range{{Start: 0, End: float64(i) / float64(len(records))}},
			})
		}
	}
	sort.Slice(metadata.Topics, func(i, j int) bool {
		return metadata.Topics[i].Name < metadata.Topics[j].Name
	})
	total := int64(len(records))
	metadata.TotalMessages = &total
	if len(records) > 0 {
		metadata.Start = records[0].Timestamp
		metadata.End = records[len(records)-1].Timestamp
	}
	if err := p.ext.ReportMetadata(metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}

// GetMessages returns records within [start, end] for the requested topics.
// Bounds are inclusive on both ends; records sharing a boundary timestamp
// are all included, in log order.
func (p *Provider) GetMessages(ctx context.Context, start, end int64, topics []string) (*provider.MessageBatch, error) {
	if p.closed {
		return nil, fmt.Errorf("provider closed")
	}
	if p.records == nil {
		return nil, fmt.Errorf("provider not initialized")
	}
	wanted := make(map[string]bool, len(topics))
	for _, topic := range topics {
		wanted[topic] = true
	}
	first := sort.Search(len(p.records), func(i int) bool {
		return p.records[i].Timestamp >= start
	})
	batch := &provider.MessageBatch{}
	for i := first; i < len(p.records) && p.records[i].Timestamp <= end; i++ {
		if len(wanted) > 0 && !wanted[p.records[i].Topic] {
			continue
		}
		batch.Raw = append(batch.Raw, p.records[i])
	}
	return batch, nil
}

// Close drops the scanned records; further GetMessages calls fail.
func (p *Provider) Close(ctx context.Context) error {
	p.closed = true
	p.records = nil
	return nil
}

// New creates a recordfile provider for the given URL.
func New(URL string, options ...storage.Option) *Provider {
	return &Provider{url: URL, fs: afs.New(), options: options}
}

// Register binds the recordfile kind; the descriptor source is a Source
// payload naming the log URL.
func Register(registry *provider.Registry) {
	registry.Register(Kind, func(ctx context.Context, descriptor *schema.Descriptor) (provider.Provider, error) {
		source := &Source{}
		if err := json.Unmarshal(descriptor.Source, source); err != nil {
			return nil, fmt.Errorf("invalid recordfile descriptor source: %w", err)
		}
		if source.URL == "" {
			return nil, fmt.Errorf("recordfile descriptor requires a url")
		}
		return New(source.URL), nil
	})
}
