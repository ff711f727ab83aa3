package schema

import "encoding/json"

// Descriptor is an opaque, serializable specification of which provider
// implementation to instantiate and its nested children. The bridge resolves
// Kind through a registry supplied by the hosting environment and never
// inspects Source.
type Descriptor struct {
	Kind     string          `yaml:"kind" json:"kind"`
	Source   json.RawMessage `yaml:"source,omitempty" json:"source,omitempty"`
	Children []Descriptor    `yaml:"children,omitempty" json:"children,omitempty"`
}

// Topic describes a single named stream of records.
type Topic struct {
	Name       string `yaml:"name" json:"name"`
	Encoding   string `yaml:"encoding,omitempty" json:"encoding,omitempty"`
	SchemaName string `yaml:"schemaName,omitempty" json:"schemaName,omitempty"`
}

// Metadata is what a provider resolves its initialize call with. Start and
// End are nanosecond timestamps with inclusive bounds.
type Metadata struct {
	Start         int64   `json:"start"`
	End           int64   `json:"end"`
	Topics        []Topic `json:"topics,omitempty"`
	TotalMessages *int64  `json:"totalMessages,omitempty"`
}

// RawRecord is a byte-exact, unparsed message payload plus the topic and
// timestamp that identify it. Data crosses the channel untouched.
type RawRecord struct {
	Topic     string `json:"topic"`
	Timestamp int64  `json:"timestamp"`
	Data      []byte `json:"data"`
}

// InitializeRequestParams carries the provider descriptor, passed once and
// never mutated afterwards.
type InitializeRequestParams struct {
	ChildDescriptor Descriptor `json:"childDescriptor"`
}

// GetMessagesRequestParams requests raw records for the topic set within
// [Start, End]. Boundary tie-breaks are provider-defined; the bridge passes
// the range through unmodified.
type GetMessagesRequestParams struct {
	Start  int64    `json:"start"`
	End    int64    `json:"end"`
	Topics []string `json:"topics"`
}

// GetMessagesResult replies with raw records plus transfer hints: for each
// distinct underlying buffer, the index of the first record that owns it.
type GetMessagesResult struct {
	Messages      []RawRecord `json:"messages"`
	TransferHints []int       `json:"transferHints,omitempty"`
}

type CloseRequestParams struct{}

type CloseResult struct{}

// CallbackKind tags an extension point event pushed by the provider outside
// the request/reply cycle.
type CallbackKind string

const (
	ProgressCallback       CallbackKind = "progressCallback"
	ReportMetadataCallback CallbackKind = "reportMetadataCallback"
	NotifyPlayerManager    CallbackKind = "notifyPlayerManager"
)

// ExtensionPointCallback is the notification payload for provider-emitted
// events. Data is whatever the provider supplied, marshaled verbatim.
type ExtensionPointCallback struct {
	Type CallbackKind    `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Progress is the conventional payload of a progressCallback event.
type Progress struct {
	FullyLoadedFractionRanges []Range `json:"fullyLoadedFractionRanges,omitempty"`
}

// Range is a fraction interval within [0, 1].
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
