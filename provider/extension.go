package provider

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/RileyEv/databridge/schema"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

const extensionQueueSize = 64

// ExtensionPoint is the set of push-style callback slots a provider uses to
// report progress, metadata and upstream notifications outside the
// request/reply cycle. Events are queued and drained by a single goroutine,
// so a provider callback never re-enters the transport while a reply is
// being written. Events travel as requests whose reply is discarded: the
// notification codec does not carry params, so a notification would arrive
// empty on the caller side. The extension point outlives any single request
// and stops emitting once closed.
type ExtensionPoint struct {
	sender    transport.Transport
	sequencer transport.Sequencer
	seq       atomic.Uint64
	queue     chan *schema.ExtensionPointCallback
	stop      chan struct{}
	drained   chan struct{}
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Progress reports partial availability of the provider's time range.
func (e *ExtensionPoint) Progress(data interface{}) error {
	return e.emit(schema.ProgressCallback, data)
}

// ReportMetadata pushes updated provider metadata, e.g. message totals
// discovered after initialize resolved.
func (e *ExtensionPoint) ReportMetadata(data interface{}) error {
	return e.emit(schema.ReportMetadataCallback, data)
}

// NotifyPlayerManager forwards an upstream notification to whatever manages
// the caller-side player.
func (e *ExtensionPoint) NotifyPlayerManager(data interface{}) error {
	return e.emit(schema.NotifyPlayerManager, data)
}

func (e *ExtensionPoint) emit(kind schema.CallbackKind, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	event := &schema.ExtensionPointCallback{Type: kind, Data: payload}
	select {
	case <-e.stop:
		// closed extension point drops events rather than blocking the provider
		return nil
	case e.queue <- event:
		return nil
	}
}

// Close stops event emission and waits for the drain goroutine to finish, so
// no event is forwarded once Close returns. Events enqueued but not yet sent
// are dropped.
func (e *ExtensionPoint) Close() {
	e.closeOnce.Do(func() {
		close(e.stop)
		e.cancel()
		<-e.drained
	})
}

func (e *ExtensionPoint) nextRequestId() uint64 {
	if e.sequencer != nil {
		id := e.sequencer.NextRequestID()
		ret, _ := jsonrpc.AsRequestIntId(id)
		return uint64(ret)
	}
	return e.seq.Add(1)
}

func (e *ExtensionPoint) drain(ctx context.Context) {
	defer close(e.drained)
	for {
		select {
		case <-e.stop:
			return
		case <-ctx.Done():
			return
		case event := <-e.queue:
			select {
			case <-e.stop:
				// close won the race, the event is dropped
				return
			default:
			}
			request, err := jsonrpc.NewRequest(schema.MethodExtensionPointCallback, event)
			if err != nil {
				continue
			}
			request.Id = e.nextRequestId()
			// the caller acknowledges with an empty reply
			_, _ = e.sender.Send(ctx, request)
		}
	}
}

// NewExtensionPoint wires the three callback slots to the supplied transport
// and starts the drain goroutine. ctx bounds the drain goroutine's lifetime;
// Close stops it earlier.
func NewExtensionPoint(ctx context.Context, aTransport transport.Transport) *ExtensionPoint {
	sequencer, _ := aTransport.(transport.Sequencer)
	ctx, cancel := context.WithCancel(ctx)
	ret := &ExtensionPoint{
		sender:    aTransport,
		sequencer: sequencer,
		queue:     make(chan *schema.ExtensionPointCallback, extensionQueueSize),
		stop:      make(chan struct{}),
		drained:   make(chan struct{}),
		cancel:    cancel,
	}
	go ret.drain(ctx)
	return ret
}
