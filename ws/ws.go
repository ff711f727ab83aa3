// Package ws provides a WebSocket channel transport: a client satisfying the
// jsonrpc transport contract and an http.Handler serving endpoint channels
// over upgraded connections. One reader loop and one writer pump run per
// connection; sends are fire-and-forget onto the writer queue.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/RileyEv/databridge/internal/collection"
	"github.com/RileyEv/databridge/internal/conv"
	"github.com/gorilla/websocket"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

const writeQueueSize = 128

// frame is the wire envelope; exactly one of the request, response or
// notification shapes is populated.
type frame struct {
	Jsonrpc string          `json:"jsonrpc"`
	Id      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpc.Error  `json:"error,omitempty"`
}

// connection pumps JSON-RPC frames over one websocket in both directions.
// It satisfies transport.Transport for whichever side owns it.
type connection struct {
	id      string
	conn    *websocket.Conn
	handler transport.Handler

	pending *collection.SyncMap[int, chan *jsonrpc.Response]
	seq     atomic.Uint64

	writeQueue chan []byte
	closeOnce  sync.Once
	done       chan struct{}
}

// Send issues a request and waits for its paired response.
func (c *connection) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	if request.Jsonrpc == "" {
		request.Jsonrpc = jsonrpc.Version
	}
	if request.Id == nil {
		request.Id = c.seq.Add(1)
	}
	id := conv.AsInt(request.Id)
	response := make(chan *jsonrpc.Response, 1)
	c.pending.Put(id, response)
	defer c.pending.Delete(id)

	data, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	if err = c.enqueue(data); err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return nil, fmt.Errorf("connection %v closed", c.id)
	case ret := <-response:
		return ret, nil
	}
}

// Notify sends a fire-and-forget notification.
func (c *connection) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return c.enqueue(data)
}

func (c *connection) enqueue(data []byte) error {
	select {
	case <-c.done:
		return fmt.Errorf("connection %v closed", c.id)
	case c.writeQueue <- data:
		return nil
	}
}

func (c *connection) writePump() {
	for {
		select {
		case <-c.done:
			return
		case data := <-c.writeQueue:
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.close()
				return
			}
		}
	}
}

func (c *connection) readLoop(ctx context.Context) {
	defer c.close()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.dispatch(ctx, data)
	}
}

func (c *connection) dispatch(ctx context.Context, data []byte) {
	aFrame := &frame{}
	if err := json.Unmarshal(data, aFrame); err != nil {
		return
	}
	switch {
	case aFrame.Method != "" && aFrame.Id != nil:
		c.serveRequest(ctx, aFrame)
	case aFrame.Method != "":
		if c.handler != nil {
			c.handler.OnNotification(ctx, &jsonrpc.Notification{
				Method: aFrame.Method,
				Params: aFrame.Params,
			})
		}
	case aFrame.Id != nil:
		c.deliverResponse(aFrame)
	}
}

func (c *connection) serveRequest(ctx context.Context, aFrame *frame) {
	var id interface{}
	_ = json.Unmarshal(aFrame.Id, &id)
	request := &jsonrpc.Request{
		Jsonrpc: aFrame.Jsonrpc,
		Id:      id,
		Method:  aFrame.Method,
		Params:  aFrame.Params,
	}
	// requests are served off the read loop so a slow provider call never
	// stalls callback delivery
	go func() {
		response := &jsonrpc.Response{Jsonrpc: jsonrpc.Version, Id: id}
		if c.handler == nil {
			response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), nil)
		} else {
			c.handler.Serve(ctx, request, response)
		}
		data, err := json.Marshal(response)
		if err != nil {
			return
		}
		_ = c.enqueue(data)
	}()
}

func (c *connection) deliverResponse(aFrame *frame) {
	var id interface{}
	_ = json.Unmarshal(aFrame.Id, &id)
	waiting, ok := c.pending.Get(conv.AsInt(id))
	if !ok {
		return
	}
	waiting <- &jsonrpc.Response{
		Jsonrpc: aFrame.Jsonrpc,
		Id:      id,
		Result:  aFrame.Result,
		Error:   aFrame.Error,
	}
}

func (c *connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func newConnection(id string, conn *websocket.Conn, handler transport.Handler) *connection {
	return &connection{
		id:         id,
		conn:       conn,
		handler:    handler,
		pending:    collection.NewSyncMap[int, chan *jsonrpc.Response](),
		writeQueue: make(chan []byte, writeQueueSize),
		done:       make(chan struct{}),
	}
}
