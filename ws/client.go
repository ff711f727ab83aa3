package ws

import (
	"context"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/viant/jsonrpc/transport"
)

// Client is the caller side of a WebSocket channel.
type Client struct {
	*connection
}

// ClientOption configures a client.
type ClientOption func(c *Client)

// WithHandler attaches the transport handler that receives server-initiated
// notifications, typically a stub.Handler.
func WithHandler(handler transport.Handler) ClientOption {
	return func(c *Client) {
		c.connection.handler = handler
	}
}

// Dial connects to a WebSocket endpoint and starts the connection pumps.
func Dial(ctx context.Context, rawURL string, options ...ClientOption) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	ret := &Client{connection: newConnection(uuid.New().String(), conn, nil)}
	for _, option := range options {
		option(ret)
	}
	go ret.connection.writePump()
	go ret.connection.readLoop(ctx)
	return ret, nil
}

// Close tears the connection down.
func (c *Client) Close() error {
	c.connection.close()
	return nil
}
