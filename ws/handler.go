package ws

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/viant/jsonrpc/transport"
)

// NewChannelHandler builds a channel handler bound to its transport;
// endpoint.NewHandler satisfies it.
type NewChannelHandler func(ctx context.Context, aTransport transport.Transport) transport.Handler

// Handler serves endpoint channels over upgraded WebSocket connections. Each
// connection gets its own channel handler, and with it its own provider
// instance.
type Handler struct {
	newHandler NewChannelHandler
	upgrader   websocket.Upgrader
	checkOrigin func(r *http.Request) bool
}

// HandlerOption configures the server-side handler.
type HandlerOption func(h *Handler)

// WithCheckOrigin overrides the upgrade origin check.
func WithCheckOrigin(check func(r *http.Request) bool) HandlerOption {
	return func(h *Handler) {
		h.checkOrigin = check
	}
}

// ServeHTTP upgrades the request and pumps JSON-RPC frames until either side
// hangs up.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	// the request context ends with the upgrade; the channel lives until the
	// connection closes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channel := newConnection(uuid.New().String(), conn, nil)
	channel.handler = h.newHandler(ctx, channel)
	go channel.writePump()
	channel.readLoop(ctx)
}

// New creates a WebSocket server handler around a channel handler factory,
// typically endpoint.NewHandler.
func New(newHandler NewChannelHandler, options ...HandlerOption) *Handler {
	ret := &Handler{
		newHandler: newHandler,
		checkOrigin: func(r *http.Request) bool { return true },
	}
	for _, option := range options {
		option(ret)
	}
	ret.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return ret.checkOrigin(r) },
	}
	return ret
}
