package stub

import "github.com/RileyEv/databridge/schema"

// HandlerOption configures the caller-side transport handler.
type HandlerOption func(h *Handler)

// WithListener registers a listener for an arbitrary callback kind.
func WithListener(kind schema.CallbackKind, listener Listener) HandlerOption {
	return func(h *Handler) {
		h.listeners[kind] = append(h.listeners[kind], listener)
	}
}

// WithProgressListener registers a progressCallback listener.
func WithProgressListener(listener Listener) HandlerOption {
	return WithListener(schema.ProgressCallback, listener)
}

// WithMetadataListener registers a reportMetadataCallback listener.
func WithMetadataListener(listener Listener) HandlerOption {
	return WithListener(schema.ReportMetadataCallback, listener)
}

// WithNotifyListener registers a notifyPlayerManager listener.
func WithNotifyListener(listener Listener) HandlerOption {
	return WithListener(schema.NotifyPlayerManager, listener)
}
