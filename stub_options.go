package databridge

import (
	"context"
	"fmt"

	"github.com/viant/jsonrpc/transport"
	"github.com/viant/jsonrpc/transport/client/http/sse"
	"github.com/viant/jsonrpc/transport/client/http/streamable"
	"github.com/viant/jsonrpc/transport/client/stdio"

	"github.com/RileyEv/databridge/stub"
	"github.com/RileyEv/databridge/ws"
)

// StubOptions defines options for configuring a caller-side stub.
type StubOptions struct {
	Transport StubTransport `yaml:"transport,omitempty" json:"transport,omitempty"`
}

// StubTransport defines transport options for a caller-side stub.
type StubTransport struct {
	Type                string `yaml:"type" json:"type" short:"T" long:"transport-type" description:"channel transport type" choice:"stdio" choice:"sse" choice:"streamable" choice:"ws"`
	StubTransportStdio  `yaml:",inline"`
	StubTransportRemote `yaml:",inline"`
}

// StubTransportStdio configures a child-process channel.
type StubTransportStdio struct {
	Command   string   `yaml:"command,omitempty" json:"command,omitempty" short:"C" long:"command" description:"endpoint host command"`
	Arguments []string `yaml:"arguments,omitempty" json:"arguments,omitempty" short:"A" long:"arguments" description:"endpoint host command arguments"`
}

// StubTransportRemote configures a network-attached channel.
type StubTransportRemote struct {
	URL string `yaml:"url,omitempty" json:"url,omitempty" short:"u" long:"url" description:"endpoint url"`
}

// NewStub creates a stub with its channel transport configured from options.
// Handler options register the extension point callback listeners.
func NewStub(ctx context.Context, options *StubOptions, handlerOptions ...stub.HandlerOption) (*stub.Stub, error) {
	handler := stub.NewHandler(handlerOptions...)
	aTransport, err := options.getTransport(ctx, handler)
	if err != nil {
		return nil, err
	}
	return stub.New(aTransport), nil
}

func (o *StubOptions) getTransport(ctx context.Context, handler *stub.Handler) (transport.Transport, error) {
	switch o.Transport.Type {
	case "stdio":
		if o.Transport.Command == "" {
			return nil, fmt.Errorf("command is required for stdio transport")
		}
		ret, err := stdio.New(o.Transport.Command,
			stdio.WithHandler(handler),
			stdio.WithArguments(o.Transport.Arguments...))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdio transport: %w", err)
		}
		return ret, nil
	case "sse":
		if o.Transport.URL == "" {
			return nil, fmt.Errorf("URL is required for sse transport")
		}
		ret, err := sse.New(ctx, o.Transport.URL, sse.WithHandler(handler))
		if err != nil {
			return nil, fmt.Errorf("failed to create SSE transport: %w", err)
		}
		return ret, nil
	case "streamable":
		if o.Transport.URL == "" {
			return nil, fmt.Errorf("URL is required for streamable transport")
		}
		ret, err := streamable.New(ctx, o.Transport.URL, streamable.WithHandler(handler))
		if err != nil {
			return nil, fmt.Errorf("failed to create streamable transport: %w", err)
		}
		return ret, nil
	case "ws":
		if o.Transport.URL == "" {
			return nil, fmt.Errorf("URL is required for ws transport")
		}
		ret, err := ws.Dial(ctx, o.Transport.URL, ws.WithHandler(handler))
		if err != nil {
			return nil, fmt.Errorf("failed to create ws transport: %w", err)
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("no transport configured")
	}
}
