package databridge

import (
	"fmt"

	"github.com/RileyEv/databridge/endpoint"
	"github.com/RileyEv/databridge/provider"
)

// EndpointOptions defines options for configuring a bridge endpoint server.
type EndpointOptions struct {
	Transport *EndpointTransport `yaml:"transport,omitempty" json:"transport,omitempty"`
}

// EndpointTransport defines transport options for a bridge endpoint.
type EndpointTransport struct {
	Type          string         `yaml:"type" json:"type" short:"T" long:"transport-type" description:"channel transport type" choice:"stdio" choice:"sse" choice:"streamable" choice:"ws"`
	Port          int            `yaml:"port,omitempty" json:"port,omitempty" short:"p" long:"port" description:"listen port"`
	SSEURI        string         `yaml:"sseURI,omitempty" json:"sseURI,omitempty"`
	SSEMessageURI string         `yaml:"sseMessageURI,omitempty" json:"sseMessageURI,omitempty"`
	StreamableURI string         `yaml:"streamableURI,omitempty" json:"streamableURI,omitempty"`
	Cors          *endpoint.Cors `yaml:"cors,omitempty" json:"cors,omitempty"`
}

// NewEndpointServer creates a bridge endpoint resolving descriptors through
// registry, configured per options. The caller picks the serving mode with
// Endpoint.Stdio or Endpoint.HTTP (or mounts a ws.Handler around
// Endpoint.NewHandler).
func NewEndpointServer(registry *provider.Registry, options *EndpointOptions) (*endpoint.Endpoint, error) {
	if registry == nil {
		return nil, fmt.Errorf("provider registry was nil")
	}
	endpointOptions := []endpoint.Option{endpoint.WithRegistry(registry)}
	useStreaming := false
	if options != nil && options.Transport != nil {
		aTransport := options.Transport
		if aTransport.Type == "streamable" {
			useStreaming = true
		}
		if aTransport.Port > 0 {
			endpointOptions = append(endpointOptions, endpoint.WithEndpointAddress(fmt.Sprintf(":%v", aTransport.Port)))
		}
		if aTransport.SSEURI != "" {
			endpointOptions = append(endpointOptions, endpoint.WithSSEURI(aTransport.SSEURI))
		}
		if aTransport.SSEMessageURI != "" {
			endpointOptions = append(endpointOptions, endpoint.WithSSEMessageURI(aTransport.SSEMessageURI))
		}
		if aTransport.StreamableURI != "" {
			endpointOptions = append(endpointOptions, endpoint.WithStreamableURI(aTransport.StreamableURI))
		}
		if aTransport.Cors != nil {
			endpointOptions = append(endpointOptions, endpoint.WithCORS(aTransport.Cors))
		}
	}
	ret, err := endpoint.New(endpointOptions...)
	if err != nil {
		return nil, err
	}
	if useStreaming {
		ret.UseStreamableHTTP(true)
	}
	return ret, nil
}
