// Package databridge hosts a tree of time-ranged record providers inside an
// isolated execution context and exposes their operations to a remote caller
// over an asynchronous JSON-RPC message channel.
//
// The package glues the wire contract defined in schema, the provider
// capability in provider, the bridge endpoint in endpoint and the
// caller-side stub in stub with concrete transports (stdio subprocess,
// HTTP SSE, streamable HTTP, WebSocket). In practice it is used as an
// umbrella package that exposes two primary entry-points:
//  1. NewEndpointServer - returns a configured bridge endpoint and
//  2. NewStub - returns a configured caller-side stub over a chosen
//     transport.
//
// Both constructors accept option structures that can be populated from CLI
// flags or configuration files.
//
// Example:
//
//	srv, _ := databridge.NewEndpointServer(registry, &databridge.EndpointOptions{ /* … */ })
//	cli, _ := databridge.NewStub(&databridge.StubOptions{ /* … */ })
//
// See the README for a more complete introduction.
package databridge
