package schema

import "github.com/viant/jsonrpc"

const (
	// ContractViolation indicates the provider produced a payload shape the
	// channel forbids (parsed records where only raw ones may cross).
	ContractViolation = -32020
	// ProviderFailure indicates the provider itself failed an operation.
	ProviderFailure = -32021
	// NotInitialized indicates a request arrived before initialize or after
	// close.
	NotInitialized = -32022
)

// NewContractViolation reports a forbidden payload shape. Fatal to the
// single request that produced it, never to the channel.
func NewContractViolation(message string) *jsonrpc.Error {
	return jsonrpc.NewError(ContractViolation, message, nil)
}

// NewProviderFailure wraps a provider error as a failed reply.
func NewProviderFailure(err error) *jsonrpc.Error {
	return jsonrpc.NewError(ProviderFailure, err.Error(), nil)
}

// NewNotInitialized reports a request issued outside the provider lifetime.
func NewNotInitialized(method string) *jsonrpc.Error {
	return jsonrpc.NewError(NotInitialized, "no active provider for "+method, nil)
}
