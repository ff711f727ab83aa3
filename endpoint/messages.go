package endpoint

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RileyEv/databridge/schema"
	"github.com/viant/jsonrpc"
)

// GetMessages forwards the requested range and topic set to the provider
// untouched and replies with raw records plus transfer hints. A batch
// carrying any parsed record fails the request with a contract violation and
// forwards nothing; provider errors fail the request without tearing down
// the provider or the channel.
func (h *Handler) GetMessages(ctx context.Context, request *jsonrpc.Request) (*schema.GetMessagesResult, *jsonrpc.Error) {
	params := &schema.GetMessagesRequestParams{}
	if err := json.Unmarshal(request.Params, params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse %v", err), request.Params)
	}

	h.mux.Lock()
	aProvider := h.provider
	h.mux.Unlock()
	if aProvider == nil {
		return nil, schema.NewNotInitialized(request.Method)
	}

	batch, err := aProvider.GetMessages(ctx, params.Start, params.End, params.Topics)
	if err != nil {
		return nil, schema.NewProviderFailure(err)
	}
	if count := len(batch.Parsed); count > 0 {
		return nil, schema.NewContractViolation(
			fmt.Sprintf("provider returned %d parsed record(s); only raw records may cross the channel", count))
	}

	transferSet := NewTransferSet(batch.Raw)
	return &schema.GetMessagesResult{
		Messages:      batch.Raw,
		TransferHints: transferSet.Hints(),
	}, nil
}
