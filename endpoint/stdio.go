package endpoint

import (
	"context"
	"github.com/viant/jsonrpc/transport/server/stdio"
)

type stdioServer struct {
	stdioServerOption []stdio.Option
}

// Stdio returns a stdio server, the transport used when the endpoint lives
// in a child process of the caller.
func (e *Endpoint) Stdio(ctx context.Context) *stdio.Server {
	return stdio.New(ctx, e.NewHandler, e.stdioServerOption...)
}
