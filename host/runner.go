// Package host runs a bridge endpoint process with the built-in provider
// kinds registered. Which provider actually gets built is up to the caller's
// initialize descriptor.
package host

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/RileyEv/databridge"
	"github.com/RileyEv/databridge/endpoint"
	"github.com/RileyEv/databridge/provider"
	"github.com/RileyEv/databridge/provider/memory"
	"github.com/RileyEv/databridge/provider/recordfile"
	"github.com/RileyEv/databridge/ws"
)

// Run parses args and serves the endpoint until the transport closes or the
// process is signalled.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	ctx := context.Background()

	registry := provider.NewRegistry()
	memory.Register(registry)
	recordfile.Register(registry)

	srv, err := databridge.NewEndpointServer(registry, &databridge.EndpointOptions{
		Transport: &databridge.EndpointTransport{
			Type: options.Transport,
			Cors: endpoint.DefaultCors(),
		},
	})
	if err != nil {
		return err
	}

	switch options.Transport {
	case "stdio":
		return srv.Stdio(ctx).ListenAndServe()
	case "ws":
		mux := http.NewServeMux()
		mux.Handle(options.WSURI, ws.New(srv.NewHandler))
		return serve(ctx, &http.Server{Addr: options.Addr, Handler: mux})
	default:
		return serve(ctx, srv.HTTP(ctx, options.Addr))
	}
}

func serve(ctx context.Context, httpSrv *http.Server) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		err := httpSrv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
