package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/crawlfleet/statusd/internal/props"
	"golang.org/x/sync/errgroup"
)

func NewServer(serverProps props.ServerProperties, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort(serverProps.Host, strconv.Itoa(serverProps.Port)),
		ReadTimeout:  serverProps.ReadTimeout,
		WriteTimeout: serverProps.WriteTimeout,
		IdleTimeout:  serverProps.IdleTimeout,
		Handler:      handler,
	}
}

// Run serves until ctx is cancelled and then shuts the server down, waiting
// for in-flight requests at most serverProps.ShutdownTimeout.
func Run(ctx context.Context, serverProps props.ServerProperties, srv *http.Server) error {
	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	return Serve(ctx, serverProps, srv, listener)
}

func Serve(ctx context.Context, serverProps props.ServerProperties, srv *http.Server, listener net.Listener) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("Listening", "addr", listener.Addr().String())
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverProps.ShutdownTimeout)
		defer cancel()

		slog.Info("Shutting down", "addr", listener.Addr().String())
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
