package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/crawlfleet/statusd/internal/notify"
	"github.com/crawlfleet/statusd/internal/props"
	"github.com/crawlfleet/statusd/internal/server"
)

func main() {
	notifyProps := props.NewNotifyProperties()

	handler := notify.NewHandler(notify.DefaultTargets)
	s := server.NewServer(notifyProps.Server, server.Wrap(handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Serving notify server", "addr", s.Addr)
	if err := server.Run(ctx, notifyProps.Server, s); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
