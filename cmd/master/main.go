package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/crawlfleet/statusd/internal/props"
	"github.com/crawlfleet/statusd/internal/registry"
	"github.com/crawlfleet/statusd/internal/server"
)

func main() {
	masterProps := props.NewMasterProperties()

	store := registry.NewStore()
	targets := registry.FileTargetSource{Path: masterProps.URLFile}
	handler := registry.NewHandler(store, targets, registry.NewMetrics(store), masterProps.MaxBodyBytes)
	s := server.NewServer(masterProps.Server, server.Wrap(handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Serving master server", "addr", s.Addr, "url_file", masterProps.URLFile)
	if err := server.Run(ctx, masterProps.Server, s); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
