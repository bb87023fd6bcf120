package main

import (
	"context"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/jobsync/internal/config"
	"github.com/honeycarbs/jobsync/internal/mcp"
	"github.com/honeycarbs/jobsync/pkg/logging"
	"github.com/honeycarbs/jobsync/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	res, cleanup, err := mcp.InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	mcp.RunStartup(ctx, cfg, res, logger)

	srv := mcp.NewServer(logger, cfg, res)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		shutdown.Graceful(
			[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
			10*time.Second,
			logger,
			srv,
		)
	}()

	logger.Info("MCP server initialized and starting", "addr", net.JoinHostPort(cfg.Host, cfg.Port))

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
		return
	}

	// wait for in-flight requests before the store is closed
	<-stopped
	logger.Info("MCP server stopped")
}
