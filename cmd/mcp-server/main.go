package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/raindrop-mcp/internal/config"
	"github.com/roivaz/raindrop-mcp/internal/logging"
	"github.com/roivaz/raindrop-mcp/internal/mcp"
)

func main() {
	root := &cobra.Command{
		Use:          "mcp-server",
		Short:        "Raindrop.io MCP server",
		RunE:         run,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("base-url", "", "Raindrop API base URL")
	root.PersistentFlags().Duration("request-timeout", 0, "Timeout per upstream request")
	root.PersistentFlags().Duration("rate-limit-interval", 0, "Minimum spacing between upstream requests")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("http-addr", "", "Serve MCP over streamable HTTP on this address instead of stdio")

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.New(logging.DefaultLogger(config.LogLevel()))

	cfg, err := mcp.DefaultConfig(logger)
	if err != nil {
		return err
	}
	srv := mcp.New(cfg)

	if addr := config.HTTPAddr(); addr != "" {
		return serveHTTP(srv, addr, logger)
	}

	logger.Info("serving MCP over stdio")
	return mcpserver.ServeStdio(srv.MCP)
}

func serveHTTP(srv *mcp.Server, addr string, logger logging.Logger) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("MCP server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
