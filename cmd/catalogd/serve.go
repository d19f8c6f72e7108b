package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/antflydb/catalog/internal/healthserver"
	"github.com/antflydb/catalog/internal/mcpserver"
	"github.com/antflydb/catalog/internal/watcher"
)

var (
	serveMCP          bool
	serveWatch        bool
	serveHealthPort   int
	serveMCPTransport string
	serveMCPHost      string
	serveMCPPort      int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog engine as a long-lived process",
	Long: `serve refreshes the catalog once, then blocks: with --watch it
polls the spec directory for changes, and with --mcp it additionally
attaches the Model Context Protocol tool surface, the same six tools
the standalone catalog-mcp binary exposes. The serve flags are read from
the command line only: unlike catalog-mcp, serve does not consult
OPENAPI_WATCH, OPENAPI_WATCH_INTERVAL, MCP_TRANSPORT, MCP_HOST or PORT,
and --watch polls every 2 seconds.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "attach the MCP tool surface (see --mcp-transport/--mcp-host/--mcp-port)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "poll the spec directory for changes every 2s")
	serveCmd.Flags().IntVar(&serveHealthPort, "health-port", 8080, "health/metrics server port, 0 to disable")
	serveCmd.Flags().StringVar(&serveMCPTransport, "mcp-transport", "stdio", "stdio or http")
	serveCmd.Flags().StringVar(&serveMCPHost, "mcp-host", "0.0.0.0", "listen host for http transport")
	serveCmd.Flags().IntVar(&serveMCPPort, "mcp-port", 8000, "listen port for http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	engine, err := buildEngine(logger)
	if err != nil {
		return fmt.Errorf("construct catalog engine: %w", err)
	}
	defer engine.Close() //nolint:errcheck

	ctx := context.Background()
	if err := engine.Refresh(ctx, true); err != nil {
		return fmt.Errorf("initial refresh: %w", err)
	}
	logger.Info("catalog refreshed",
		zap.String("spec_dir", viper.GetString("spec-dir")),
		zap.Bool("semantic_enabled", engine.SemanticEnabled()))

	if serveHealthPort > 0 {
		healthserver.Start(logger, serveHealthPort, engine.IsReady)
	}

	if serveWatch {
		w := watcher.New(viper.GetString("spec-dir"), watcher.DefaultInterval, func() {
			if err := engine.Refresh(ctx, false); err != nil {
				logger.Warn("watch-triggered refresh failed", zap.Error(err))
			}
		}, logger)
		if err := w.Start(); err != nil {
			logger.Warn("start watcher failed", zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	if !serveMCP {
		logger.Info("serving without an MCP tool surface; pass --mcp to attach one")
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		return nil
	}

	srv := mcpserver.New(engine, version)
	if serveMCPTransport == "http" {
		addr := serveMCPHost + ":" + strconv.Itoa(serveMCPPort)
		logger.Info("serving MCP over http", zap.String("addr", addr))
		return srv.ServeHTTP(addr)
	}
	logger.Info("serving MCP over stdio")
	return srv.ServeStdio()
}
