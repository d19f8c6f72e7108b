// Command catalog-mcp exposes the API catalog's six tool operations over
// the Model Context Protocol.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/decoder"
	"github.com/bytedance/sonic/encoder"
	"go.uber.org/zap"

	"github.com/antflydb/catalog/internal/catalog"
	"github.com/antflydb/catalog/internal/healthserver"
	"github.com/antflydb/catalog/internal/jsonutil"
	"github.com/antflydb/catalog/internal/logging"
	"github.com/antflydb/catalog/internal/mcpserver"
	"github.com/antflydb/catalog/internal/watcher"
)

var buildVersion = "dev"

func main() {
	jsonutil.SetConfig(jsonutil.Config{
		Marshal:   sonic.Marshal,
		Unmarshal: sonic.Unmarshal,
		NewEncoder: func(w io.Writer) jsonutil.Encoder { return encoder.NewStreamEncoder(w) },
		NewDecoder: func(r io.Reader) jsonutil.Decoder { return decoder.NewStreamDecoder(r) },
	})

	logStyle := logging.Style(os.Getenv("LOG_STYLE"))
	if logStyle == "" {
		logStyle = logging.StyleLogfmt
	}
	logger, err := logging.New(&logging.Config{Style: logStyle, Level: os.Getenv("LOG_LEVEL")})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	cfg := loadConfig()
	engine, err := catalog.New(catalog.Config{
		SpecDir:          cfg.specDir,
		IndexPath:        cfg.indexPath,
		DerefMode:        cfg.derefMode,
		SemanticEnabled:  cfg.semantic,
		ExecutionEnabled: cfg.execution,
		BaseURLOverride:  cfg.baseURL,
		APIKey:           cfg.apiKey,
		APIToken:         cfg.apiToken,
		HTTPClient:       &http.Client{Timeout: 30 * time.Second},
		Logger:           logger,
	})
	if err != nil {
		logger.Fatal("construct catalog engine", zap.Error(err))
	}

	if err := engine.Refresh(context.Background(), true); err != nil {
		logger.Fatal("initial catalog refresh", zap.Error(err))
	}

	printBanner(cfg, engine)

	if cfg.healthPort > 0 {
		healthserver.Start(logger, cfg.healthPort, engine.IsReady)
	}

	var w *watcher.Watcher
	if cfg.watch {
		w = watcher.New(cfg.specDir, cfg.watchInterval, func() {
			if err := engine.Refresh(context.Background(), false); err != nil {
				logger.Warn("watch-triggered refresh failed", zap.Error(err))
			}
		}, logger)
		if err := w.Start(); err != nil {
			logger.Warn("start watcher failed", zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	srv := mcpserver.New(engine, buildVersion)

	switch cfg.transport {
	case "http":
		addr := cfg.host + ":" + strconv.Itoa(cfg.port)
		logger.Info("serving MCP over http", zap.String("addr", addr))
		if err := srv.ServeHTTP(addr); err != nil {
			logger.Fatal("http transport exited", zap.Error(err))
		}
	default:
		if err := srv.ServeStdio(); err != nil {
			logger.Fatal("stdio transport exited", zap.Error(err))
		}
	}
}

func printBanner(cfg config, engine *catalog.Engine) {
	fmt.Fprintln(os.Stderr, "Connected! Try these prompts:")
	fmt.Fprintln(os.Stderr, "  - See PROMPTS.md")
	if !cfg.execution {
		fmt.Fprintln(os.Stderr, "Execution is disabled. Set OPENAPI_EXECUTION=1 to enable api_execute_request.")
	}
	if cfg.semantic && !engine.SemanticEnabled() {
		fmt.Fprintln(os.Stderr, "Semantic search disabled (no embedder configured).")
	}
}
