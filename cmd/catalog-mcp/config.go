package main

import (
	"os"
	"strconv"
	"time"

	"github.com/antflydb/catalog/internal/watcher"
)

// config holds the process's environment-derived configuration. There is no
// cobra/viper layer here: the MCP entrypoint is meant to be launched
// directly by an MCP client (stdio) or a container orchestrator (http), so
// its configuration surface is env-var only, matching the reference
// server's os.environ reads.
type config struct {
	specDir       string
	indexPath     string
	derefMode     string
	semantic      bool
	execution     bool
	baseURL       string
	apiKey        string
	apiToken      string
	watch         bool
	watchInterval time.Duration

	transport string
	host      string
	port      int

	healthPort int
}

func loadConfig() config {
	return config{
		specDir:       envOr("OPENAPI_DIR", "./openapi"),
		indexPath:     envOr("OPENAPI_INDEX_PATH", "./catalog.db"),
		derefMode:     envOr("OPENAPI_DEREF_MODE", "lazy"),
		semantic:      envBool("OPENAPI_SEMANTIC", false),
		execution:     envBool("OPENAPI_EXECUTION", false),
		baseURL:       os.Getenv("OPENAPI_BASE_URL"),
		apiKey:        os.Getenv("API_KEY"),
		apiToken:      os.Getenv("API_TOKEN"),
		watch:         envBool("OPENAPI_WATCH", false),
		watchInterval: envDuration("OPENAPI_WATCH_INTERVAL", watcher.DefaultInterval),

		transport: envOr("MCP_TRANSPORT", "stdio"),
		host:      envOr("MCP_HOST", "0.0.0.0"),
		port:      envInt("PORT", 8000),

		healthPort: envInt("HEALTH_PORT", 0),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
