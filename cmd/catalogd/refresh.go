package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var refreshNoCache bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the index from the spec directory and exit",
	Long: `refresh triggers a one-shot reindex, the same operation the Watcher
and the MCP server's startup path perform. Pass --no-cache to skip the
fingerprint-matched cache sidecar and force a full reparse.`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshNoCache, "no-cache", false, "force a full reindex, ignoring the cache sidecar")
}

func runRefresh(cmd *cobra.Command, args []string) error {
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

	if err := engine.Refresh(context.Background(), !refreshNoCache); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	catalog := engine.GetCatalog()
	fmt.Printf("indexed %d spec(s)\n", len(catalog["specs"].([]any)))
	return nil
}
