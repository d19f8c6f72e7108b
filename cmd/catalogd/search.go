package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antflydb/catalog/internal/jsonutil"
)

var searchAudience string

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run api_search against the index and print ranked matches",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchAudience, "audience", "", "optional audience hint")
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	if err := engine.Refresh(context.Background(), true); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	query := strings.Join(args, " ")
	result := engine.CatalogSearch(context.Background(), query, searchAudience)
	return printJSON(result)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(jsonutil.Canonical(v), "", "  ")
	if err != nil {
		return fmt.Errorf("render result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
