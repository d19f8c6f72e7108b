package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var getFull bool

var getCmd = &cobra.Command{
	Use:   "get <endpoint-id>",
	Short: "Run api_get_operation against the index and print the contract",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getFull, "full", false, "include requestBody and responses, with $ref schemas deep-resolved")
}

func runGet(cmd *cobra.Command, args []string) error {
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

	result, err := engine.EndpointGet(args[0], getFull)
	if err != nil {
		return err
	}
	return printJSON(result)
}
