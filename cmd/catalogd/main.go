package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catalogd",
	Short: "catalogd - API Catalog Service",
	Long: `catalogd ingests a directory of OpenAPI documents and maintains a
searchable, persistent hybrid (lexical + semantic) index over their
operations and schemas.

Use catalogd serve to run the long-lived engine (optionally with the MCP
tool surface attached), or the refresh/search/get subcommands for one-shot
inspection against the same index.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bindConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("spec-dir", "./openapi", "Directory of OpenAPI documents (OPENAPI_DIR)")
	rootCmd.PersistentFlags().String("index-path", "./catalog.db", "Index Store path, or :memory: (OPENAPI_INDEX_PATH)")
	rootCmd.PersistentFlags().String("deref-mode", "lazy", "lazy or full $ref resolution (OPENAPI_DEREF_MODE)")
	rootCmd.PersistentFlags().Bool("semantic", false, "enable semantic search (OPENAPI_SEMANTIC)")
	rootCmd.PersistentFlags().String("embed-model", "", "embedding model identifier (OPENAPI_EMBED_MODEL)")
	rootCmd.PersistentFlags().Bool("execution", false, "enable api_execute_request (OPENAPI_EXECUTION)")
	rootCmd.PersistentFlags().String("base-url", "", "override the spec's declared server base URL (OPENAPI_BASE_URL)")
	rootCmd.PersistentFlags().String("api-key", "", "API key applied to executed requests (API_KEY)")
	rootCmd.PersistentFlags().String("api-token", "", "bearer token applied to executed requests (API_TOKEN)")
	rootCmd.PersistentFlags().String("log-style", "logfmt", "terminal, json, logfmt, or noop")
	rootCmd.PersistentFlags().String("log-level", "info", "zap level name")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(getCmd)
}

// bindConfig layers configuration: flags take precedence, then environment
// variables bound under their documented names, then catalogd.yaml if
// present in the working directory.
func bindConfig(cmd *cobra.Command) error {
	viper.SetConfigName("catalogd")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("read catalogd.yaml: %w", err)
		}
	}

	viper.AutomaticEnv()
	bindings := map[string]string{
		"spec-dir":    "OPENAPI_DIR",
		"index-path":  "OPENAPI_INDEX_PATH",
		"deref-mode":  "OPENAPI_DEREF_MODE",
		"semantic":    "OPENAPI_SEMANTIC",
		"embed-model": "OPENAPI_EMBED_MODEL",
		"execution":   "OPENAPI_EXECUTION",
		"base-url":    "OPENAPI_BASE_URL",
		"api-key":     "API_KEY",
		"api-token":   "API_TOKEN",
	}
	for flag, env := range bindings {
		if err := viper.BindEnv(flag, env); err != nil {
			return fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	return viper.BindPFlags(rootCmd.PersistentFlags())
}
