package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/scenarist/internal/config"
	"github.com/aretw0/scenarist/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "scenarist",
	Short: "Scenarist helps authors edit chatbot scenario steps",
	Long: `Scenarist provides the step authoring helpers of the scenario admin:
step templates, JSON formatting and validation, and next order allocation.
It serves them over HTTP and MCP, or runs them from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default $"+config.EnvConfigFile+")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("catalog", "", "YAML/JSON file overriding the step templates")
	rootCmd.PersistentFlags().String("steps-endpoint", "", "Admin URL listing the steps of a scenario")
	rootCmd.PersistentFlags().String("redis", "", "Redis address of the shared step index")
}

// loadConfig layers the command flags over the file and environment settings.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("catalog") {
		loaded.CatalogFile, _ = flags.GetString("catalog")
	}
	if flags.Changed("steps-endpoint") {
		loaded.StepsEndpoint, _ = flags.GetString("steps-endpoint")
	}
	if flags.Changed("redis") {
		loaded.Redis.Addr, _ = flags.GetString("redis")
	}

	level, err := logging.ParseLevel(loaded.LogLevel)
	if err != nil {
		return err
	}
	cfg = loaded
	logger = logging.New(level)
	slog.SetDefault(logger)
	return nil
}
