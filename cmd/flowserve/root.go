package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/flowserve"
	"github.com/aretw0/flowserve/internal/cli"
	"github.com/aretw0/flowserve/internal/logging"
	"github.com/aretw0/flowserve/pkg/adapters/redis"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flowserve",
	Short: "flowserve answers HTTP requests by running a workflow graph",
	Long: `flowserve interprets a declarative node-and-edge workflow to answer HTTP requests.
The graph is read from a JSON, YAML or HCL file (--graph), from Redis (--redis-addr),
or defaults to a built-in order quote workflow.

Every flag can also be set through the environment: --redis-addr reads FLOWSERVE_REDIS_ADDR.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := cli.LoadEnvFile(envFile, cmd.Flags().Changed("env-file")); err != nil {
			return err
		}
		if err := cli.BindEnv(cmd.Flags()); err != nil {
			return err
		}
		return nil
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
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("graph", "", "Workflow file (.json, .yaml, .yml or .hcl)")
	flags.String("redis-addr", "", "Redis address holding the workflow (host:port)")
	flags.String("redis-password", "", "Redis password")
	flags.Int("redis-db", 0, "Redis database")
	flags.String("redis-key", redis.DefaultKey, "Redis key holding the workflow")
	flags.String("redis-channel", redis.DefaultChannel, "Redis channel announcing workflow updates")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.Int("max-waves", 0, "Maximum waves per run (0 uses the engine default)")
	flags.String("env-file", ".env", "Dotenv file loaded before reading FLOWSERVE_* variables")
}

// loadConfig reads the shared flags after environment binding.
func loadConfig(cmd *cobra.Command) (cli.Config, error) {
	f := cmd.Flags()
	var cfg cli.Config
	cfg.GraphPath, _ = f.GetString("graph")
	cfg.RedisAddr, _ = f.GetString("redis-addr")
	cfg.RedisPassword, _ = f.GetString("redis-password")
	cfg.RedisDB, _ = f.GetInt("redis-db")
	cfg.RedisKey, _ = f.GetString("redis-key")
	cfg.RedisChannel, _ = f.GetString("redis-channel")
	cfg.LogLevel, _ = f.GetString("log-level")
	cfg.LogFormat, _ = f.GetString("log-format")
	cfg.MaxWaves, _ = f.GetInt("max-waves")
	return cfg, cli.Validate(cfg)
}

// createLogger configures the application logger.
// It writes to Stderr (to separate from Stdout reports and JSON-RPC).
func createLogger(cfg cli.Config) *slog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(level, cfg.LogFormat, os.Stderr)
}

// setup resolves configuration, logger and graph source for a command.
func setup(cmd *cobra.Command) (cli.Config, *slog.Logger, *cli.Source, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, nil, nil, err
	}
	logger := createLogger(cfg)
	src, err := cli.OpenSource(cfg)
	if err != nil {
		return cfg, logger, nil, err
	}
	return cfg, logger, src, nil
}

// loadEngine builds an engine from the configured source.
func loadEngine(ctx context.Context, cfg cli.Config, logger *slog.Logger, src *cli.Source) (*flowserve.Engine, error) {
	return flowserve.Load(ctx, src.Loader,
		flowserve.WithLogger(logger),
		flowserve.WithName(src.Name),
		flowserve.WithMaxWaves(cfg.MaxWaves),
	)
}
