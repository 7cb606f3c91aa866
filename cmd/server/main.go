package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/recordsync/internal/clock"
	"github.com/iudanet/recordsync/internal/config"
	"github.com/iudanet/recordsync/internal/server"
	"github.com/iudanet/recordsync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "recordsync-server",
		Short:         "Record sync server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.New(configFile)
			if err != nil {
				return err
			}
			config.SetServerDefaults(v)

			if err := config.BindFlags(v, cmd.Flags(), map[string]string{
				config.KeyAddr:             "addr",
				config.KeyDB:               "db",
				config.KeyOpTimeout:        "op-timeout",
				config.KeyWorkers:          "workers",
				config.KeyShutdownTimeout:  "shutdown-timeout",
				config.KeyRateLimitRequest: "rate-limit",
				config.KeyTrustedProxies:   "trusted-proxies",
				config.KeyLogLevel:         "log-level",
				config.KeyLogFormat:        "log-format",
			}); err != nil {
				return err
			}

			cfg, err := config.LoadServer(v)
			if err != nil {
				return err
			}

			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "Path to YAML config file")
	flags.String("addr", ":8080", "HTTP listen address")
	flags.String("db", "recordsync.db", "Path to SQLite database")
	flags.Duration("op-timeout", 5*time.Second, "Per-record storage operation timeout")
	flags.Int("workers", 8, "Max records processed in parallel per batch")
	flags.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")
	flags.Int("rate-limit", 0, "Max sync requests per client per window (0 disables)")
	flags.StringSlice("trusted-proxies", nil, "Proxy CIDRs whose X-Forwarded-For is honored by the rate limiter")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text, json")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd)
		},
	}
}

func run(ctx context.Context, cfg *config.Server) error {
	logger, err := config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	logger.Info("Storage opened", "db", cfg.DB)

	// сервер закрывает хранилище при остановке
	srv := server.New(cfg, store, clock.System{}, logger, Version)
	return srv.Run(ctx)
}

func printVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "RecordSync Server\n")
	fmt.Fprintf(out, "Version:    %s\n", Version)
	fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
	fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
}
