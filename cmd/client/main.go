package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/recordsync/internal/client/api"
	"github.com/iudanet/recordsync/internal/client/cli"
	"github.com/iudanet/recordsync/internal/client/iocli"
	"github.com/iudanet/recordsync/internal/client/storage/boltdb"
	"github.com/iudanet/recordsync/internal/client/sync"
	"github.com/iudanet/recordsync/internal/clock"
	"github.com/iudanet/recordsync/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	root := cli.NewRootCmd(newCli, cli.BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newCli загружает конфигурацию, открывает BoltDB и собирает сервисы клиента
func newCli(cmd *cobra.Command) (*cli.Cli, func() error, error) {
	flags := cmd.Flags()

	configFile, err := flags.GetString(cli.FlagConfig)
	if err != nil {
		return nil, nil, err
	}

	v, err := config.New(configFile)
	if err != nil {
		return nil, nil, err
	}
	config.SetClientDefaults(v)

	bindings := map[string]string{
		config.KeyServer:   cli.FlagServer,
		config.KeyDB:       cli.FlagDB,
		config.KeyOutput:   cli.FlagOutput,
		config.KeyLogLevel: cli.FlagLogLevel,
	}
	// Нулевой таймаут во флаге означает значение из конфигурации
	if flags.Changed(cli.FlagTimeout) {
		bindings[config.KeyTimeout] = cli.FlagTimeout
	}
	if err := config.BindFlags(v, flags, bindings); err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadClient(v)
	if err != nil {
		return nil, nil, err
	}

	logger, err := config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return nil, nil, err
	}

	// Открываем BoltDB storage
	store, err := boltdb.New(cmd.Context(), cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	apiClient := api.NewClient(cfg.Server, api.WithTimeout(cfg.Timeout))
	syncService := sync.NewService(apiClient, store, clock.System{}, logger)

	return cli.New(iocli.NewStdio(), syncService, cli.Format(cfg.Output)), store.Close, nil
}
