package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// Имена глобальных флагов клиента
const (
	FlagConfig   = "config"
	FlagServer   = "server"
	FlagDB       = "db"
	FlagTimeout  = "timeout"
	FlagOutput   = "output"
	FlagLogLevel = "log-level"
)

// BuildInfo версия клиента, задается через ldflags
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Factory открывает локальную реплику и создает Cli для команды.
// Возвращаемая функция освобождает ресурсы.
type Factory func(cmd *cobra.Command) (*Cli, func() error, error)

type runFunc func(ctx context.Context, c *Cli, args []string) error

// NewRootCmd собирает дерево команд клиента
func NewRootCmd(factory Factory, info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:           "recordsync",
		Short:         "Keep a local record set in sync with the server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String(FlagConfig, "", "Path to YAML config file")
	flags.String(FlagServer, "http://localhost:8080", "Server URL")
	flags.String(FlagDB, "recordsync-client.db", "Path to local database")
	flags.Duration(FlagTimeout, 0, "HTTP request timeout (0 uses config)")
	flags.StringP(FlagOutput, "o", "table", "Output format: table, json, yaml")
	flags.String(FlagLogLevel, "warn", "Log level: debug, info, warn, error")

	wrap := func(fn runFunc) func(*cobra.Command, []string) error {
		return withCli(factory, fn)
	}

	root.AddCommand(
		newAddCmd(wrap),
		newEditCmd(wrap),
		newListCmd(wrap),
		newPushCmd(wrap),
		newPullCmd(wrap),
		newMergeCmd(wrap),
		newConflictsCmd(wrap),
		newResolveCmd(wrap),
		newStatusCmd(wrap),
		newVersionCmd(info),
	)

	return root
}

func withCli(factory Factory, fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		c, closeFn, err := factory(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := closeFn(); closeErr != nil {
				err = errors.Join(err, closeErr)
			}
		}()

		return fn(cmd.Context(), c, args)
	}
}
