package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd(wrap func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show local replica summary",
		Args:  cobra.NoArgs,
		RunE: wrap(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runStatus(ctx)
		}),
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	status, err := c.syncService.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	return c.printStatus(status)
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "RecordSync Client\n")
			fmt.Fprintf(out, "Version:    %s\n", info.Version)
			fmt.Fprintf(out, "Build Date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", info.GitCommit)
		},
	}
}
