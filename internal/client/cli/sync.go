package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/recordsync/internal/models"
)

func newPushCmd(wrap func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Send local records to the server",
		Args:  cobra.NoArgs,
		RunE: wrap(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runBatch(ctx, "push", c.syncService.Push)
		}),
	}
}

func newMergeCmd(wrap func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Merge local records into the server replica",
		Args:  cobra.NoArgs,
		RunE: wrap(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runBatch(ctx, "merge", c.syncService.Merge)
		}),
	}
}

func (c *Cli) runBatch(ctx context.Context, op string, run func(context.Context) (models.BatchResult, error)) error {
	result, err := run(ctx)
	if err != nil {
		return fmt.Errorf("%s failed: %w", op, err)
	}

	if ok, err := c.encode(result); ok {
		return err
	}

	c.io.Printf("%s completed: %d change(s) on server\n", op, result.Changes)
	c.printFailures(result.Failures)
	return nil
}

func newPullCmd(wrap func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fetch records that exist only on the server",
		Args:  cobra.NoArgs,
		RunE: wrap(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runPull(ctx)
		}),
	}
}

func (c *Cli) runPull(ctx context.Context) error {
	records, err := c.syncService.Pull(ctx)
	if err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}

	if c.output == FormatTable {
		c.io.Printf("Pulled %d record(s)\n", len(records))
		if len(records) == 0 {
			return nil
		}
	}

	return c.printRecords(records)
}
