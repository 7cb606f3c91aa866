package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(wrap func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List local records",
		Args:    cobra.NoArgs,
		RunE: wrap(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runList(ctx)
		}),
	}
}

func (c *Cli) runList(ctx context.Context) error {
	records, err := c.syncService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	return c.printRecords(records)
}
