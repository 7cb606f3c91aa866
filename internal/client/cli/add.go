package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/recordsync/internal/models"
)

func newAddCmd(wrap func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "add <value>",
		Short: "Add a record to the local replica",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&id, "id", "", "Record ID (generated when empty)")
	cmd.RunE = wrap(func(ctx context.Context, c *Cli, args []string) error {
		return c.runAdd(ctx, id, args[0])
	})

	return cmd
}

func (c *Cli) runAdd(ctx context.Context, id, value string) error {
	record, err := c.syncService.Add(ctx, id, value)
	if err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}

	return c.printRecords([]*models.Record{record})
}

func newEditCmd(wrap func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <value>",
		Short: "Change the value of a local record",
		Args:  cobra.ExactArgs(2),
		RunE: wrap(func(ctx context.Context, c *Cli, args []string) error {
			return c.runEdit(ctx, args[0], args[1])
		}),
	}
}

func (c *Cli) runEdit(ctx context.Context, id, value string) error {
	record, changed, err := c.syncService.Edit(ctx, id, value)
	if err != nil {
		return fmt.Errorf("failed to edit record %q: %w", id, err)
	}

	if !changed && c.output == FormatTable {
		c.io.Println("Value unchanged.")
		return nil
	}

	return c.printRecords([]*models.Record{record})
}
