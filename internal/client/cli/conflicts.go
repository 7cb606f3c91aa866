package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/recordsync/internal/models"
)

// ErrNoResolutions resolve вызван без аргументов вне терминала
var ErrNoResolutions = errors.New("no resolutions given: pass id=local|remote|both arguments")

func newConflictsCmd(wrap func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	var pending bool

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Check local records against the server for conflicts",
		Long: "Sends the local set to the server and stores every value conflict as pending.\n" +
			"With --pending only lists conflicts stored by the last check.",
		Args: cobra.NoArgs,
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "List stored conflicts without contacting the server")
	cmd.RunE = wrap(func(ctx context.Context, c *Cli, _ []string) error {
		if pending {
			return c.runPendingConflicts(ctx)
		}
		return c.runCheckConflicts(ctx)
	})

	return cmd
}

func (c *Cli) runCheckConflicts(ctx context.Context) error {
	result, err := c.syncService.CheckConflicts(ctx)
	if err != nil {
		return fmt.Errorf("check conflicts failed: %w", err)
	}

	if ok, err := c.encode(result); ok {
		return err
	}

	if err := c.printConflicts(result.Conflicts); err != nil {
		return err
	}
	c.printFailures(result.Failures)

	if len(result.Conflicts) > 0 {
		c.io.Println("Run 'recordsync resolve' to decide them.")
	}
	return nil
}

func (c *Cli) runPendingConflicts(ctx context.Context) error {
	conflicts, err := c.syncService.PendingConflicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending conflicts: %w", err)
	}

	return c.printConflicts(conflicts)
}

func newResolveCmd(wrap func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [id=local|remote|both ...]",
		Short: "Resolve pending conflicts",
		Long: "Applies a decision to each pending conflict. Without arguments asks for\n" +
			"each conflict interactively when attached to a terminal.",
		RunE: wrap(func(ctx context.Context, c *Cli, args []string) error {
			return c.runResolve(ctx, args)
		}),
	}
}

func (c *Cli) runResolve(ctx context.Context, args []string) error {
	var (
		resolutions []models.Resolution
		err         error
	)

	switch {
	case len(args) > 0:
		resolutions, err = parseResolutions(args)
	case c.io.IsTerminal():
		resolutions, err = c.promptResolutions(ctx)
	default:
		return ErrNoResolutions
	}
	if err != nil {
		return err
	}

	if len(resolutions) == 0 {
		c.io.Println("Nothing to resolve.")
		return nil
	}

	result, err := c.syncService.Resolve(ctx, resolutions)
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	if ok, err := c.encode(result); ok {
		return err
	}

	c.io.Printf("Resolved %d conflict(s)\n", len(resolutions)-len(result.Failures))
	c.printFailures(result.Failures)
	return nil
}

// parseResolutions разбирает аргументы вида id=choice
func parseResolutions(args []string) ([]models.Resolution, error) {
	resolutions := make([]models.Resolution, 0, len(args))
	for _, arg := range args {
		id, raw, ok := strings.Cut(arg, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid resolution %q: expected id=local|remote|both", arg)
		}

		choice, err := models.ParseChoice(raw)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", id, err)
		}
		resolutions = append(resolutions, models.Resolution{ID: id, Choice: choice})
	}
	return resolutions, nil
}

// promptResolutions спрашивает решение по каждому отложенному конфликту
func (c *Cli) promptResolutions(ctx context.Context) ([]models.Resolution, error) {
	conflicts, err := c.syncService.PendingConflicts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending conflicts: %w", err)
	}

	if len(conflicts) == 0 {
		c.io.Println("No pending conflicts. Run 'recordsync conflicts' first.")
		return nil, nil
	}

	var resolutions []models.Resolution
	for _, cf := range conflicts {
		c.io.Printf("\nRecord %s\n", cf.ID)
		c.io.Printf("  local:  %q (%s)\n", cf.LocalValue, formatMillis(cf.LocalUpdatedAt))
		c.io.Printf("  remote: %q (%s)\n", cf.RemoteValue, formatMillis(cf.RemoteUpdatedAt))

		for {
			answer, err := c.io.ReadInput("Keep [l]ocal, [r]emote, [b]oth or [s]kip? ")
			if err != nil {
				return nil, fmt.Errorf("failed to read input: %w", err)
			}

			answer = strings.ToLower(answer)
			if answer == "" || answer == "s" || answer == "skip" {
				break
			}

			choice, err := models.ParseChoice(answer)
			if err != nil {
				c.io.Println(err.Error())
				continue
			}
			resolutions = append(resolutions, models.Resolution{ID: cf.ID, Choice: choice})
			break
		}
	}

	return resolutions, nil
}
