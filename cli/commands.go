package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"player-list/web/core"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			items, err := c.ListTasks(cmdContext(cmd))
			if err != nil {
				return fmt.Errorf("list players: %w", err)
			}
			printTasks(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a player",
		Long:  `Add a player. Multiple words are joined with spaces.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			t, err := c.CreateTask(cmdContext(cmd), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("add player: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Player added: %s\n", t.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  Name: %s\n", t.Task)
			return nil
		},
	}
}

func newToggleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a player's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			t, err := c.ToggleTask(cmdContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("toggle player %s: %w", args[0], err)
			}
			printTask(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func newRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a player",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			if err := c.DeleteTask(cmdContext(cmd), args[0]); err != nil {
				return fmt.Errorf("remove player %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Player removed: %s\n", args[0])
			return nil
		},
	}
}

func printTasks(w io.Writer, items []core.Task) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No players found.")
		return
	}
	for _, t := range items {
		printTask(w, t)
	}
}

func printTask(w io.Writer, t core.Task) {
	icon := "○"
	if t.Completed {
		icon = "✓"
	}
	fmt.Fprintf(w, "%s [%s] %s\n", icon, t.ID, t.Task)
}

// cmdContext lets commands run without ExecuteContext.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
