package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"player-list/web/adapters/tasks"
)

const defaultTasksURL = "http://localhost:8080"

type options struct {
	tasksURL string
	timeout  time.Duration
}

func (o *options) client(cmd *cobra.Command) (*tasks.Client, error) {
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelError}))
	c, err := tasks.NewClient(o.tasksURL, o.timeout, log)
	if err != nil {
		return nil, fmt.Errorf("tasks url: %w", err)
	}
	return c, nil
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "playersctl",
		Short:         "Manage the player list",
		Long:          `playersctl talks to the tasks service REST API to list, add, toggle, remove and export players.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	defURL := os.Getenv("TASKS_URL")
	if defURL == "" {
		defURL = defaultTasksURL
	}
	root.PersistentFlags().StringVar(&opts.tasksURL, "tasks-url", defURL, "Tasks service base URL (env TASKS_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "Request timeout")

	root.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newToggleCmd(opts),
		newRemoveCmd(opts),
		newExportCmd(opts),
	)
	return root
}
