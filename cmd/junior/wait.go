package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/vinayakankugoyal/junior/internal/api"
)

func waitCmd() *cobra.Command {
	var (
		quiet    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wait <task-id>",
		Short: "Wait for a task to finish",
		Long: `Block until a task reaches a terminal status.

Useful in scripts that submit a task and then act on its result.

Exit codes:
  0  Task completed
  1  Task failed or could not be reached

Examples:
  junior wait abc123
  junior wait abc123 --quiet && junior show abc123`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if quiet {
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
			}

			client := newClient(loadConfig())
			client.SetPollInterval(interval)

			task, err := client.WaitForTask(args[0])
			if err != nil {
				if quiet {
					return &exitError{code: 1}
				}
				return err
			}

			if quiet {
				if task.Status != api.StatusCompleted {
					return &exitError{code: 1}
				}
				return nil
			}
			return printTaskResult(task)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress output (for use in scripts)")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "poll interval")
	return cmd
}
