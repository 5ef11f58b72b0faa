package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vinayakankugoyal/junior/internal/api"
)

func submitCmd() *cobra.Command {
	var (
		repo string
		wait bool
	)

	cmd := &cobra.Command{
		Use:   "submit [task]",
		Short: "Submit a coding task",
		Long: `Submit a coding task to the agent server.

The task can be provided as:
  1. A positional argument: junior submit "add a README"
  2. Via stdin: echo "add a README" | junior submit

By default, the task is started and the command returns immediately.
Use --wait to block until the task finishes and show the result.

Examples:
  junior submit "add a README" --repo octo/repo
  junior submit --wait "fix the failing test" --repo octo/repo
  cat instructions.txt | junior submit --repo octo/repo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := taskText(args)
			if err != nil {
				return err
			}

			client := newClient(loadConfig())
			slog.Debug("submitting task", "repo", repo, "chars", len(text))

			id, err := client.Submit(text, repo)
			if err != nil {
				return err
			}

			fmt.Printf("Task %s started\n", id)

			if !wait {
				return nil
			}
			task, err := client.WaitForTask(id)
			if err != nil {
				return err
			}
			return printTaskResult(task)
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "GitHub repository to run the task against (owner/name)")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the task to finish and show the result")

	return cmd
}

// printTaskResult prints a finished task's outcome. Failed tasks yield
// exit code 1.
func printTaskResult(task *api.Task) error {
	switch task.Status {
	case api.StatusCompleted:
		fmt.Printf("Task %s completed in %s\n", shortID(task.ID), taskElapsed(*task))
		return nil
	case api.StatusFailed:
		fmt.Printf("Task %s failed", shortID(task.ID))
		if task.Error != "" {
			fmt.Printf(": %s", task.Error)
		}
		fmt.Println()
		return &exitError{code: 1}
	default:
		fmt.Printf("Task %s is %s\n", shortID(task.ID), task.Status)
		return nil
	}
}
