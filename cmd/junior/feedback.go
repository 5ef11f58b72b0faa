package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func feedbackCmd() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "feedback <task-id> [instruction]",
		Short: "Send a follow-up instruction to a finished task",
		Long: `Resume a finished task's agent session with a follow-up instruction.

The task returns to running while the agent applies the feedback; its
previous output and changes are replaced when it finishes. The
instruction can be given as an argument or piped via stdin.

Examples:
  junior feedback abc123 "also add installation instructions"
  junior feedback abc123 --wait "fix the typo in the title"
  cat notes.txt | junior feedback abc123`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			text, err := taskText(args[1:])
			if err != nil {
				return err
			}

			client := newClient(loadConfig())

			resp, err := client.SendFeedback(id, text)
			if err != nil {
				return err
			}
			fmt.Printf("Task %s resumed\n", shortID(resp.TaskID))

			if !wait {
				return nil
			}
			task, err := client.WaitForTask(resp.TaskID)
			if err != nil {
				return err
			}
			return printTaskResult(task)
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the task to finish and show the result")
	return cmd
}
