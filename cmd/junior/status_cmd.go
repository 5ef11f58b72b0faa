package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vinayakankugoyal/junior/internal/outputfmt"
)

func statusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status <task-id>",
		Short: "Show the status of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(loadConfig())

			task, err := client.Status(args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(task)
			}

			fmt.Printf("ID:      %s\n", task.ID)
			fmt.Printf("Status:  %s\n", task.Status)
			fmt.Printf("Task:    %s\n", truncate(task.Task, 100))
			if elapsed := taskElapsed(*task); elapsed != "" {
				fmt.Printf("Elapsed: %s\n", elapsed)
			}
			if task.SessionID != "" {
				fmt.Printf("Session: %s\n", task.SessionID)
			}
			if len(task.FeedbackHistory) > 0 {
				fmt.Printf("Feedback rounds: %d\n", len(task.FeedbackHistory))
			}
			if task.Error != "" {
				fmt.Printf("Error:   %s\n", task.Error)
			}
			if summary := outputfmt.Summary(task.Output, 100); summary != "" {
				fmt.Printf("Output:  %s\n", summary)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}
