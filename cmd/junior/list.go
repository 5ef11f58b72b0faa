package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vinayakankugoyal/junior/internal/api"
)

func listCmd() *cobra.Command {
	var (
		filter     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks with optional filtering.

Examples:
  junior list                    # All tasks
  junior list --filter running   # Only running tasks
  junior list --filter completed # Only finished tasks
  junior list --json             # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f api.ListFilter
			switch filter {
			case "", "all":
				f = api.FilterAll
			case "running":
				f = api.FilterRunning
			case "completed":
				f = api.FilterCompleted
			default:
				return fmt.Errorf("invalid filter %q (use all, running, or completed)", filter)
			}

			client := newClient(loadConfig())
			tasks, err := client.List(f)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(tasks)
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tStatus\tTime\tTask\n")
			for _, t := range tasks {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					shortID(t.ID), t.Status, taskElapsed(t), truncate(t.Task, 60))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "filter by status (all, running, completed)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}
