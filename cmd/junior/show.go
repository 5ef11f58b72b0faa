package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vinayakankugoyal/junior/internal/api"
	"github.com/vinayakankugoyal/junior/internal/diffview"
	"github.com/vinayakankugoyal/junior/internal/outputfmt"
	"golang.org/x/term"
)

func showCmd() *cobra.Command {
	var (
		raw      bool
		diffOnly bool
	)

	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task's output and changes",
		Long: `Show a finished task's agent output and the changes it made.

For tasks run against a git repository, changes are shown as a unified
diff summary. For other tasks, the files the agent wrote are listed.

Examples:
  junior show abc123
  junior show abc123 --raw    # Unrendered agent output
  junior show abc123 --diff   # Only the diff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(loadConfig())

			task, err := client.Status(args[0])
			if err != nil {
				return err
			}

			if !diffOnly {
				printTaskHeader(task)
				if task.Output != "" {
					if raw {
						fmt.Println(task.Output)
					} else {
						fmt.Println(outputfmt.Render(task.Output, outputWidth()))
					}
				}
			}

			if !task.Status.Terminal() {
				return nil
			}

			content, err := client.Content(task.ID)
			if err != nil {
				return fmt.Errorf("fetch content: %w", err)
			}
			return printContent(content)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print agent output without markdown rendering")
	cmd.Flags().BoolVar(&diffOnly, "diff", false, "print only the changes")
	return cmd
}

func printTaskHeader(task *api.Task) {
	fmt.Printf("Task %s (%s)\n", shortID(task.ID), task.Status)
	fmt.Printf("  %s\n\n", truncate(task.Task, 100))
	if task.Error != "" {
		fmt.Printf("Error: %s\n\n", task.Error)
	}
}

func printContent(content *api.TaskContent) error {
	if content.Empty() {
		fmt.Println("No changes.")
		return nil
	}

	if content.ContentType == api.ContentFiles {
		fmt.Printf("Files (%d):\n", len(content.Files))
		for _, f := range content.Files {
			fmt.Printf("\n--- %s (%d bytes)\n", f.Path, f.Size)
			if f.Type == "binary" {
				fmt.Println("[binary file]")
				continue
			}
			fmt.Println(f.Content)
		}
		return nil
	}

	files, err := diffview.Parse(content.Diff)
	if err != nil {
		// Unparseable diff content still has value, print it verbatim
		fmt.Println(content.Diff)
		return nil
	}

	for _, f := range files {
		fmt.Printf("%-8s %s  +%d -%d\n", f.Kind, f.Path(), f.Additions, f.Deletions)
		if f.Kind == diffview.Renamed {
			fmt.Printf("         (from %s)\n", f.OldPath)
		}
	}
	fmt.Println()
	fmt.Print(content.Diff)
	return nil
}

// outputWidth returns the terminal width for markdown rendering,
// defaulting to 100 when stdout is not a terminal.
func outputWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}
