package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vinayakankugoyal/junior/internal/config"
)

func prCmd() *cobra.Command {
	var (
		title string
		body  string
	)

	cmd := &cobra.Command{
		Use:   "pr <task-id>",
		Short: "Create a pull request from a task's changes",
		Long: `Ask the server to push a task's changes to a branch and open a
pull request on GitHub.

Requires a GitHub token, from the GITHUB_TOKEN env var or the
github_token config key (see junior login).

Examples:
  junior pr abc123
  junior pr abc123 --title "Add README" --body "Adds a project README"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			cfg := loadConfig()

			token := config.ResolveGitHubToken(cfg)
			if token == "" {
				return fmt.Errorf("no GitHub token configured (run junior login or set GITHUB_TOKEN)")
			}

			client := newClient(cfg)

			if title == "" {
				task, err := client.Status(id)
				if err != nil {
					return err
				}
				title = truncate(task.Task, 70)
				if body == "" {
					body = task.Task
				}
			}

			pr, err := client.CreatePR(id, token, title, body)
			if err != nil {
				return err
			}
			if !pr.Success {
				reason := pr.Error
				if reason == "" {
					reason = pr.Message
				}
				return fmt.Errorf("create pr: %s", reason)
			}

			fmt.Printf("Created PR #%d: %s\n", pr.PRNumber, pr.PRURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "pull request title (default: the task text)")
	cmd.Flags().StringVar(&body, "body", "", "pull request body")
	return cmd
}
