package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vinayakankugoyal/junior/cmd/junior/tui"
	"github.com/vinayakankugoyal/junior/internal/config"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"tui"},
		Short:   "Interactive terminal dashboard for tasks",
		Long: `Interactive terminal dashboard for submitting and monitoring tasks.

Shows a live task list, task details with output and diffs, and forms
for submitting tasks, sending feedback, and creating pull requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			addr := config.ResolveServerAddr(serverAddr, cfg)
			if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
				addr = "http://" + addr
			}

			return tui.Run(tui.Config{
				ServerAddr:     addr,
				GitHubToken:    config.ResolveGitHubToken(cfg),
				ListInterval:   time.Duration(cfg.ListPollSeconds) * time.Second,
				DetailInterval: time.Duration(cfg.DetailPollSeconds) * time.Second,
			})
		},
	}

	return cmd
}
