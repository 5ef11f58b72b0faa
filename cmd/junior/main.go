package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	serverAddr string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "junior",
		Short: "Dashboard for AI coding tasks",
		Long:  "junior submits coding tasks to an agent server and tracks their progress, diffs, and pull requests",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level: level,
			})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "task server address (default: from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(submitCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(waitCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(prCmd())
	rootCmd.AddCommand(feedbackCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(reposCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		// Check for exitError to exit with specific code without extra output
		if exitErr, ok := err.(*exitError); ok {
			os.Exit(exitErr.code)
		}
		os.Exit(1)
	}
}
