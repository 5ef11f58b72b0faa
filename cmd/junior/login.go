package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vinayakankugoyal/junior/internal/config"
	"github.com/vinayakankugoyal/junior/internal/github"
	"golang.org/x/term"
)

func loginCmd() *cobra.Command {
	var tokenFlag string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a GitHub token",
		Long: `Store a GitHub personal access token for repository listing and
pull request creation.

The token is validated against the GitHub API and saved to the config
file. It can be passed with --token or entered at the prompt; the
prompt does not echo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := tokenFlag
			if token == "" {
				fmt.Print("GitHub token: ")
				data, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if err != nil {
					return fmt.Errorf("read token: %w", err)
				}
				token = strings.TrimSpace(string(data))
			}
			if token == "" {
				return fmt.Errorf("no token provided")
			}

			user, err := github.NewClient(token).User()
			if err != nil {
				return fmt.Errorf("validate token: %w", err)
			}

			cfg := loadConfig()
			cfg.GitHubToken = token
			if err := config.SaveGlobal(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			fmt.Printf("Signed in as %s\n", user.Login)
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenFlag, "token", "", "GitHub personal access token")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored GitHub token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if cfg.GitHubToken == "" {
				fmt.Println("Not signed in.")
				return nil
			}
			cfg.GitHubToken = ""
			if err := config.SaveGlobal(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in GitHub user",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := config.ResolveGitHubToken(loadConfig())
			if token == "" {
				fmt.Println("Not signed in.")
				return &exitError{code: 1}
			}

			user, err := github.NewClient(token).User()
			if err != nil {
				return err
			}

			fmt.Println(user.Login)
			if user.Name != "" {
				fmt.Println(user.Name)
			}
			return nil
		},
	}
}
