package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vinayakankugoyal/junior/internal/config"
	"github.com/vinayakankugoyal/junior/internal/github"
)

func reposCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "repos",
		Short: "List your GitHub repositories",
		Long:  "List repositories owned by the signed-in user, most recently updated first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := config.ResolveGitHubToken(loadConfig())
			if token == "" {
				return fmt.Errorf("no GitHub token configured (run junior login or set GITHUB_TOKEN)")
			}

			repos, err := github.NewClient(token).Repos()
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(repos)
			}

			if len(repos) == 0 {
				fmt.Println("No repositories found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Repo\tLanguage\tVisibility\n")
			for _, r := range repos {
				visibility := "public"
				if r.Private {
					visibility = "private"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.FullName, r.Language, visibility)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}
