package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Long: `Delete a task and its workspace from the server.

Asks for confirmation unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if !force {
				fmt.Printf("Delete task %s? This cannot be undone. [y/N] ", shortID(id))
				answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			client := newClient(loadConfig())
			if err := client.Delete(id); err != nil {
				return err
			}

			fmt.Printf("Task %s deleted\n", shortID(id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")
	return cmd
}
