package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vinayakankugoyal/junior/internal/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show junior version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("junior %s\n", version.Version)
		},
	}
}
