package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vinayakankugoyal/junior/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set junior configuration",
		Long:  "Inspect or modify junior configuration values. Similar to git config.",
	}

	cmd.AddCommand(configGetCmd())
	cmd.AddCommand(configSetCmd())
	cmd.AddCommand(configListCmd())

	return cmd
}

func configGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !config.IsValidKey(key) {
				return fmt.Errorf("unknown config key: %q", key)
			}

			cfg, err := config.LoadGlobal()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			val, err := config.GetConfigValue(cfg, key)
			if err != nil {
				return err
			}
			if config.IsSensitiveKey(key) {
				val = config.MaskValue(val)
			}
			fmt.Println(val)
			return nil
		},
	}
}

func configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !config.IsValidKey(key) {
				return fmt.Errorf("unknown config key: %q", key)
			}

			cfg, err := config.LoadGlobal()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if err := config.SetConfigValue(cfg, key, value); err != nil {
				return err
			}
			return config.SaveGlobal(cfg)
		},
	}
}

func configListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configuration values and their origin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadGlobal()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			raw, err := config.LoadRawGlobal()
			if err != nil {
				return fmt.Errorf("read config file: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, kv := range config.ConfigWithOrigin(cfg, raw) {
				val := kv.Value
				if config.IsSensitiveKey(kv.Key) {
					val = config.MaskValue(val)
				}
				fmt.Fprintf(w, "%s\t%s\t(%s)\n", kv.Key, val, kv.Origin)
			}
			return w.Flush()
		},
	}
}
