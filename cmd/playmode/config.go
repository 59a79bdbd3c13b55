package main

import (
	"fmt"

	"github.com/cargorun/playmode/settings"
	"github.com/spf13/cobra"
)

func ConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "manage the settings file",
	}
	c.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "write the default settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.SaveDefault(configPath); err != nil {
				return fmt.Errorf("failed writing %s: %w", configPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote default settings to %s\n", configPath)
			return nil
		},
	})
	return c
}
