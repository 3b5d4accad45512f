// ABOUTME: Config command for showing and writing the notebook configuration.

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harper/notebook/internal/config"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize configuration",
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show the effective configuration",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint).SprintFunc()

		fmt.Printf("Config:      %s\n", config.ConfigPath())
		fmt.Printf("Backend:     %s\n", cfg.Backend)
		fmt.Printf("Data dir:    %s\n", cfg.DataDir)
		fmt.Printf("Codec:       %s\n", cfg.Codec)
		fmt.Printf("Storage key: %s\n", cfg.StorageKey)
		fmt.Printf("Undo window: %s\n", cfg.UndoWindow)
		fmt.Printf("Week start:  %s\n", cfg.WeekStart)
		fmt.Printf("Log level:   %s\n", cfg.LogLevel)
		if cfg.Backend == "charm" {
			fmt.Printf("Charm host:  %s\n", valueOrDefault(cfg.Charm.Host, faint("(default)")))
			fmt.Printf("Charm db:    %s\n", cfg.Charm.DB)
			fmt.Printf("Auto-sync:   %t\n", cfg.Charm.AutoSync)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write the effective configuration to the config file",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := config.ConfigPath()

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
		if err := config.Save(cfg, path); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wrote %s", path)))
		return nil
	},
}

// valueOrDefault returns fallback if the string is empty.
func valueOrDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
