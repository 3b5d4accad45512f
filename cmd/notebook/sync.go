// ABOUTME: Sync subcommand for Charm cloud integration.
// ABOUTME: Provides status, link, now, repair, reset, and wipe commands for Charm sync.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harper/notebook/internal/storage"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Manage Charm cloud sync",
	Long: `Sync your notebook to the Charm cloud.

Set 'backend: charm' in the config file to store pages in Charm KV.
Charm uses SSH key authentication - no passwords needed.
Data syncs automatically after each change when charm.auto_sync is on.

Commands:
  status  - Show sync configuration and connection status
  link    - Connect this device to Charm cloud
  now     - Sync immediately
  repair  - Repair database corruption issues
  reset   - Reset local sync data (keeps cloud data)
  wipe    - Delete all synced data and start fresh`,
}

func charmBackend() *storage.CharmBackend {
	return storage.NewCharmBackend(
		storage.WithCharmDB(cfg.Charm.DB),
		storage.WithCharmHost(cfg.Charm.Host),
		storage.WithAutoSync(cfg.Charm.AutoSync),
	)
}

func confirm(prompt, word string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if word == "" {
		return answer == "y" || answer == "yes"
	}
	return answer == word
}

var syncStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show sync status",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := charmBackend()

		fmt.Println("Charm Sync Status")
		fmt.Println(strings.Repeat("-", 40))

		if cfg.Backend == storage.KindCharm {
			fmt.Printf("Backend:   %s\n", color.GreenString("charm"))
		} else {
			fmt.Printf("Backend:   %s\n", color.YellowString("%s (charm not in use)", cfg.Backend))
		}
		fmt.Printf("Database:  %s\n", backend.DBName())
		if cfg.Charm.Host != "" {
			fmt.Printf("Host:      %s\n", cfg.Charm.Host)
		} else {
			fmt.Printf("Host:      %s\n", color.New(color.Faint).Sprint("(default)"))
		}

		if cfg.Charm.AutoSync {
			fmt.Printf("Auto-sync: %s\n", color.GreenString("enabled"))
		} else {
			fmt.Printf("Auto-sync: %s\n", color.YellowString("disabled"))
		}

		if last := backend.LastSyncTime(); !last.IsZero() {
			fmt.Printf("Last sync: %s\n", last.Format("2006-01-02 15:04:05"))
		}

		user, err := backend.User()
		fmt.Println()
		if err == nil && user != nil {
			fmt.Printf("User ID:   %s\n", user.CharmID)
			fmt.Printf("Name:      %s\n", valueOrDefault(user.Name, "(not set)"))
			fmt.Printf("Status:    %s\n", color.GreenString("connected"))
		} else {
			fmt.Printf("Status:    %s\n", color.YellowString("not linked"))
			fmt.Println("\nRun 'notebook sync link' to connect to Charm cloud.")
		}
		return nil
	},
}

var syncLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Connect to Charm cloud",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := charmBackend().Link()
		if err != nil {
			return err
		}

		color.Green("\n✓ Linked to Charm cloud")
		fmt.Printf("  User ID: %s\n", user.CharmID)
		if user.Name != "" {
			fmt.Printf("  Name:    %s\n", user.Name)
		}
		if cfg.Backend != storage.KindCharm {
			fmt.Println("\nSet 'backend: charm' in your config to store pages in Charm.")
		}
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:         "now",
	Short:       "Sync immediately",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := charmBackend().Sync(); err != nil {
			return err
		}
		color.Green("✓ Synced")
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:         "repair",
	Short:       "Repair database corruption issues",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		fmt.Println("Repairing database...")
		result, err := charmkv.Repair(charmBackend().DBName(), force)
		if err != nil {
			return fmt.Errorf("repair failed: %w", err)
		}

		fmt.Println("\nRepair Results:")
		if result.WalCheckpointed {
			fmt.Println("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			fmt.Println("  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			color.Green("  ✓ Integrity check passed")
		} else {
			color.Red("  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			fmt.Println("  ✓ Database vacuumed")
		}

		if !result.IntegrityOK {
			color.Yellow("\n⚠ Repair completed but integrity issues remain")
			fmt.Println("Consider running 'notebook sync reset' or 'notebook sync wipe'")
		}
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Reset local sync data",
	Long:        `Reset the local KV database while keeping cloud data intact.`,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will reset local sync data.")
		fmt.Println("Cloud data will be preserved and re-synced.")
		if !confirm("\nContinue? [y/N]: ", "") {
			fmt.Println("Aborted.")
			return nil
		}

		if err := charmBackend().Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		color.Green("✓ Local sync data reset")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:         "wipe",
	Short:       "Wipe all sync data and start fresh",
	Long:        `Delete all synced data from Charm cloud and the local KV store.`,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will DELETE all sync data:")
		fmt.Println("  - All pages in Charm cloud")
		fmt.Println("  - Local KV database")
		fmt.Println()
		color.Yellow("This cannot be undone!")
		if !confirm("\nType 'wipe' to confirm: ", "wipe") {
			fmt.Println("Aborted.")
			return nil
		}

		result, err := charmkv.Wipe(charmBackend().DBName())
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		fmt.Println("\nWipe Results:")
		if result.CloudBackupsDeleted > 0 {
			fmt.Printf("  ✓ Deleted %d cloud backups\n", result.CloudBackupsDeleted)
		}
		if result.LocalFilesDeleted > 0 {
			fmt.Printf("  ✓ Deleted %d local files\n", result.LocalFilesDeleted)
		}
		color.Green("\n✓ All sync data wiped")
		return nil
	},
}

func init() {
	syncRepairCmd.Flags().Bool("force", false, "Force repair even if integrity check fails")

	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)

	rootCmd.AddCommand(syncCmd)
}
