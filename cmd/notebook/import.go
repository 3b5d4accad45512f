// ABOUTME: Import command for restoring pages from a YAML backup.
// ABOUTME: Merges by default; --replace swaps the whole notebook.

package main

import (
	"fmt"
	"os"

	"github.com/harper/notebook/internal/interchange"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import pages",
	Long: `Import pages from a YAML export.

By default imported pages are added, and pages whose ID already exists are
replaced by the imported copy. With --replace the notebook is replaced entirely.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		replace, _ := cmd.Flags().GetBool("replace")

		f, err := os.Open(args[0]) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		imported, err := interchange.DecodeYAML(f)
		if err != nil {
			return err
		}

		pages := imported
		if !replace {
			pages = mergePages(store.Pages(), imported)
		}
		if err := store.ReplaceAll(pages); err != nil {
			return fmt.Errorf("import pages: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Imported %d pages", len(imported))))
		return nil
	},
}

// mergePages keeps existing order, swaps in imported pages with matching
// ids, and appends the rest.
func mergePages(existing, imported []*models.Page) []*models.Page {
	byID := make(map[string]*models.Page, len(imported))
	for _, p := range imported {
		byID[p.ID.String()] = p
	}

	merged := make([]*models.Page, 0, len(existing)+len(imported))
	for _, p := range existing {
		if replacement, ok := byID[p.ID.String()]; ok {
			merged = append(merged, replacement)
			delete(byID, p.ID.String())
			continue
		}
		merged = append(merged, p)
	}
	for _, p := range imported {
		if _, pending := byID[p.ID.String()]; pending {
			merged = append(merged, p)
			delete(byID, p.ID.String())
		}
	}
	return merged
}

func init() {
	importCmd.Flags().Bool("replace", false, "replace the whole notebook")
	rootCmd.AddCommand(importCmd)
}
