// ABOUTME: Export command for backing up the notebook.
// ABOUTME: Supports YAML and markdown export formats.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/notebook/internal/interchange"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export pages",
	Long:  `Export every page, or a single page, to YAML or a directory of markdown files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		pagePrefix, _ := cmd.Flags().GetString("page")

		pages := store.Pages()
		if pagePrefix != "" {
			page, err := resolvePage(pagePrefix)
			if err != nil {
				return err
			}
			pages = []*models.Page{page}
		}

		switch format {
		case "yaml":
			return exportYAML(pages, outputPath)
		case "md":
			return exportMarkdown(pages, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func exportYAML(pages []*models.Page, outputPath string) error {
	if outputPath == "" || outputPath == "-" {
		return interchange.EncodeYAML(os.Stdout, pages)
	}

	f, err := os.Create(outputPath) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return fmt.Errorf("create %s: %w", outputPath, err)
	}
	if err := interchange.EncodeYAML(f, pages); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d pages to %s", len(pages), outputPath)))
	return nil
}

func exportMarkdown(pages []*models.Page, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return err
	}

	for _, p := range pages {
		filename := fmt.Sprintf("%s-%s.md", interchange.SanitizeFilename(p.Title), p.ID.String()[:6])
		f, err := os.Create(filepath.Join(outputDir, filename)) //nolint:gosec // Path built from sanitized title
		if err != nil {
			return err
		}
		if err := interchange.WriteMarkdown(f, p); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d pages to %s", len(pages), outputDir)))
	return nil
}

func init() {
	exportCmd.Flags().StringP("format", "f", "yaml", "export format (yaml|md)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	exportCmd.Flags().StringP("page", "p", "", "single page ID to export")
	rootCmd.AddCommand(exportCmd)
}
