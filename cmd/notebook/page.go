// ABOUTME: Page commands for creating, listing, showing, renaming, and removing pages.
// ABOUTME: Pages are addressed by an ID prefix of at least six characters.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/harper/notebook/internal/interchange"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Manage pages",
}

var pageAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a page",
	Long: `Create a page, optionally from a template.

Templates: blank, todo, calendar, meeting, journal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		templateName, _ := cmd.Flags().GetString("template")
		tmpl, err := models.ParseTemplate(templateName)
		if err != nil {
			return err
		}

		title := ""
		if len(args) == 1 {
			title = args[0]
		}
		page := store.AddPage(title, tmpl)
		fmt.Println(ui.Success(fmt.Sprintf("Created page %s %q", page.ID.String()[:6], page.Title)))
		return nil
	},
}

var pageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		pages := store.Pages()
		if len(pages) == 0 {
			fmt.Println("No pages found.")
			return nil
		}
		for _, page := range pages {
			fmt.Print(ui.FormatPageListItem(page))
		}
		return nil
	},
}

var pageShowCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a page and its blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := resolvePage(args[0])
		if err != nil {
			return err
		}

		if rendered, _ := cmd.Flags().GetBool("markdown"); rendered {
			out, err := ui.FormatMarkdown(interchange.Markdown(page))
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		}
		fmt.Print(ui.FormatPage(page))
		return nil
	},
}

var pageRenameCmd = &cobra.Command{
	Use:   "rename <id-prefix> <title>",
	Short: "Rename a page",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := resolvePage(args[0])
		if err != nil {
			return err
		}
		store.RenamePage(page.ID, args[1])
		renamed, _ := store.Page(page.ID)
		fmt.Println(ui.Success(fmt.Sprintf("Renamed page %s to %q", page.ID.String()[:6], renamed.Title)))
		return nil
	},
}

var pageRmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove a page",
	Long:  `Delete a page and all its blocks.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		page, err := resolvePage(args[0])
		if err != nil {
			return err
		}

		if !force {
			fmt.Printf("Delete page %q (%s)? [y/N] ", page.Title, page.ID.String()[:6])
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		store.DeletePage(page.ID)
		fmt.Println(ui.Success(fmt.Sprintf("Deleted page %s", page.ID.String()[:6])))
		return nil
	},
}

func init() {
	pageAddCmd.Flags().StringP("template", "t", "blank", "page template")
	pageShowCmd.Flags().BoolP("markdown", "m", false, "render as markdown")
	pageRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	pageCmd.AddCommand(pageAddCmd)
	pageCmd.AddCommand(pageListCmd)
	pageCmd.AddCommand(pageShowCmd)
	pageCmd.AddCommand(pageRenameCmd)
	pageCmd.AddCommand(pageRmCmd)
	rootCmd.AddCommand(pageCmd)
}
