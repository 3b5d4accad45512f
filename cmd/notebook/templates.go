// ABOUTME: Templates command listing the page templates.

package main

import (
	"fmt"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:         "templates",
	Short:       "List page templates",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(ui.FormatTemplateList(models.Templates()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
