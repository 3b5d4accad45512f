// ABOUTME: Event commands for the day notes stored in calendar blocks.
// ABOUTME: Includes iCalendar export and import.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/harper/notebook/internal/calendar"
	"github.com/harper/notebook/internal/interchange"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage calendar block events",
	Long: `Manage the day notes of a calendar block.

Commands use the first calendar block on the page unless --block gives its position.`,
}

// calendarBlock picks the calendar block named by --block, or the first one.
func calendarBlock(cmd *cobra.Command, page *models.Page) (models.Block, error) {
	pos, _ := cmd.Flags().GetString("block")
	if pos != "" {
		b, err := blockAt(page, pos)
		if err != nil {
			return models.Block{}, err
		}
		if b.Type != models.BlockTypeCalendar {
			return models.Block{}, fmt.Errorf("block %s is a %s block, not calendar", pos, b.Type)
		}
		return b, nil
	}

	id, ok := findBlock(page, models.BlockTypeCalendar)
	if !ok {
		return models.Block{}, fmt.Errorf("page %q has no calendar block", page.Title)
	}
	b, _ := store.Block(page.ID, id)
	return b, nil
}

var eventSetCmd = &cobra.Command{
	Use:   "set <page> <YYYY-MM-DD|today> [text]",
	Short: "Set or clear the note for a day",
	Long:  `Set the note for a day. Omitting the text clears that day.`,
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := resolvePage(args[0])
		if err != nil {
			return err
		}
		block, err := calendarBlock(cmd, page)
		if err != nil {
			return err
		}
		day, err := parseDay(args[1])
		if err != nil {
			return err
		}
		text := ""
		if len(args) == 3 {
			text = args[2]
		}

		store.SetEvent(page.ID, block.ID, day, text)
		if strings.TrimSpace(text) == "" {
			fmt.Println(ui.Success(fmt.Sprintf("Cleared %s", calendar.KeyOf(day))))
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("Set %s", calendar.KeyOf(day))))
		return nil
	},
}

var eventListCmd = &cobra.Command{
	Use:   "list <page>",
	Short: "List the events of a calendar block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := resolvePage(args[0])
		if err != nil {
			return err
		}
		block, err := calendarBlock(cmd, page)
		if err != nil {
			return err
		}

		events := calendar.EventsSorted(block)
		if len(events) == 0 {
			fmt.Println("No events.")
			return nil
		}
		items := make([]calendar.AgendaItem, len(events))
		for i, ev := range events {
			items[i] = calendar.AgendaItem{PageID: page.ID, PageTitle: page.Title, BlockID: block.ID, Event: ev}
		}
		fmt.Print(ui.FormatAgenda(items))
		return nil
	},
}

var eventExportCmd = &cobra.Command{
	Use:   "export <page>",
	Short: "Export a calendar block as iCalendar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath, _ := cmd.Flags().GetString("output")

		page, err := resolvePage(args[0])
		if err != nil {
			return err
		}
		block, err := calendarBlock(cmd, page)
		if err != nil {
			return err
		}

		if outputPath == "" || outputPath == "-" {
			return interchange.EncodeICS(os.Stdout, page.Title, block)
		}

		f, err := os.Create(outputPath) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			return fmt.Errorf("create %s: %w", outputPath, err)
		}
		if err := interchange.EncodeICS(f, page.Title, block); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Exported %d events to %s", len(block.Events), outputPath)))
		return nil
	},
}

var eventImportCmd = &cobra.Command{
	Use:   "import <page> <file.ics>",
	Short: "Import iCalendar events into a calendar block",
	Long: `Import VEVENTs from an iCalendar file. Each event is placed on the local
day it starts; several events on one day are joined. Existing notes for
those days are replaced.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := resolvePage(args[0])
		if err != nil {
			return err
		}
		block, err := calendarBlock(cmd, page)
		if err != nil {
			return err
		}

		f, err := os.Open(args[1]) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		events, err := interchange.DecodeICS(f, time.Local)
		if err != nil {
			return err
		}

		count := 0
		for _, ev := range events {
			day, err := ev.Day.Time(time.Local)
			if err != nil {
				fmt.Println(ui.Warning(fmt.Sprintf("skipping %s: %v", ev.Day, err)))
				continue
			}
			if store.SetEvent(page.ID, block.ID, day, ev.Text) {
				count++
			}
		}
		fmt.Println(ui.Success(fmt.Sprintf("Imported %d events", count)))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{eventSetCmd, eventListCmd, eventExportCmd, eventImportCmd} {
		c.Flags().StringP("block", "b", "", "position of the calendar block")
		eventCmd.AddCommand(c)
	}
	eventExportCmd.Flags().StringP("output", "o", "", "output path")
	rootCmd.AddCommand(eventCmd)
}
