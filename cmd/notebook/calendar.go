// ABOUTME: Calendar and agenda commands.
// ABOUTME: Draws a month grid and lists events across every page.

package main

import (
	"fmt"
	"time"

	"github.com/harper/notebook/internal/calendar"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month with its events",
	Long: `Show a month grid. Days with events from any calendar block are
highlighted and listed below the grid.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		month, _ := cmd.Flags().GetString("month")
		offset, _ := cmd.Flags().GetInt("offset")

		anchor := time.Now()
		if month != "" {
			parsed, err := time.ParseInLocation("2006-01", month, time.Local)
			if err != nil {
				return fmt.Errorf("invalid month %q, want YYYY-MM", month)
			}
			anchor = parsed
		}
		anchor = calendar.AddMonths(anchor, offset)

		first := calendar.KeyOf(calendar.FirstOfMonth(anchor))
		last := calendar.KeyOf(calendar.AddMonths(anchor, 1))
		events := make(map[models.DayKey]string)
		var inMonth []calendar.AgendaItem
		for _, it := range store.Agenda() {
			if it.Day < first || it.Day >= last {
				continue
			}
			events[it.Day] = it.Text
			inMonth = append(inMonth, it)
		}

		fmt.Print(ui.FormatMonth(anchor, weekStart, events, time.Now()))
		if len(inMonth) > 0 {
			fmt.Println()
			fmt.Print(ui.FormatAgenda(inMonth))
		}
		return nil
	},
}

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "List events from every calendar block",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		items := store.Agenda()
		if !all {
			today := calendar.KeyOf(time.Now())
			upcoming := items[:0]
			for _, it := range items {
				if it.Day >= today {
					upcoming = append(upcoming, it)
				}
			}
			items = upcoming
		}

		if len(items) == 0 {
			fmt.Println("No events.")
			return nil
		}
		fmt.Print(ui.FormatAgenda(items))
		return nil
	},
}

func init() {
	calendarCmd.Flags().String("month", "", "month to show (YYYY-MM), defaults to the current month")
	calendarCmd.Flags().Int("offset", 0, "months to move from --month, e.g. -1 for the previous month")
	agendaCmd.Flags().BoolP("all", "a", false, "include past events")
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(agendaCmd)
}
