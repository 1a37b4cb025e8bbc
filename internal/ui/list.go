package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"plantrack/internal/dateutil"
	"plantrack/internal/event"
)

func (a *App) listCmd() *cobra.Command {
	var (
		days int
		date string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled events grouped by day",
		Long: `List events around a date, grouped by day, with free gaps between
events and a marker on the event covering the current time.`,
		Example: `  plantrack list
  plantrack list --days=7
  plantrack list --date=2024-03-16`,
		RunE: func(_ *cobra.Command, _ []string) error {
			loc, err := a.location()
			if err != nil {
				return err
			}

			now := time.Now()
			center, err := dateutil.ParseDate(date, now, loc)
			if err != nil {
				return err
			}

			events, err := a.store.Load(context.Background())
			if err != nil {
				return fmt.Errorf("loading schedule: %w", err)
			}

			if len(events) == 0 {
				fmt.Println(colorWarn.Sprint("No events found"))
				return nil
			}

			fmt.Printf("Showing events within ±%s of %s in timezone: %s\n",
				colorWarn.Sprintf("%d days", days),
				center.Format("2006-01-02"),
				colorBooked.Sprint(loc.String()))

			today := now.In(loc)
			for offset := -days; offset <= days; offset++ {
				day := center.AddDate(0, 0, offset)
				heading := day.Format("2006-01-02 - Mon")
				if day.Year() == today.Year() && day.YearDay() == today.YearDay() {
					fmt.Println(colorToday.Sprint(heading))
				} else {
					fmt.Println(colorDay.Sprint(heading))
				}

				forDay := eventsOnDay(events, day, loc)
				if len(forDay) == 0 {
					fmt.Printf("    %s\n", colorMuted.Sprint("No events"))
				} else {
					printDayEvents(forDay, loc, now)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 4, "Number of days to look back and forward")
	cmd.Flags().StringVar(&date, "date", "", "Date for the listing (YYYY-MM-DD, default: today)")

	return cmd
}

// eventsOnDay returns the events whose start falls on the given local day.
func eventsOnDay(events []event.Event, day time.Time, loc *time.Location) []event.Event {
	var result []event.Event
	for _, e := range events {
		start := e.Start.In(loc)
		if start.Year() == day.Year() && start.YearDay() == day.YearDay() {
			result = append(result, e)
		}
	}
	event.SortByStart(result)
	return result
}
