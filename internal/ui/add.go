package ui

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"plantrack/internal/dateutil"
	"plantrack/internal/event"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date     string
		note     string
		location string
		booked   bool
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "add <project:task> <HH:MM-HH:MM>",
		Short: "Add a new event to the schedule",
		Long: `Add a new event to the schedule.

The new event wins: any existing event it overlaps is split around it,
and the remaining fragments are shown for confirmation before saving.
Start times round down and end times round up to the rounding interval.`,
		Example: `  plantrack add "acme:api review" 14:30-15:00
  plantrack add acme:standup 09:00-09:15 --date=2024-03-16 --booked`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			summary, err := event.ParseLabel(args[0])
			if err != nil {
				return err
			}

			loc, err := a.location()
			if err != nil {
				return err
			}

			now := time.Now()
			start, end, err := dateutil.ParseRange(args[1], date, a.interval(), loc, now)
			if err != nil {
				return err
			}

			incoming := event.Event{
				ID:       event.NewID(),
				Start:    start,
				End:      end,
				Summary:  summary,
				Note:     note,
				Location: location,
				Booked:   booked,
			}

			return a.insertEvent(context.Background(), incoming, yes, now)
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Optional note for the event")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Optional location for the event")
	cmd.Flags().BoolVarP(&booked, "booked", "b", false, "Mark event as booked")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
