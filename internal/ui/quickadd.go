package ui

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"plantrack/internal/dateutil"
	"plantrack/internal/event"
)

func (a *App) quickaddCmd() *cobra.Command {
	var (
		minutes  int
		note     string
		location string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "quickadd <project:task>",
		Short: "Quickly add a booked event starting now",
		Long: `Add a booked event starting at the current time rounded down to the
rounding interval. The duration defaults to the rounding interval.`,
		Example: `  plantrack quickadd acme:support
  plantrack quickadd "acme:incident call" --minutes=45`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			summary, err := event.ParseLabel(args[0])
			if err != nil {
				return err
			}

			loc, err := a.location()
			if err != nil {
				return err
			}

			duration := minutes
			if duration <= 0 {
				duration = a.interval()
			}

			now := time.Now()
			start := dateutil.Round(now.In(loc), a.interval(), false)

			incoming := event.Event{
				ID:       event.NewID(),
				Start:    start.UTC(),
				End:      start.Add(time.Duration(duration) * time.Minute).UTC(),
				Summary:  summary,
				Note:     note,
				Location: location,
				Booked:   true,
			}

			return a.insertEvent(context.Background(), incoming, yes, now)
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Duration in minutes (default: rounding interval)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Optional note for the event")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Optional location for the event")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
