package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"plantrack/internal/dateutil"
	"plantrack/internal/event"
	"plantrack/internal/schedule"
)

func (a *App) todoCmd() *cobra.Command {
	var (
		minutes  int
		until    string
		days     int
		note     string
		location string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "todo <project:task>",
		Short: "Schedule a task in the first free slot",
		Long: `Find the first free slot that fits the requested duration and add a
planned event there.

The search starts at the current time rounded up to the rounding
interval and steps forward by the duration until the window is
exhausted. The window ends at --until today, or after --days days.`,
		Example: `  plantrack todo acme:expenses --minutes=30
  plantrack todo "acme:write report" --minutes=90 --until=18:00
  plantrack todo acme:review --minutes=60 --days=3`,
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
			today, err := dateutil.ParseDate("", now, loc)
			if err != nil {
				return err
			}

			var windowEnd time.Time
			if until != "" {
				hour, minute, err := dateutil.ParseClock(until)
				if err != nil {
					return err
				}
				windowEnd = dateutil.ClockOn(today, hour, minute)
			} else {
				windowEnd = today.AddDate(0, 0, days)
			}

			ctx := context.Background()
			events, err := a.store.Load(ctx)
			if err != nil {
				return fmt.Errorf("loading schedule: %w", err)
			}

			start, end, err := schedule.FindSlot(events, now, windowEnd,
				time.Duration(duration)*time.Minute, a.interval(), now)
			if err != nil {
				return fmt.Errorf("%w: nothing free before %s", err, windowEnd.In(loc).Format("2006-01-02 15:04"))
			}

			fmt.Printf("First free slot: %s - %s\n",
				start.In(loc).Format("2006-01-02 15:04"),
				end.In(loc).Format("15:04"))

			incoming := event.Event{
				ID:       event.NewID(),
				Start:    start.UTC(),
				End:      end.UTC(),
				Summary:  summary,
				Note:     note,
				Location: location,
				Booked:   false,
			}

			return a.insertEvent(ctx, incoming, yes, now)
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Duration in minutes (default: rounding interval)")
	cmd.Flags().StringVarP(&until, "until", "u", "", "Search no later than this time today (HH:MM)")
	cmd.Flags().IntVar(&days, "days", 1, "Number of days to search when --until is not set")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Optional note for the event")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Optional location for the event")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
