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

func (a *App) deleteCmd() *cobra.Command {
	var (
		timespan string
		date     string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event, wholly or by subrange",
		Long: `Delete an event by id. With --range, only the given timespan is carved
out of the event; the parts outside the range survive as new fragments.`,
		Example: `  plantrack delete 3f1f...
  plantrack delete 3f1f... --range=12:00-13:00 --date=2024-03-16`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id := args[0]
			ctx := context.Background()

			loc, err := a.location()
			if err != nil {
				return err
			}

			events, err := a.store.Load(ctx)
			if err != nil {
				return fmt.Errorf("loading schedule: %w", err)
			}

			idx := -1
			for i, e := range events {
				if e.ID == id {
					idx = i
					break
				}
			}
			if idx < 0 {
				return fmt.Errorf("%w: %s", event.ErrNotFound, id)
			}

			now := time.Now()

			if timespan != "" {
				start, end, err := dateutil.ParseRange(timespan, date, a.interval(), loc, now)
				if err != nil {
					return err
				}

				// Carve the range out of the one target event only.
				target := []event.Event{events[idx]}
				fragments, _ := schedule.Carve(target, start, end)

				result := make([]event.Event, 0, len(events)-1+len(fragments))
				result = append(result, events[:idx]...)
				result = append(result, events[idx+1:]...)
				result = append(result, fragments...)
				result = schedule.Compact(result)

				diff := schedule.Compare(events, result)
				printDiff(diff, loc)

				if !yes && !confirm("Apply these changes?") {
					fmt.Println(colorWarn.Sprint("Nothing deleted"))
					return nil
				}

				if err := a.commit(ctx, result, now); err != nil {
					return err
				}
				fmt.Printf("Range %s removed from event %s\n", timespan, colorBooked.Sprint(id))
				return nil
			}

			result := make([]event.Event, 0, len(events)-1)
			result = append(result, events[:idx]...)
			result = append(result, events[idx+1:]...)

			if err := a.commit(ctx, result, now); err != nil {
				return err
			}
			fmt.Printf("Event %s deleted\n", colorBooked.Sprint(id))

			return nil
		},
	}

	cmd.Flags().StringVar(&timespan, "range", "", "Only remove this timespan (HH:MM-HH:MM)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date for --range (YYYY-MM-DD, default: today)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
