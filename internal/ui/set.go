package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"plantrack/internal/dateutil"
	"plantrack/internal/event"
)

func (a *App) setCmd() *cobra.Command {
	var (
		note     string
		location string
		booked   bool
		timespan string
		date     string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Modify an existing event",
		Long: `Modify an event's attributes. Note, location, and booked change the
event in place and preserve its id. Changing the timespan replaces the
event: the old one is removed and a fresh event re-enters overlap
resolution, so it gets a new id.`,
		Example: `  plantrack set 3f1f... --booked
  plantrack set 3f1f... --note="moved by client" --timespan=15:00-16:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			ctx := context.Background()

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

			updated := events[idx]
			if cmd.Flags().Changed("note") {
				updated.Note = note
			}
			if cmd.Flags().Changed("location") {
				updated.Location = location
			}
			if cmd.Flags().Changed("booked") {
				updated.Booked = booked
			}

			now := time.Now()

			// A timespan change replaces the event and re-enters the
			// resolver, so the result gets a fresh identity.
			if timespan != "" {
				loc, err := a.location()
				if err != nil {
					return err
				}
				start, end, err := dateutil.ParseRange(timespan, date, a.interval(), loc, now)
				if err != nil {
					return err
				}

				replacement := updated
				replacement.ID = event.NewID()
				replacement.Start = start
				replacement.End = end

				remaining := make([]event.Event, 0, len(events)-1)
				remaining = append(remaining, events[:idx]...)
				remaining = append(remaining, events[idx+1:]...)

				if err := a.insertInto(ctx, remaining, replacement, yes, now); err != nil {
					return err
				}
				fmt.Printf("Event %s replaced by %s\n", colorMuted.Sprint(id), colorMuted.Sprint(replacement.ID))
				return nil
			}

			events[idx] = updated
			if err := a.commit(ctx, events, now); err != nil {
				return err
			}
			fmt.Printf("Event %s modified\n", colorBooked.Sprint(id))

			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "New note (empty clears it)")
	cmd.Flags().StringVarP(&location, "location", "l", "", "New location (empty clears it)")
	cmd.Flags().BoolVarP(&booked, "booked", "b", false, "Mark event as booked or planned")
	cmd.Flags().StringVarP(&timespan, "timespan", "s", "", "New timespan (HH:MM-HH:MM)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date for the new timespan (YYYY-MM-DD, default: today)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
