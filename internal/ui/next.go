package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"plantrack/internal/event"
	"plantrack/internal/schedule"
)

func (a *App) nextCmd() *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "next <project:task>",
		Short: "Show the next upcoming event matching a label",
		Long: `Find the earliest future event whose label matches exactly and whose
span is longer than the requested duration, and print the sub-interval
at its start. Read-only; the schedule is not changed.`,
		Example: `  plantrack next acme:support
  plantrack next "acme:api review" --minutes=30`,
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

			events, err := a.store.Load(context.Background())
			if err != nil {
				return fmt.Errorf("loading schedule: %w", err)
			}

			now := time.Now()
			start, end, err := schedule.FindNext(events, summary, time.Duration(duration)*time.Minute, now)
			if errors.Is(err, schedule.ErrNoUpcomingMatch) {
				return fmt.Errorf("%w: %s (longer than %dm)", err, summary, duration)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Next %s: %s - %s\n",
				colorProject.Sprint(summary),
				start.In(loc).Format("2006-01-02 15:04"),
				end.In(loc).Format("15:04"))

			return nil
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Required duration in minutes (default: rounding interval)")

	return cmd
}
