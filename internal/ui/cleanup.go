package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"plantrack/internal/event"
	"plantrack/internal/schedule"
)

func (a *App) cleanupCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cleanup <days>",
		Short: "Remove events older than a number of days",
		Example: `  plantrack cleanup 90
  plantrack cleanup 30 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[0])
			if err != nil || days < 0 {
				return fmt.Errorf("days must be a non-negative number, got %q", args[0])
			}

			loc, err := a.location()
			if err != nil {
				return err
			}

			ctx := context.Background()
			events, err := a.store.Load(ctx)
			if err != nil {
				return fmt.Errorf("loading schedule: %w", err)
			}

			now := time.Now()
			cutoff := now.AddDate(0, 0, -days)

			kept := make([]event.Event, 0, len(events))
			for _, e := range events {
				if e.End.After(cutoff) {
					kept = append(kept, e)
				}
			}

			removed := len(events) - len(kept)
			if removed == 0 {
				fmt.Printf("No events older than %d days.\n", days)
				return nil
			}

			printDiff(schedule.Compare(events, kept), loc)

			if !yes && !confirm(fmt.Sprintf("Remove %d events?", removed)) {
				fmt.Println(colorWarn.Sprint("Nothing removed"))
				return nil
			}

			if err := a.commit(ctx, kept, now); err != nil {
				return err
			}
			fmt.Printf("Cleaned up %d events older than %d days.\n", removed, days)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
