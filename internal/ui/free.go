package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"plantrack/internal/dateutil"
	"plantrack/internal/schedule"
)

func (a *App) freeCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "free <HH:MM-HH:MM>",
		Short: "Check whether a time slot is free",
		Long: `Check a timespan against the schedule. Conflicts are classified as
booked when any conflicting event is booked, otherwise planned. The
rest of the day's events are listed afterwards either way.`,
		Example: `  plantrack free 14:00-15:00
  plantrack free 09:00-12:00 --date=2024-03-16`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			loc, err := a.location()
			if err != nil {
				return err
			}

			now := time.Now()
			start, end, err := dateutil.ParseRange(args[0], date, a.interval(), loc, now)
			if err != nil {
				return err
			}

			events, err := a.store.Load(context.Background())
			if err != nil {
				return fmt.Errorf("loading schedule: %w", err)
			}

			startLocal := start.In(loc)
			endLocal := end.In(loc)
			slot := fmt.Sprintf("Slot %s - %s on %s",
				startLocal.Format("15:04"), endLocal.Format("15:04"), startLocal.Format("2006-01-02"))

			conflicts := schedule.Conflicts(events, start, end)
			if len(conflicts) == 0 {
				fmt.Println(colorFree.Sprintf("\n%s is free", slot))
			} else {
				booked := false
				for _, e := range conflicts {
					if e.Booked {
						booked = true
						break
					}
				}
				if booked {
					fmt.Println(colorMissed.Sprintf("\n%s is already booked", slot))
				} else {
					fmt.Println(colorWarn.Sprintf("\n%s is already planned", slot))
				}
				fmt.Println(colorMissed.Sprint("Conflicting events:"))
				for _, e := range conflicts {
					printEvent(e, loc, now)
				}
			}

			forDay := eventsOnDay(events, startLocal, loc)
			if len(forDay) == 0 {
				fmt.Println(colorFree.Sprintf("\nNo events on %s", startLocal.Format("2006-01-02")))
				return nil
			}

			fmt.Println(colorDay.Sprintf("\nAll events on %s:", startLocal.Format("2006-01-02")))
			printDayEvents(forDay, loc, now)

			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Date (YYYY-MM-DD, default: today)")

	return cmd
}
