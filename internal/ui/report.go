package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"plantrack/internal/report"
)

func (a *App) reportCmd() *cobra.Command {
	var (
		month  int
		year   int
		target float64
	)

	cmd := &cobra.Command{
		Use:   "report <project>",
		Short: "Generate a monthly report for a project",
		Long: `Sum durations per task for one project in one month, split into booked
and planned time. With --target, the total is compared against a target
in fractional hours and the overrun or underrun is shown.`,
		Example: `  plantrack report acme
  plantrack report acme --month=3 --year=2024 --target=40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project := args[0]

			loc, err := a.location()
			if err != nil {
				return err
			}

			now := time.Now().In(loc)
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}

			var targetHours *float64
			if cmd.Flags().Changed("target") {
				targetHours = &target
			}

			events, err := a.store.Load(context.Background())
			if err != nil {
				return fmt.Errorf("loading schedule: %w", err)
			}

			r := report.Aggregate(events, project, year, time.Month(month), loc, targetHours)
			printReport(r, loc, now)

			return nil
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "Reporting month (default: current month)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Reporting year (default: current year)")
	cmd.Flags().Float64VarP(&target, "target", "T", 0, "Target time in hours (e.g. 10.5)")

	return cmd
}

func printReport(r report.Report, loc *time.Location, now time.Time) {
	width := min(termWidth(), 60)
	rule := strings.Repeat("-", width)

	fmt.Println(rule)
	fmt.Println(colorHeader.Sprintf("Report for project: %s", r.Project))
	fmt.Println(colorWarn.Sprintf("Month/Year: %d/%d", r.Month, r.Year))
	fmt.Println(colorWarn.Sprintf("Timezone: %s", loc.String()))
	fmt.Println(colorMuted.Sprint(rule))
	fmt.Println()

	if r.Empty() {
		fmt.Println(colorWarn.Sprintf("No events found for project %s in %d/%d", r.Project, r.Month, r.Year))
		return
	}

	for _, t := range r.Tasks {
		fmt.Println(colorBooked.Sprintf("Task: %s", t.Task))
		fmt.Printf("  Total time: %s\n", formatDuration(t.Total))
		for _, e := range t.Events {
			fmt.Printf("    %s - %s [%s] %s (%s)\n",
				e.Start.In(loc).Format("2006-01-02 15:04"),
				e.End.In(loc).Format("15:04"),
				statusSymbol(e, now),
				e.Note,
				colorMuted.Sprint(e.ID),
			)
		}
		fmt.Println()
	}

	fmt.Println(colorWarn.Sprint("Summary"))
	fmt.Printf("  %s\n", colorHeader.Sprintf("Total time  : %s", formatDuration(r.Total)))
	fmt.Printf("  %s\n", colorPlanned.Sprintf("Planned time: %s", formatDuration(r.Planned)))
	fmt.Printf("  %s\n", colorBooked.Sprintf("Booked time : %s", formatDuration(r.Booked)))

	if v := r.Variance; v != nil {
		fmt.Printf("  Target time : %s\n", formatDuration(v.Target))
		if v.Diff > 0 {
			fmt.Printf("  %s (%.1f%%)\n", colorBooked.Sprintf("Overrun     : %s", formatDuration(v.Diff)), v.Percent)
		} else {
			fmt.Printf("  %s (%.1f%%)\n", colorMissed.Sprintf("Underrun    : %s", formatDuration(-v.Diff)), v.Percent)
		}
	}
	fmt.Println()
}
