package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func (a *App) currentCmd() *cobra.Command {
	var copyLabel bool

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the event covering the current time",
		Example: `  plantrack current
  plantrack current --copy`,
		RunE: func(_ *cobra.Command, _ []string) error {
			events, err := a.store.Load(context.Background())
			if err != nil {
				return fmt.Errorf("loading schedule: %w", err)
			}

			now := time.Now()
			for _, e := range events {
				if !e.Covers(now) {
					continue
				}
				fmt.Printf("🗓 %s\n", e.Summary)
				if copyLabel {
					if err := clipboard.WriteAll(e.Summary); err != nil {
						return fmt.Errorf("copying to clipboard: %w", err)
					}
				}
				return nil
			}

			fmt.Println("🗓 No event")
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyLabel, "copy", false, "Copy the project:task label to the clipboard")

	return cmd
}
