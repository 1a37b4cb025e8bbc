package ui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"plantrack/internal/ics"
)

func (a *App) pushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Regenerate the calendar export and run the push command",
		Long: `Regenerate the iCalendar file and, if a push_command is configured,
run it through the shell. Typically used to upload the calendar file.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			events, err := a.store.Load(context.Background())
			if err != nil {
				return fmt.Errorf("loading schedule: %w", err)
			}

			exported, err := ics.WriteFile(a.config.Export.ICSPath, events, time.Now(), a.config.Export.IncludeNotes)
			if err != nil {
				return err
			}
			fmt.Printf("%d events exported to %s\n", exported, a.config.Export.ICSPath)

			pushCmd := a.config.Export.PushCommand
			if pushCmd == "" {
				return nil
			}

			fmt.Printf("Executing: %s\n", pushCmd)
			sh := exec.Command("sh", "-c", pushCmd)
			sh.Stdout = os.Stdout
			sh.Stderr = os.Stderr
			if err := sh.Run(); err != nil {
				return fmt.Errorf("push command failed: %w", err)
			}

			return nil
		},
	}
}
