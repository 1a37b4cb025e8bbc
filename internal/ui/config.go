package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"plantrack/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runConfigInteractive(path)
		},
	}
}

func runConfigInteractive(path string) error {
	fmt.Printf("Config file: %s\n\n", path)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(path)
	if os.IsNotExist(fileErr) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", path)
	}

	printConfig(cfg)

	if !confirm("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Schedule.Timezone = promptValue(reader, "Timezone (empty for local)", cfg.Schedule.Timezone)
	cfg.Schedule.Rounding = promptInt(reader, "Rounding interval (minutes)", cfg.Schedule.Rounding)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.Export.ICSPath = promptValue(reader, "Calendar export path", cfg.Export.ICSPath)
	cfg.Export.IncludeNotes = promptBool(reader, "Include notes in export", cfg.Export.IncludeNotes)
	cfg.Export.PushCommand = promptValue(reader, "Push command (empty to disable)", cfg.Export.PushCommand)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println(colorHeader.Sprint("Current configuration:"))
	tz := cfg.Schedule.Timezone
	if tz == "" {
		tz = "(local)"
	}
	fmt.Printf("  Timezone:     %s\n", tz)
	fmt.Printf("  Rounding:     %d minutes\n", cfg.Schedule.Rounding)
	fmt.Printf("  Database:     %s\n", cfg.Storage.DBPath)
	fmt.Printf("  Calendar:     %s\n", cfg.Export.ICSPath)
	fmt.Printf("  Export notes: %t\n", cfg.Export.IncludeNotes)
	if cfg.Export.PushCommand != "" {
		fmt.Printf("  Push command: %s\n", cfg.Export.PushCommand)
	}
}

func promptValue(reader *bufio.Reader, label, current string) string {
	fmt.Printf("%s [%s]: ", label, current)
	input, err := reader.ReadString('\n')
	if err != nil {
		return current
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	input := promptValue(reader, label, strconv.Itoa(current))
	n, err := strconv.Atoi(input)
	if err != nil {
		return current
	}
	return n
}

func promptBool(reader *bufio.Reader, label string, current bool) bool {
	input := promptValue(reader, label, strconv.FormatBool(current))
	b, err := strconv.ParseBool(input)
	if err != nil {
		return current
	}
	return b
}
