// Package ui implements the plantrack command-line interface.
package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"plantrack/internal/config"
	"plantrack/internal/event"
	"plantrack/internal/store"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  event.Store
	config *config.Config
	root   *cobra.Command

	configPath string
	rounding   int    // flag override, 0 means use config
	timezone   string // flag override, empty means use config
	noColor    bool
}

// NewApp creates a new CLI application. Both store and cfg may be nil, in
// which case they are resolved from the config file before a command runs.
func NewApp(st event.Store, cfg *config.Config) *App {
	a := &App{store: st, config: cfg}

	a.root = &cobra.Command{
		Use:   "plantrack",
		Short: "A CLI tool for tracking planned and booked time",
		Long: `Plantrack keeps a personal schedule of time-boxed events, each labelled
project:task. New events take priority: inserting one splits whatever it
overlaps, and adjacent events with identical attributes are merged back
together, so the stored schedule never contains ambiguous overlaps.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	a.root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to the config file")
	a.root.PersistentFlags().IntVarP(&a.rounding, "rounding", "r", 0, "Rounding interval in minutes (overrides config)")
	a.root.PersistentFlags().StringVarP(&a.timezone, "timezone", "t", "", "IANA timezone for display (overrides config)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.quickaddCmd())
	a.root.AddCommand(a.todoCmd())
	a.root.AddCommand(a.nextCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.freeCmd())
	a.root.AddCommand(a.reportCmd())
	a.root.AddCommand(a.currentCmd())
	a.root.AddCommand(a.setCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.cleanupCmd())
	a.root.AddCommand(a.pushCmd())

	return a
}

// setup resolves config and storage before a command runs.
func (a *App) setup(cmd *cobra.Command) error {
	if a.noColor {
		DisableColor()
	}

	if a.config == nil {
		path := a.configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		cfg, err := config.LoadFrom(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.config = cfg
	}

	// Commands that never touch the schedule don't need the store.
	switch cmd.Name() {
	case "version", "config":
		return nil
	}

	if a.store == nil {
		st, err := store.New(a.config.Storage.DBPath)
		if err != nil {
			return fmt.Errorf("opening schedule database: %w", err)
		}
		a.store = st
	}

	return nil
}

// interval returns the effective rounding interval in minutes.
func (a *App) interval() int {
	if a.rounding > 0 {
		return a.rounding
	}
	return a.config.Schedule.Rounding
}

// location returns the effective display timezone.
func (a *App) location() (*time.Location, error) {
	if a.timezone != "" {
		loc, err := time.LoadLocation(a.timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: use an IANA name like America/New_York", a.timezone)
		}
		return loc, nil
	}
	return a.config.Location()
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("plantrack %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the underlying store, if one was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
