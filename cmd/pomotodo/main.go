// Package main is the entry point for the pomotodo application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"pomotodo/internal/config"
	"pomotodo/internal/notify"
	"pomotodo/internal/sound"
	"pomotodo/internal/storage"
	"pomotodo/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `pomotodo - A Pomodoro timer and to-do list for your terminal

USAGE:
    pomotodo [OPTIONS]
    pomotodo <command> [ARGS]

COMMANDS:
    backup           Create a backup of all data
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Generate a daily focus report (Markdown)
    export --weekly  Generate a weekly report
    export -f json   Output report as JSON
    export --data tasks     Dump raw task data (JSON or CSV)
    export --data sessions  Dump raw session history (JSON or CSV)
    import           Import tasks from other apps
    import todoist   Import from Todoist CSV backup
    import taskwarrior  Import from Taskwarrior JSON

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    pomotodo is a terminal-based Pomodoro app that pairs a focus timer with
    a to-do ledger in a single, keyboard-driven interface.

FEATURES:
    • Timer      - 25/5/15 Pomodoro cycle with configurable durations
    • Tasks      - Estimate, track, and complete tasks in Pomodoros
    • Reports    - Daily and weekly focus summaries
    • Local Data - Plain JSON files in ~/.pomotodo/

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1, 2         Jump to specific pane
        D            Toggle dark mode
        ?            Show help overlay
        Ctrl+Z       Undo last action
        Ctrl+Y       Redo
        q            Quit

    Timer Pane:
        Space        Start/pause the timer
        r            Reset to a fresh focus phase
        n            Skip to the next phase
        f/b/B        Switch to focus/short break/long break
        s            Edit timer durations

    Tasks Pane:
        j/k, ↓/↑     Navigate
        a            Add task
        e            Edit task
        Space        Pick active task
        d/Enter      Toggle done
        x            Delete task
        J/K          Move task down/up

DATA STORAGE:
    All data is stored in ~/.pomotodo/ as plain JSON files:
        tasks.json     - Your tasks
        settings.json  - Timer durations and dark mode
        sessions.json  - Completed phase history

CONFIGURATION:
    Optional config file: ~/.config/pomotodo/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    pomotodo

    # Create a backup
    pomotodo backup

    # Restore from a backup
    pomotodo restore --latest

    # Generate today's report
    pomotodo export

    # Generate weekly report as JSON
    pomotodo export --weekly --format json

    # Show version
    pomotodo --version

    # Show this help
    pomotodo --help
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("pomotodo version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	// Handle help flag
	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (from ~/.config/pomotodo/config.yaml or defaults)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Initialize storage with configured data directory
	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// Persisted settings carry the timer durations and the dark-mode flag.
	// A corrupt settings file is quarantined and replaced with defaults,
	// so the error is worth a warning but never fatal.
	settings, err := store.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Create styles from theme config and the persisted palette choice
	styles := ui.NewStyles(cfg, settings.DarkMode)

	// Create app config with keys, timer durations, and UX settings
	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		Theme:                 &cfg.Theme,
		Timer:                 settings.TimerConfig(),
		ConfirmDeletions:      cfg.UX.ConfirmDeletions,
		ShowOnboarding:        cfg.UX.ShowOnboarding,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
		Notifications:         cfg.Notifications.Enabled,
		Chime:                 cfg.Notifications.Sound,
		Notifier:              notify.New(),
		Player:                sound.New(),
	}

	// Run the TUI
	if err := ui.Run(store, styles, appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
