// Package main is the entry point for the pomotodo application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomotodo/internal/config"
	"pomotodo/internal/fsutil"
	"pomotodo/internal/reports"
	"pomotodo/internal/storage"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `pomotodo export - Generate focus reports and data dumps

USAGE:
    pomotodo export [OPTIONS] [DATE]

OPTIONS:
    -d, --daily        Generate daily report (default)
    -w, --weekly       Generate weekly report
    --data WHAT        Dump raw data instead: 'tasks' or 'sessions'
    -f, --format FMT   Output format: markdown (default) or json
                       For --data: json (default) or csv
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

ARGUMENTS:
    DATE               Date for report (YYYY-MM-DD). Defaults to today.
                       For weekly reports, this is the start of the week.
                       Ignored for --data dumps.

DESCRIPTION:
    Generates reports summarizing your Pomodoros, focus time, and tasks.
    Reports can be output as Markdown (human-readable) or JSON
    (machine-readable). With --data, dumps the raw task list or session
    history as JSON or CSV for use in other tools.

EXAMPLES:
    # Today's report in Markdown
    pomotodo export

    # Specific date
    pomotodo export 2025-12-14

    # Weekly report
    pomotodo export --weekly

    # JSON format
    pomotodo export --format json

    # Save to file
    pomotodo export --output report.md

    # Dump all sessions as CSV
    pomotodo export --data sessions --format csv --output sessions.csv
`

// runExport handles the "pomotodo export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	dailyFlag := fs.Bool("daily", false, "generate daily report")
	fs.BoolVar(dailyFlag, "d", false, "generate daily report (shorthand)")

	weeklyFlag := fs.Bool("weekly", false, "generate weekly report")
	fs.BoolVar(weeklyFlag, "w", false, "generate weekly report (shorthand)")

	dataFlag := fs.String("data", "", "dump raw data: tasks or sessions")

	formatFlag := fs.String("format", "", "output format")
	fs.StringVar(formatFlag, "f", "", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	// Load config and storage
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// Raw data dumps bypass the report generator entirely
	if *dataFlag != "" {
		output := exportData(store, *dataFlag, *formatFlag)
		writeExport(*outputFlag, output)
		return
	}

	// Validate report format
	format := *formatFlag
	if format == "" || format == "md" {
		format = "markdown"
	}
	if format != "markdown" && format != "json" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'markdown' or 'json'.\n", format)
		os.Exit(1)
	}

	// Parse date argument
	date := time.Now()
	if fs.NArg() > 0 {
		parsedDate, err := time.ParseInLocation("2006-01-02", fs.Arg(0), time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid date %q. Use YYYY-MM-DD format.\n", fs.Arg(0))
			os.Exit(1)
		}
		date = parsedDate
	}

	// Determine report type (default to daily)
	isWeekly := *weeklyFlag
	// If neither flag is set, default to daily
	if !*dailyFlag && !*weeklyFlag {
		isWeekly = false
	}

	gen := reports.NewGenerator(store)

	// Generate report
	var output string
	if isWeekly {
		report, err := gen.GenerateWeekly(date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating weekly report: %v\n", err)
			os.Exit(1)
		}

		if format == "json" {
			data, err := reports.FormatWeeklyJSON(report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
				os.Exit(1)
			}
			output = string(data)
		} else {
			output = reports.FormatWeeklyMarkdown(report)
		}
	} else {
		report, err := gen.GenerateDaily(date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating daily report: %v\n", err)
			os.Exit(1)
		}

		if format == "json" {
			data, err := reports.FormatDailyJSON(report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
				os.Exit(1)
			}
			output = string(data)
		} else {
			output = reports.FormatDailyMarkdown(report)
		}
	}

	writeExport(*outputFlag, output)
}

// exportData dumps the raw task list or session history.
func exportData(store *storage.Storage, what, format string) string {
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q for --data. Use 'json' or 'csv'.\n", format)
		os.Exit(1)
	}

	var (
		output string
		err    error
	)

	switch what {
	case "tasks":
		if format == "csv" {
			output, err = store.ExportTasksCSV()
		} else {
			var data []byte
			data, err = store.ExportTasksJSON()
			output = string(data)
		}
	case "sessions":
		if format == "csv" {
			output, err = store.ExportSessionsCSV()
		} else {
			var data []byte
			data, err = store.ExportSessionsJSON()
			output = string(data)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid data kind %q. Use 'tasks' or 'sessions'.\n", what)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting %s: %v\n", what, err)
		os.Exit(1)
	}
	return output
}

// writeExport writes the output to a file or stdout.
func writeExport(outputPath, output string) {
	if outputPath == "" {
		fmt.Print(output)
		return
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0700); err != nil && filepath.Dir(outputPath) != "." {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}
	if err := fsutil.WriteFileAtomic(outputPath, []byte(output), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report written to %s\n", outputPath)
}
