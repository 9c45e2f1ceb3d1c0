// Command posecheck validates an exported YOLO-pose dataset before training.
//
// Usage:
//
//	posecheck [flags] <dataset-root>
//	posecheck migrate -history <db> <up|down|status>
//
// Exit code 0 on validation pass (warnings allowed), 1 on failure or usage
// error.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tabletop-vision/posecheck/internal/dataset"
	"github.com/tabletop-vision/posecheck/internal/history"
	"github.com/tabletop-vision/posecheck/internal/monitoring"
	"github.com/tabletop-vision/posecheck/internal/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(os.Args[2:])
		return
	}

	jsonPath := flag.String("json", "", "write the report as JSON to this file")
	historyPath := flag.String("history", "", "record the run in this SQLite database")
	quiet := flag.Bool("quiet", false, "suppress progress output")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}

	if *quiet {
		monitoring.Mute()
	}

	started := time.Now()
	v := dataset.New(flag.Arg(0))
	passed := v.Validate()
	v.Report(os.Stdout)

	if *jsonPath != "" {
		if err := writeJSONReport(v.ReportData(), *jsonPath); err != nil {
			log.Fatalf("Failed to write JSON report: %v", err)
		}
	}

	if *historyPath != "" {
		if err := recordRun(v.ReportData(), *historyPath, started); err != nil {
			log.Fatalf("Failed to record run: %v", err)
		}
	}

	if !passed {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: posecheck [flags] <dataset-root>")
	fmt.Fprintln(os.Stderr, "       posecheck migrate -history <db> <up|down|status>")
	flag.PrintDefaults()
}

func writeJSONReport(report dataset.ReportData, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func recordRun(report dataset.ReportData, dbPath string, started time.Time) error {
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.RecordRun(report, started)
	if err != nil {
		return err
	}
	monitoring.Logf("recorded run %s in %s", runID, dbPath)
	return nil
}

// runMigrate handles the 'migrate' subcommand for the history database.
func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	historyPath := fs.String("history", "", "path to the history SQLite database")
	fs.Parse(args)

	if *historyPath == "" || fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: posecheck migrate -history <db> <up|down|status>")
		os.Exit(1)
	}

	store, err := history.OpenDB(*historyPath)
	if err != nil {
		log.Fatalf("Failed to open history database: %v", err)
	}
	defer store.Close()

	switch fs.Arg(0) {
	case "up":
		if err := store.MigrateUp(); err != nil {
			log.Fatalf("Migration up failed: %v", err)
		}
		log.Println("All migrations applied")

	case "down":
		if err := store.MigrateDown(); err != nil {
			log.Fatalf("Migration down failed: %v", err)
		}
		log.Println("Migration rolled back")

	case "status":
		v, dirty, err := store.MigrateVersion()
		if err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
		fmt.Printf("Current version: %d (dirty: %v)\n", v, dirty)

	default:
		fmt.Fprintf(os.Stderr, "Unknown migrate action: %s\n", fs.Arg(0))
		os.Exit(1)
	}
}
