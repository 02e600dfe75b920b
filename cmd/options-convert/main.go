// Command options-convert converts a YAML validation-options file into the
// SQLite form the checking tools can load with -config-backend sqlite.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pveldhuizen/metcontrole/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML options file (required)")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite database file (required)")
		force      = flag.Bool("force", false, "Overwrite existing SQLite database")
		dryRun     = flag.Bool("dry-run", false, "Show what would be done without executing")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <options.yaml> -sqlite <options.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if _, err := os.Stat(*yamlFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: YAML file does not exist: %s\n", *yamlFile)
		os.Exit(1)
	}

	if _, err := os.Stat(*sqliteFile); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: SQLite file already exists: %s\n", *sqliteFile)
		fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different filename\n")
		os.Exit(1)
	}

	fmt.Printf("Converting YAML options to SQLite...\n")
	fmt.Printf("  Source: %s\n", *yamlFile)
	fmt.Printf("  Target: %s\n", *sqliteFile)

	opts, err := config.NewYAMLProvider(*yamlFile).LoadOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading YAML options: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		printOptionsSummary(opts)
		fmt.Println("DRY RUN complete - no database created")
		return
	}

	if *force {
		if err := os.Remove(*sqliteFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error removing existing SQLite file: %v\n", err)
			os.Exit(1)
		}
	}

	provider, err := config.NewSQLiteProvider(*sqliteFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating SQLite database: %v\n", err)
		os.Exit(1)
	}
	defer provider.Close()

	if err := provider.SaveOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing options: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Conversion complete: %s\n", *sqliteFile)
}

func printOptionsSummary(opts *config.Options) {
	fmt.Printf("  max point distance:   %.1f m\n", opts.MaxPointDistance)
	fmt.Printf("  lowest allowed level: %.1f m NAP\n", opts.LowestAllowedLevel)
	fmt.Printf("  max waterway width:   %.1f m\n", opts.MaxWaterwayWidth)
	fmt.Printf("  coordinate range:     %.0f .. %.0f\n", opts.CoordinateMin, opts.CoordinateMax)
	fmt.Printf("  sorted measurements:  %v\n", opts.SortedMeasurements)
}
