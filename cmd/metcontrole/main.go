package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pveldhuizen/metcontrole/internal/app"
	"github.com/pveldhuizen/metcontrole/internal/log"
	"github.com/pveldhuizen/metcontrole/internal/reference"
	"github.com/pveldhuizen/metcontrole/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	project := flag.String("project", "", "Project directory to scan for Hydrovakken_*.shp, DWP_*.shp and *.met files")
	hydrovakken := flag.String("hydrovakken", "", "Channel segment shapefile (overrides project scan)")
	dwp := flag.String("dwp", "", "Expected profile location shapefile (overrides project scan)")
	met := flag.String("met", "", "Single MET file to check (overrides project scan)")
	optsFile := flag.String("options", "", "Path to validation options source:\n\t\t\t  YAML: options.yaml\n\t\t\t  SQLite: options.db")
	optsBackend := flag.String("config-backend", "yaml", "Validation options backend type: 'yaml' for YAML files, 'sqlite' for SQLite databases")
	refDB := flag.String("refdb", "", "SQLite reference database to use instead of the shapefiles")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("metcontrole %s\n", version)
		os.Exit(0)
	}

	if *project == "" && *met == "" {
		fmt.Println("Either -project or -met is required. Run with -h for help.")
		os.Exit(1)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Load validation options
	opts, err := loadOptions(*optsFile, *optsBackend)
	if err != nil {
		log.Errorf("Failed to load validation options: %v", err)
		os.Exit(1)
	}

	// Locate the input files, then build the reference store
	files, err := projectFiles(*project, *hydrovakken, *dwp, *met)
	if err != nil {
		log.Errorf("Failed to locate project files: %v", err)
		os.Exit(1)
	}

	store, err := loadStore(files, *refDB)
	if err != nil {
		log.Errorf("Failed to load reference data: %v", err)
		os.Exit(1)
	}

	// Create and run the application
	application := app.New(opts, store, log.GetSugaredLogger())
	report, err := application.Run(files.Name, files.MetFiles)
	if err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}

	if err := report.Write(os.Stdout); err != nil {
		log.Errorf("Failed to write report: %v", err)
		os.Exit(1)
	}

	// Deliveries with findings fail the check.
	if report.ErrorCount() > 0 || failedProfiles(report) > 0 {
		os.Exit(1)
	}
}

// projectFiles resolves the input set: a project directory scan, with any
// explicitly named files overriding what the scan found.
func projectFiles(project, hydrovakken, dwp, met string) (*app.ProjectFiles, error) {
	pf := &app.ProjectFiles{}
	if project != "" {
		found, err := app.FindProjectFiles(project)
		if err != nil {
			return nil, err
		}
		pf = found
	}
	if hydrovakken != "" {
		pf.SegmentShapes = []string{hydrovakken}
	}
	if dwp != "" {
		pf.LocationShapes = []string{dwp}
	}
	if met != "" {
		pf.MetFiles = []string{met}
	}
	if pf.Name == "" && len(pf.MetFiles) > 0 {
		pf.Name = filepath.Base(filepath.Dir(pf.MetFiles[0]))
	}
	return pf, nil
}

func loadOptions(optsFile, optsBackend string) (*config.Options, error) {
	if optsFile == "" {
		return config.DefaultOptions(), nil
	}
	filename, _ := filepath.Abs(optsFile)

	var provider config.Provider
	var err error

	switch optsBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		provider, err = config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", optsBackend)
	}
	defer provider.Close()

	opts, err := provider.LoadOptions()
	if err != nil {
		return nil, fmt.Errorf("error reading options file: %w", err)
	}
	return opts, nil
}

func loadStore(files *app.ProjectFiles, refDB string) (reference.Store, error) {
	if refDB != "" {
		return reference.OpenSQLiteStore(refDB)
	}
	return app.LoadProjectStore(files)
}

func failedProfiles(report *app.RunReport) int {
	n := 0
	for _, f := range report.Files {
		for _, p := range f.Profiles {
			if p.Err != "" {
				n++
			}
		}
	}
	return n
}
