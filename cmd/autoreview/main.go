// Command autoreview applies a rule table to an inspection reviews
// document (JSON) and writes the reviewed document back out with the
// remedy fields filled in.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pveldhuizen/metcontrole/internal/log"
	"github.com/pveldhuizen/metcontrole/internal/review"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	rulesFile := flag.String("rules", "", "CSV rule file to apply")
	reviewsFile := flag.String("reviews", "", "Inspection reviews document (JSON) to fill in")
	outFile := flag.String("out", "", "Output path; defaults to stdout")
	mode := flag.String("mode", "tree", "Rule file layout: 'tree' for 5-column classification rows, 'filtertable' for tagged observation masks")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("autoreview %s\n", version)
		os.Exit(0)
	}

	if *rulesFile == "" || *reviewsFile == "" {
		fmt.Println("Both -rules and -reviews are required. Run with -h for help.")
		os.Exit(1)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	doc, err := loadReviews(*reviewsFile)
	if err != nil {
		log.Errorf("Failed to load reviews: %v", err)
		os.Exit(1)
	}

	reviewed, err := applyRules(*mode, *rulesFile, doc)
	if err != nil {
		log.Errorf("Failed to apply rules: %v", err)
		os.Exit(1)
	}

	if err := writeReviews(*outFile, reviewed); err != nil {
		log.Errorf("Failed to write output: %v", err)
		os.Exit(1)
	}
}

func loadReviews(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reviews file %s: %w", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse reviews file %s: %w", path, err)
	}
	return doc, nil
}

func applyRules(mode, rulesPath string, doc map[string]any) (map[string]any, error) {
	f, err := os.Open(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule file %s: %w", rulesPath, err)
	}
	defer f.Close()

	switch mode {
	case "tree":
		rows, err := review.ParseRuleRows(f)
		if err != nil {
			return nil, err
		}
		tree := review.CompileRuleTree(rows)
		return review.ApplyRules(tree, doc), nil
	case "filtertable":
		table, err := review.LoadFilterTable(f)
		if err != nil {
			return nil, err
		}
		return table.ApplyToReviews(doc), nil
	default:
		return nil, fmt.Errorf("unsupported rule mode: %s. Use 'tree' or 'filtertable'", mode)
	}
}

func writeReviews(path string, doc map[string]any) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
