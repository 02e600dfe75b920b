// Package app orchestrates one checking run: load the reference data of a
// project, reset the per-segment accumulators, then parse and process each
// MET file in turn. Files are processed strictly sequentially; the
// channel-segment accumulators are the only state shared between profiles.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pveldhuizen/metcontrole/internal/crosssection"
	"github.com/pveldhuizen/metcontrole/internal/metfile"
	"github.com/pveldhuizen/metcontrole/internal/reference"
	"github.com/pveldhuizen/metcontrole/pkg/config"
)

// File name conventions of a project directory.
const (
	segmentShapePrefix  = "Hydrovakken_"
	locationShapePrefix = "DWP_"
	shapefileSuffix     = ".shp"
	metfileSuffix       = ".met"
)

// App bundles everything one checking run needs.
type App struct {
	opts    *config.Options
	store   reference.Store
	builder *crosssection.Builder
	logger  *zap.SugaredLogger
	runID   string
}

// New creates an application instance for one run.
func New(opts *config.Options, store reference.Store, logger *zap.SugaredLogger) *App {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	return &App{
		opts:    opts,
		store:   store,
		builder: &crosssection.Builder{SortMeasurements: opts.SortedMeasurements},
		logger:  logger,
		runID:   uuid.NewString(),
	}
}

// RunID identifies this run in logs and reports.
func (a *App) RunID() string { return a.runID }

// ProjectFiles locates the reference shapefiles and MET files below a
// project directory, using the historical name prefixes.
type ProjectFiles struct {
	Name           string
	SegmentShapes  []string
	LocationShapes []string
	MetFiles       []string
}

// FindProjectFiles walks a project directory and classifies its files.
func FindProjectFiles(dir string) (*ProjectFiles, error) {
	pf := &ProjectFiles{Name: filepath.Base(dir)}
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		name := info.Name()
		switch {
		case strings.HasSuffix(name, shapefileSuffix) && strings.HasPrefix(name, segmentShapePrefix):
			pf.SegmentShapes = append(pf.SegmentShapes, path)
		case strings.HasSuffix(name, shapefileSuffix) && strings.HasPrefix(name, locationShapePrefix):
			pf.LocationShapes = append(pf.LocationShapes, path)
		case strings.HasSuffix(name, metfileSuffix):
			pf.MetFiles = append(pf.MetFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan project directory %s: %w", dir, err)
	}
	return pf, nil
}

// LoadProjectStore builds an in-memory reference store from a project's
// shapefiles.
func LoadProjectStore(pf *ProjectFiles) (*reference.MemoryStore, error) {
	store := reference.NewMemoryStore()
	for _, path := range pf.SegmentShapes {
		if err := reference.LoadChannelSegments(store, pf.Name, path); err != nil {
			return nil, err
		}
	}
	for _, path := range pf.LocationShapes {
		if err := reference.LoadExpectedLocations(store, path); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// RunProject processes every MET file found below a project directory
// against the store the App was built with.
func (a *App) RunProject(dir string) (*RunReport, error) {
	pf, err := FindProjectFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(pf.MetFiles) == 0 {
		return nil, fmt.Errorf("no MET files found below %s", dir)
	}
	return a.Run(pf.Name, pf.MetFiles)
}

// Run resets the accumulators once, then processes the given MET files in
// order. Per-file and per-profile failures are recorded in the report and
// never abort the batch.
func (a *App) Run(scope string, paths []string) (*RunReport, error) {
	a.logger.Infow("starting checking run",
		"run_id", a.runID, "scope", scope, "files", len(paths))

	reference.ResetRun(a.store)

	report := &RunReport{RunID: a.runID, Scope: scope}
	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read MET file %s: %w", path, err)
		}
		fr := a.ProcessDocument(scope, string(text))
		fr.Path = path
		report.Files = append(report.Files, fr)
	}

	for _, seg := range a.store.Segments() {
		report.Segments = append(report.Segments, SegmentSummary{
			Ident:           seg.Ident,
			Name:            seg.Name,
			MeasuredAboveCL: seg.MeasuredAboveCL,
			MeasuredBelowCL: seg.MeasuredBelowCL,
			AbovePercent:    seg.AbovePercent,
			BelowPercent:    seg.BelowPercent,
		})
	}

	a.logger.Infow("checking run finished",
		"run_id", a.runID, "files", len(report.Files), "errors", report.ErrorCount())
	return report, nil
}

// ProcessDocument parses one MET document and runs the cross-reference and
// geometry stages over every profile that survived parsing.
func (a *App) ProcessDocument(scope, text string) *FileReport {
	parsed, errs := metfile.Parse(text, a.opts)

	fr := &FileReport{Errors: errs}
	for _, series := range parsed.Series {
		for _, prof := range series.Profiles {
			result := a.processProfile(scope, series, prof)
			fr.Profiles = append(fr.Profiles, result)
		}
	}
	return fr
}

// processProfile resolves one profile's reference records and builds its
// geometry. Lookup and geometry failures are converted into a recorded
// result, not propagated.
func (a *App) processProfile(scope string, series *metfile.Series, prof *metfile.Profile) ProfileResult {
	result := ProfileResult{Series: series.Name, Profile: prof.ID}

	seg, err := a.store.ChannelSegment(scope, series.Name)
	if err != nil {
		a.logger.Warnw("channel segment lookup failed",
			"series", series.Name, "profile", prof.ID, "error", err)
		result.Err = err.Error()
		return result
	}
	loc, err := a.store.ExpectedLocation(series.Name, prof.ID)
	if err != nil {
		a.logger.Warnw("expected location lookup failed",
			"series", series.Name, "profile", prof.ID, "error", err)
		result.Err = err.Error()
		return result
	}

	if _, err := a.builder.Build(prof, seg, loc); err != nil {
		a.logger.Warnw("geometry construction failed",
			"series", series.Name, "profile", prof.ID, "error", err)
		result.Err = err.Error()
		return result
	}

	result.Width = prof.Width
	result.WaterLevel = prof.WaterLevel
	result.DredgeArea = polygonArea(prof.DredgeGeom)
	if prof.LeggerDredgeGeom != nil {
		result.IntersectionArea = multiPolygonArea(prof.LeggerDredgeGeom)
	}
	return result
}
