package app

import (
	"fmt"
	"io"
	"math"

	"github.com/ctessum/geom"

	"github.com/pveldhuizen/metcontrole/internal/metfile"
)

// RunReport is the outcome of one checking run.
type RunReport struct {
	RunID    string
	Scope    string
	Files    []*FileReport
	Segments []SegmentSummary
}

// FileReport holds the parse errors and per-profile results of one MET
// file.
type FileReport struct {
	Path     string
	Errors   []metfile.Error
	Profiles []ProfileResult
}

// ProfileResult records what happened to one profile. Err is empty when
// the geometry stage succeeded.
type ProfileResult struct {
	Series           string
	Profile          string
	Width            float64
	WaterLevel       float64
	DredgeArea       float64
	IntersectionArea float64
	Err              string
}

// SegmentSummary is the accumulated volume state of one channel segment
// after the run.
type SegmentSummary struct {
	Ident           string
	Name            string
	MeasuredAboveCL float64
	MeasuredBelowCL float64
	AbovePercent    float64
	BelowPercent    float64
}

// ErrorCount returns the total number of recorded parse errors across all
// files, advisory ones included.
func (r *RunReport) ErrorCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Errors)
	}
	return n
}

// Write renders the report in the line-oriented form the field teams are
// used to: per-file error listings first, then the segment volume table.
func (r *RunReport) Write(w io.Writer) error {
	for _, f := range r.Files {
		if _, err := fmt.Fprintf(w, "%s:\n", f.Path); err != nil {
			return err
		}
		for _, e := range f.Errors {
			kind := "error"
			if e.Advisory() {
				kind = "advisory"
			}
			if _, err := fmt.Fprintf(w, "  line %d: %s [%s, %s]\n",
				e.Line, e.Message, e.Code, kind); err != nil {
				return err
			}
		}
		for _, p := range f.Profiles {
			if p.Err != "" {
				if _, err := fmt.Fprintf(w, "  profile %s (%s): %s\n",
					p.Profile, p.Series, p.Err); err != nil {
					return err
				}
			}
		}
	}
	for _, s := range r.Segments {
		if _, err := fmt.Fprintf(w, "segment %s (%s): above %.0f m3 (%.1f%%), below %.0f m3 (%.1f%%)\n",
			s.Ident, s.Name, s.MeasuredAboveCL, s.AbovePercent,
			s.MeasuredBelowCL, s.BelowPercent); err != nil {
			return err
		}
	}
	return nil
}

func polygonArea(p geom.Polygon) float64 {
	if p == nil {
		return 0
	}
	return math.Abs(p.Area())
}

func multiPolygonArea(p geom.MultiPolygon) float64 {
	if p == nil {
		return 0
	}
	return math.Abs(p.Area())
}
