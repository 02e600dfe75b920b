// Package metfile parses MET cross-section survey files: a flat sequence of
// <REEKS> and <PROFIEL> blocks, the latter holding <METING> measurement
// lines. The parser is line oriented and collects structured per-line
// errors instead of failing on the first problem; a profile with a fatal
// error is left out of the result, the rest of the file is still parsed.
package metfile

import (
	"github.com/ctessum/geom"
)

// Point type codes used in MET measurement lines.
const (
	PointTypeWaterline = "22"
	PointTypeInterior  = "99"
)

// MetFile is the root of one parsed document. It is not persisted; callers
// extract what they need and discard it.
type MetFile struct {
	Series []*Series
}

// Series groups the profiles that share one channel-segment identifier.
type Series struct {
	// Name is the series identifier with a single leading "<letter>-"
	// prefix stripped. It must resolve to exactly one reference channel
	// segment.
	Name        string
	Description string
	LineNumber  int
	Profiles    []*Profile
}

// Profile is one measured cross-section.
type Profile struct {
	ID              string
	Description     string
	DateMeasurement string
	RefLevelValue   float64
	RefLevelUnit    string // expected "NAP"
	CoordinateMode  string // expected "ABS"
	NumZValues      int    // expected 2
	PlacementMode   string // expected "XY"

	// Start is the first declared coordinate of the profile, used as the
	// origin for all projected distances.
	Start      geom.Point
	LineNumber int

	Measurements []*Measurement

	// Derived by the crosssection builder.
	WaterLevel       float64
	Width            float64
	Baseline         [2]geom.Point
	LeggerGeom       geom.Polygon
	DredgeGeom       geom.Polygon
	LeggerDredgeGeom geom.MultiPolygon
}

// Measurement is one point along a profile. Top and Bottom are elevations
// in m NAP; Top is the soft (sludge) surface, Bottom the hard bottom.
type Measurement struct {
	PointType  string
	Sequence   int
	Position   geom.Point
	Bottom     float64
	Top        float64
	LineNumber int
}

// WaterlinePoints returns the indices of the point-type 22 measurements in
// encounter order.
func (p *Profile) WaterlinePoints() []int {
	var idx []int
	for i, m := range p.Measurements {
		if m.PointType == PointTypeWaterline {
			idx = append(idx, i)
		}
	}
	return idx
}
