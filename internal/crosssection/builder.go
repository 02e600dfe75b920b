// Package crosssection derives the geometry of a parsed profile: the
// waterline baseline, the statutory legger rectangle, the measured dredge
// polygon, their intersection, and the sediment volume bookkeeping on the
// owning channel segment.
package crosssection

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/geom"

	"github.com/pveldhuizen/metcontrole/internal/metfile"
	"github.com/pveldhuizen/metcontrole/internal/reference"
)

// Builder computes derived profile geometry. One Builder serves a whole
// run; it carries only the sorting mode.
type Builder struct {
	// SortMeasurements re-sorts the dredge envelopes by projected distance.
	// When false the bottom envelope is reversed in encounter order.
	SortMeasurements bool
}

// GeometryError is returned when a profile cannot be built; the caller's
// per-profile loop records it and continues with the next profile.
type GeometryError struct {
	ProfileID string
	Reason    string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("profile %s: %s", e.ProfileID, e.Reason)
}

// Build populates the profile's derived fields and applies its volume
// contributions to the channel segment's accumulators. The profile must
// have passed parsing; the segment accumulators must have been reset at
// the start of the run.
func (b *Builder) Build(prof *metfile.Profile, seg *reference.ChannelSegment,
	loc *reference.ExpectedLocation) (*metfile.Profile, error) {

	waterline := prof.WaterlinePoints()
	if len(waterline) != 2 {
		return nil, &GeometryError{
			ProfileID: prof.ID,
			Reason:    fmt.Sprintf("%d waterline points, need exactly 2", len(waterline)),
		}
	}
	left := prof.Measurements[waterline[0]]
	right := prof.Measurements[waterline[1]]

	prof.WaterLevel = left.Top
	prof.Width = dist(left.Position, right.Position)
	prof.Baseline = [2]geom.Point{left.Position, right.Position}

	prof.LeggerGeom = leggerGeom(prof.Width, seg)
	prof.DredgeGeom = b.dredgeGeom(prof, waterline[0], waterline[1])

	isect := prof.LeggerGeom.Intersection(prof.DredgeGeom)
	if !emptyPolygonal(isect) {
		// Normalized to a multi-polygon whether the raw intersection is a
		// single polygon or several.
		prof.LeggerDredgeGeom = geom.MultiPolygon(isect.Polygons())
	} else {
		prof.LeggerDredgeGeom = nil
	}

	seg.AccumulateAbove(area(prof.DredgeGeom) * loc.SamplingInterval)
	if prof.LeggerDredgeGeom != nil {
		seg.AccumulateBelow(math.Abs(isect.Area()) * loc.SamplingInterval)
	}
	seg.UpdatePercentages()

	return prof, nil
}

// leggerGeom is the statutory reference rectangle in baseline space:
// [0, width] horizontally, winter level down to maintenance depth
// vertically.
func leggerGeom(width float64, seg *reference.ChannelSegment) geom.Polygon {
	return geom.Polygon{{
		{X: 0, Y: seg.WinterLevel},
		{X: width, Y: seg.WinterLevel},
		{X: width, Y: seg.MaintenanceDepth},
		{X: 0, Y: seg.MaintenanceDepth},
		{X: 0, Y: seg.WinterLevel},
	}}
}

// dredgeGeom builds the measured polygon from the points between the two
// waterline markers, inclusive. Every point appears twice: once at its
// soft-bottom (top) elevation and once at its hard-bottom elevation, each
// offset by the water level and projected to its distance from the profile
// start point.
func (b *Builder) dredgeGeom(prof *metfile.Profile, first, last int) geom.Polygon {
	span := prof.Measurements[first : last+1]

	top := make([]geom.Point, 0, len(span))
	bottom := make([]geom.Point, 0, len(span))
	for _, m := range span {
		d := dist(prof.Start, m.Position)
		top = append(top, geom.Point{X: d, Y: m.Top + prof.WaterLevel})
		bottom = append(bottom, geom.Point{X: d, Y: m.Bottom + prof.WaterLevel})
	}

	if b.SortMeasurements {
		sort.Slice(top, func(i, j int) bool { return top[i].X < top[j].X })
		sort.Slice(bottom, func(i, j int) bool { return bottom[i].X > bottom[j].X })
	} else {
		reverse(bottom)
	}

	ring := append(top, bottom...)
	ring = append(ring, ring[0])
	return geom.Polygon{ring}
}

// emptyPolygonal reports whether a clipping result carries no area. A
// degenerate dredge polygon intersects the legger in at most a line, which
// counts as no intersection.
func emptyPolygonal(p geom.Polygonal) bool {
	if p == nil {
		return true
	}
	for _, poly := range p.Polygons() {
		if len(poly) > 0 && math.Abs(poly.Area()) > 0 {
			return false
		}
	}
	return true
}

func reverse(points []geom.Point) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}

// area returns the absolute polygon area; hand-built rings may wind either
// way.
func area(p geom.Polygon) float64 {
	return math.Abs(p.Area())
}

func dist(a, b geom.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
