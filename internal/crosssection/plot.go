package crosssection

import (
	"sort"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"

	"github.com/pveldhuizen/metcontrole/internal/metfile"
)

// PlottingData reduces a profile's measurements to a distance-vs-elevation
// series for charting. It is display preparation only and never fails:
// when the waterline markers are missing or ambiguous the first and last
// measurement serve as the baseline.
type PlottingData struct {
	// Parallel slices, sorted ascending by distance to the baseline
	// midpoint.
	Distances []float64
	Tops      []float64
	Bottoms   []float64

	Left       geom.Point
	Right      geom.Point
	WaterLevel float64
}

// NewPlottingData prepares the chart series for one profile's raw
// measurement list. The list must be non-empty.
func NewPlottingData(measurements []*metfile.Measurement) *PlottingData {
	p1, p2 := baselinePoints(measurements)
	base := baseline{start: p1.Position, end: p2.Position}

	sorted := make([]*metfile.Measurement, len(measurements))
	copy(sorted, measurements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return base.distanceToMidpoint(sorted[i].Position) <
			base.distanceToMidpoint(sorted[j].Position)
	})

	pd := &PlottingData{
		Left:       p1.Position,
		Right:      p2.Position,
		WaterLevel: p1.Top,
	}
	for _, m := range sorted {
		pd.Distances = append(pd.Distances, base.distanceToMidpoint(m.Position))
		pd.Tops = append(pd.Tops, m.Top)
		pd.Bottoms = append(pd.Bottoms, m.Bottom)
	}
	return pd
}

// XRange returns the chart extent: the outermost distances padded by one
// meter on each side.
func (pd *PlottingData) XRange() (min, max float64) {
	return floats.Min(pd.Distances) - 1, floats.Max(pd.Distances) + 1
}

// YRange returns the elevation extent over both bottom series and the
// water level.
func (pd *PlottingData) YRange() (min, max float64) {
	min = floats.Min(pd.Bottoms)
	max = floats.Max(pd.Tops)
	if pd.WaterLevel < min {
		min = pd.WaterLevel
	}
	if pd.WaterLevel > max {
		max = pd.WaterLevel
	}
	return min, max
}

// baselinePoints prefers the two waterline markers; anything else falls
// back to the outermost measurements.
func baselinePoints(ms []*metfile.Measurement) (*metfile.Measurement, *metfile.Measurement) {
	var waterline []*metfile.Measurement
	for _, m := range ms {
		if m.PointType == metfile.PointTypeWaterline {
			waterline = append(waterline, m)
		}
	}
	if len(waterline) == 2 {
		return waterline[0], waterline[1]
	}
	return ms[0], ms[len(ms)-1]
}

// baseline is the straight segment between the two baseline points.
type baseline struct {
	start geom.Point
	end   geom.Point
}

// distanceToMidpoint is the signed position of p projected onto the
// baseline, measured from the baseline's midpoint.
func (b baseline) distanceToMidpoint(p geom.Point) float64 {
	dx := b.end.X - b.start.X
	dy := b.end.Y - b.start.Y
	length := dist(b.start, b.end)
	if length == 0 {
		return 0
	}
	t := ((p.X-b.start.X)*dx + (p.Y-b.start.Y)*dy) / length
	return t - length/2
}
