package metfile

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"

	"github.com/pveldhuizen/metcontrole/pkg/config"
)

// checkProfile runs the content validations over a structurally complete
// profile. Every check records its error code when triggered; whether that
// excludes the profile is decided by Error.Advisory.
func (p *parser) checkProfile(prof *Profile) {
	checks := p.opts.Checks

	if checks.ReferenceLevelUnit && prof.RefLevelUnit != "NAP" {
		p.record(prof.LineNumber, CodeNAP,
			fmt.Sprintf("profile %s: reference level unit %q, expected NAP",
				prof.ID, prof.RefLevelUnit))
	}
	if checks.CoordinateMode && prof.CoordinateMode != "ABS" {
		p.record(prof.LineNumber, CodeABS,
			fmt.Sprintf("profile %s: coordinate mode %q, expected ABS",
				prof.ID, prof.CoordinateMode))
	}
	if checks.ReferenceLevelZero && prof.RefLevelValue != 0.0 {
		p.record(prof.LineNumber, CodeRefLevelZero,
			fmt.Sprintf("profile %s: reference level value %v, expected 0.00",
				prof.ID, prof.RefLevelValue))
	}
	if checks.TwoElevationValues && prof.NumZValues != 2 {
		p.record(prof.LineNumber, CodeTwoZValues,
			fmt.Sprintf("profile %s: %d elevation values declared, expected 2",
				prof.ID, prof.NumZValues))
	}
	if checks.PlacementMode && prof.PlacementMode != "XY" {
		p.record(prof.LineNumber, CodePlacingXY,
			fmt.Sprintf("profile %s: placement mode %q, expected XY",
				prof.ID, prof.PlacementMode))
	}

	ms := prof.Measurements
	if checks.MinTwoMeasurements && len(ms) < 2 {
		p.record(prof.LineNumber, CodeTwoMeasurements,
			fmt.Sprintf("profile %s: %d measurement lines, need at least 2",
				prof.ID, len(ms)))
	}

	waterline := prof.WaterlinePoints()
	if checks.WaterlinePointCount && len(waterline) != 2 {
		p.record(prof.LineNumber, CodeTwo22Codes,
			fmt.Sprintf("profile %s: %d waterline (22) points, expected exactly 2",
				prof.ID, len(waterline)))
	}

	if len(ms) >= 2 {
		p.checkBoundaryPoints(prof)
	}

	if len(waterline) == 2 {
		left, right := ms[waterline[0]], ms[waterline[1]]
		if checks.WaterlineSymmetric &&
			(left.Top != right.Top || left.Bottom != right.Bottom) {
			p.record(prof.LineNumber, CodeLeftRightEqual,
				fmt.Sprintf("profile %s: waterline point elevations differ", prof.ID))
		}
		if width := distance(left.Position, right.Position); width > p.opts.MaxWaterwayWidth {
			p.record(prof.LineNumber, CodeWaterwayTooWide,
				fmt.Sprintf("profile %s: waterway width %.1f m exceeds %.1f m",
					prof.ID, width, p.opts.MaxWaterwayWidth))
		}
	}

	p.checkMeasurements(prof)
}

// checkBoundaryPoints validates the leftmost and rightmost measurement and
// the interior points against them.
func (p *parser) checkBoundaryPoints(prof *Profile) {
	checks := p.opts.Checks
	ms := prof.Measurements
	first, last := ms[0], ms[len(ms)-1]

	if checks.WaterlineSymmetric &&
		first.Position.X == last.Position.X && first.Position.Y == last.Position.Y {
		p.record(prof.LineNumber, CodeLeftRightXY,
			fmt.Sprintf("profile %s: first and last point share the same coordinate",
				prof.ID))
	}

	boundary22 := first.PointType == PointTypeWaterline &&
		last.PointType == PointTypeWaterline
	if checks.WaterlineOutside && !boundary22 {
		p.record(prof.LineNumber, Code22Outside,
			fmt.Sprintf("profile %s: first and last point must be type 22", prof.ID))
	}

	for _, m := range ms[1 : len(ms)-1] {
		if checks.WaterlineOutside && m.PointType != PointTypeInterior {
			p.record(m.LineNumber, Code99Inside,
				fmt.Sprintf("interior point type %q, expected 99", m.PointType))
		}
		if checks.InteriorBelowWaterline && boundary22 {
			if m.Bottom > first.Bottom {
				p.record(m.LineNumber, CodeZ1TooHigh,
					fmt.Sprintf("hard bottom %.2f above waterline point %.2f",
						m.Bottom, first.Bottom))
			}
			if m.Top > first.Top {
				p.record(m.LineNumber, CodeZ2TooHigh,
					fmt.Sprintf("soft bottom %.2f above waterline point %.2f",
						m.Top, first.Top))
			}
		}
	}

	if p.opts.Checks.PointDistance {
		for i := 0; i < len(ms)-1; i++ {
			d := distance(ms[i].Position, ms[i+1].Position)
			if d > p.opts.MaxPointDistance {
				p.record(ms[i].LineNumber, CodeDistanceTooLarge,
					fmt.Sprintf("distance %.2f m to next point exceeds %.2f m",
						d, p.opts.MaxPointDistance))
			}
		}
	}
}

// checkMeasurements runs the per-point plausibility checks.
func (p *parser) checkMeasurements(prof *Profile) {
	for _, m := range prof.Measurements {
		if p.opts.Checks.TopBelowBottom && m.Top < m.Bottom {
			p.record(m.LineNumber, CodeZ1GreaterThanZ2,
				fmt.Sprintf("soft bottom %.2f below hard bottom %.2f", m.Top, m.Bottom))
		}
		if m.Bottom < p.opts.LowestAllowedLevel || m.Top < p.opts.LowestAllowedLevel {
			p.record(m.LineNumber, CodeLevelTooLow,
				fmt.Sprintf("elevation below lowest allowed level %.1f m NAP",
					p.opts.LowestAllowedLevel))
		}
		if outOfRange(m.Position.X, p.opts) || outOfRange(m.Position.Y, p.opts) {
			p.record(m.LineNumber, CodeCoordinateOutOfRange,
				fmt.Sprintf("coordinate (%.1f, %.1f) outside [%.0f, %.0f]",
					m.Position.X, m.Position.Y,
					p.opts.CoordinateMin, p.opts.CoordinateMax))
		}
	}
}

func outOfRange(v float64, opts *config.Options) bool {
	return v < opts.CoordinateMin || v > opts.CoordinateMax
}

func distance(a, b geom.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
