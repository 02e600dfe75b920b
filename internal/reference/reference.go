// Package reference holds the externally supplied lookup data the geometry
// builder reconciles profiles against: channel segments (hydrovakken) and
// expected profile locations (DWP records). Stores are read-only snapshots;
// the only mutable state is the per-run sediment accumulators on
// ChannelSegment.
package reference

import (
	"fmt"
	"math"
)

// ChannelSegment is one reference channel-segment record, keyed by
// (scope, identifier). Physical attributes come from the reference
// shapefile; the Measured* fields accumulate over one processing run.
type ChannelSegment struct {
	Scope string
	Ident string
	Name  string

	WinterLevel      float64 // winter water level, m NAP
	MaintenanceDepth float64 // maintained design depth, m NAP

	AboveDesignM3 float64 // design sediment volume above maintenance depth
	BelowDesignM3 float64 // design sediment volume below maintenance depth

	// Accumulated over all profiles referencing this segment in one run.
	MeasuredAboveCL float64
	MeasuredBelowCL float64

	// Percentage of the design volume remaining after subtracting the
	// measured volume; derived by UpdatePercentages.
	AbovePercent float64
	BelowPercent float64
}

// AccumulateAbove adds a profile's measured dredge volume (m3) to the
// above-design accumulator, rounding after each addition.
func (s *ChannelSegment) AccumulateAbove(volume float64) {
	s.MeasuredAboveCL = math.Round(s.MeasuredAboveCL + volume)
}

// AccumulateBelow adds a profile's below-design (legger intersection)
// volume to its accumulator.
func (s *ChannelSegment) AccumulateBelow(volume float64) {
	s.MeasuredBelowCL = math.Round(s.MeasuredBelowCL + volume)
}

// UpdatePercentages derives the percentage-remaining figures from the
// accumulators. When a design volume is zero the historical fallback is
// kept: the raw accumulated m3 figure is stored in the percentage field.
// That is almost certainly a bug in the system this replaces, but
// downstream reports depend on it.
func (s *ChannelSegment) UpdatePercentages() {
	if s.AboveDesignM3 != 0 {
		s.AbovePercent = math.Round((s.AboveDesignM3 - s.MeasuredAboveCL) / s.AboveDesignM3 * 100)
	} else {
		s.AbovePercent = s.MeasuredAboveCL
	}
	if s.BelowDesignM3 != 0 {
		s.BelowPercent = math.Round((s.BelowDesignM3 - s.MeasuredBelowCL) / s.BelowDesignM3 * 100)
	} else {
		s.BelowPercent = s.MeasuredBelowCL
	}
}

// Reset zeroes the run-scoped accumulators and derived percentages.
func (s *ChannelSegment) Reset() {
	s.MeasuredAboveCL = 0
	s.MeasuredBelowCL = 0
	s.AbovePercent = 0
	s.BelowPercent = 0
}

// ExpectedLocation is one expected profile location, keyed by
// (channel segment identifier, profile name).
type ExpectedLocation struct {
	HydroCode   string
	ProfileName string

	// SamplingInterval is the distance, in meters, each cross-section
	// stands for; it converts a 2D section area into a volume contribution.
	SamplingInterval float64
}

// Store is the lookup interface the per-profile processing loop uses.
// Implementations return NotFoundError when a key has no record.
type Store interface {
	ChannelSegment(scope, ident string) (*ChannelSegment, error)
	ExpectedLocation(ident, profile string) (*ExpectedLocation, error)

	// Segments returns every channel segment, for run resets and summaries.
	Segments() []*ChannelSegment
}

// NotFoundError is the typed lookup failure naming the missing identifier
// and the table that was searched.
type NotFoundError struct {
	Table string
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record found for %q", e.Table, e.Key)
}

// ResetRun zeroes the accumulators of every segment in the store. Call it
// once before processing the MET files of a run.
func ResetRun(store Store) {
	for _, s := range store.Segments() {
		s.Reset()
	}
}
