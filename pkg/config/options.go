// Package config provides the validation-option tables that drive the MET
// file checks. Options can be loaded from YAML files or from a SQLite
// snapshot prepared by the surrounding system.
package config

// Option names as they appear in the SQLite validation_options table.
const (
	OptionMaxPointDistance   = "max_point_distance"
	OptionLowestAllowedLevel = "lowest_allowed_level"
	OptionMaxWaterwayWidth   = "max_waterway_width"
	OptionCoordinateMin      = "coordinate_min"
	OptionCoordinateMax      = "coordinate_max"
	OptionSortedMeasurements = "sorted_measurements"
)

// Options holds every named threshold and mode switch referenced by the
// parser and the geometry builder.
type Options struct {
	// MaxPointDistance is the advisory limit, in meters, on the planar
	// distance between consecutive measurement points.
	MaxPointDistance float64 `yaml:"max_point_distance"`

	// LowestAllowedLevel is the lowest plausible elevation (m NAP) for any
	// measurement in the file.
	LowestAllowedLevel float64 `yaml:"lowest_allowed_level"`

	// MaxWaterwayWidth is the largest plausible distance (m) between the
	// two waterline points of a profile.
	MaxWaterwayWidth float64 `yaml:"max_waterway_width"`

	// CoordinateMin and CoordinateMax bound the planar coordinate range of
	// the projected reference system the positions are expected in.
	CoordinateMin float64 `yaml:"coordinate_min"`
	CoordinateMax float64 `yaml:"coordinate_max"`

	// SortedMeasurements re-sorts the dredge polygon envelopes by projected
	// distance instead of keeping encounter order.
	SortedMeasurements bool `yaml:"sorted_measurements"`

	Checks Checks `yaml:"checks"`
}

// Checks toggles the individual content validations of the parser. Each
// check records its own error code when enabled and triggered.
type Checks struct {
	ReferenceLevelUnit     bool `yaml:"reference_level_unit"`     // MET_NAP
	CoordinateMode         bool `yaml:"coordinate_mode"`          // MET_ABS
	ReferenceLevelZero     bool `yaml:"reference_level_zero"`     // MET_PEILWAARDENUL
	TwoElevationValues     bool `yaml:"two_elevation_values"`     // MET_TWOZVALUES
	PlacementMode          bool `yaml:"placement_mode"`           // MET_PROFILETYPEPLACING_XY
	MinTwoMeasurements     bool `yaml:"min_two_measurements"`     // MET_2MEASUREMENTS
	WaterlinePointCount    bool `yaml:"waterline_point_count"`    // MET_TWO_22_CODES
	WaterlineOutside       bool `yaml:"waterline_outside"`        // MET_22OUTSIDE, MET_99INSIDE
	WaterlineSymmetric     bool `yaml:"waterline_symmetric"`      // MET_LEFTRIGHTEQUAL, MET_LEFTRIGHTXY
	InteriorBelowWaterline bool `yaml:"interior_below_waterline"` // MET_Z1TOOHIGH, MET_Z2TOOHIGH
	TopBelowBottom         bool `yaml:"top_below_bottom"`         // MET_Z1GREATERTHANZ2, advisory
	PointDistance          bool `yaml:"point_distance"`           // MET_DISTANCETOOLARGE, advisory
}

// DefaultOptions returns the option set used when no backend is configured:
// every check enabled and the historical thresholds.
func DefaultOptions() *Options {
	return &Options{
		MaxPointDistance:   5.0,
		LowestAllowedLevel: -25.0,
		MaxWaterwayWidth:   500.0,
		CoordinateMin:      0,
		CoordinateMax:      300000, // RD new covers roughly 0..300 km
		SortedMeasurements: true,
		Checks: Checks{
			ReferenceLevelUnit:     true,
			CoordinateMode:         true,
			ReferenceLevelZero:     true,
			TwoElevationValues:     true,
			PlacementMode:          true,
			MinTwoMeasurements:     true,
			WaterlinePointCount:    true,
			WaterlineOutside:       true,
			WaterlineSymmetric:     true,
			InteriorBelowWaterline: true,
			TopBelowBottom:         true,
			PointDistance:          true,
		},
	}
}
