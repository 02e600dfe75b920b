package config

import (
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements Provider for SQLite option databases
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite option provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadOptions loads the complete option table from the validation_options
// table. Rows are (name, value) pairs; check toggles use a "check_" name
// prefix with 0/1 values. Unknown names are skipped so newer snapshots stay
// loadable.
func (s *SQLiteProvider) LoadOptions() (*Options, error) {
	rows, err := s.db.Query(`SELECT name, value FROM validation_options`)
	if err != nil {
		return nil, fmt.Errorf("failed to query validation options: %w", err)
	}
	defer rows.Close()

	opts := DefaultOptions()

	for rows.Next() {
		var name string
		var value sql.NullString
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan option row: %w", err)
		}
		if !value.Valid {
			continue
		}
		if err := applyOption(opts, name, value.String); err != nil {
			return nil, fmt.Errorf("option %s: %w", name, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read validation options: %w", err)
	}

	return opts, nil
}

func applyOption(opts *Options, name, value string) error {
	floatTargets := map[string]*float64{
		OptionMaxPointDistance:   &opts.MaxPointDistance,
		OptionLowestAllowedLevel: &opts.LowestAllowedLevel,
		OptionMaxWaterwayWidth:   &opts.MaxWaterwayWidth,
		OptionCoordinateMin:      &opts.CoordinateMin,
		OptionCoordinateMax:      &opts.CoordinateMax,
	}
	if target, ok := floatTargets[name]; ok {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		*target = f
		return nil
	}

	boolTargets := map[string]*bool{
		OptionSortedMeasurements:         &opts.SortedMeasurements,
		"check_reference_level_unit":     &opts.Checks.ReferenceLevelUnit,
		"check_coordinate_mode":          &opts.Checks.CoordinateMode,
		"check_reference_level_zero":     &opts.Checks.ReferenceLevelZero,
		"check_two_elevation_values":     &opts.Checks.TwoElevationValues,
		"check_placement_mode":           &opts.Checks.PlacementMode,
		"check_min_two_measurements":     &opts.Checks.MinTwoMeasurements,
		"check_waterline_point_count":    &opts.Checks.WaterlinePointCount,
		"check_waterline_outside":        &opts.Checks.WaterlineOutside,
		"check_waterline_symmetric":      &opts.Checks.WaterlineSymmetric,
		"check_interior_below_waterline": &opts.Checks.InteriorBelowWaterline,
		"check_top_below_bottom":         &opts.Checks.TopBelowBottom,
		"check_point_distance":           &opts.Checks.PointDistance,
	}
	if target, ok := boolTargets[name]; ok {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*target = b
	}
	return nil
}

// SaveOptions replaces the validation_options table with the given option
// set, creating the table when the database is fresh.
func (s *SQLiteProvider) SaveOptions(opts *Options) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS validation_options (
		name TEXT PRIMARY KEY,
		value TEXT
	)`); err != nil {
		return fmt.Errorf("failed to create validation_options table: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM validation_options`); err != nil {
		return fmt.Errorf("failed to clear validation_options table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO validation_options (name, value) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for name, value := range optionRows(opts) {
		if _, err := stmt.Exec(name, value); err != nil {
			return fmt.Errorf("failed to insert option %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit options: %w", err)
	}
	return nil
}

// optionRows renders an option set as the (name, value) rows of the
// validation_options table, inverse to applyOption.
func optionRows(opts *Options) map[string]string {
	rows := map[string]string{
		OptionMaxPointDistance:   strconv.FormatFloat(opts.MaxPointDistance, 'f', -1, 64),
		OptionLowestAllowedLevel: strconv.FormatFloat(opts.LowestAllowedLevel, 'f', -1, 64),
		OptionMaxWaterwayWidth:   strconv.FormatFloat(opts.MaxWaterwayWidth, 'f', -1, 64),
		OptionCoordinateMin:      strconv.FormatFloat(opts.CoordinateMin, 'f', -1, 64),
		OptionCoordinateMax:      strconv.FormatFloat(opts.CoordinateMax, 'f', -1, 64),
	}
	bools := map[string]bool{
		OptionSortedMeasurements:         opts.SortedMeasurements,
		"check_reference_level_unit":     opts.Checks.ReferenceLevelUnit,
		"check_coordinate_mode":          opts.Checks.CoordinateMode,
		"check_reference_level_zero":     opts.Checks.ReferenceLevelZero,
		"check_two_elevation_values":     opts.Checks.TwoElevationValues,
		"check_placement_mode":           opts.Checks.PlacementMode,
		"check_min_two_measurements":     opts.Checks.MinTwoMeasurements,
		"check_waterline_point_count":    opts.Checks.WaterlinePointCount,
		"check_waterline_outside":        opts.Checks.WaterlineOutside,
		"check_waterline_symmetric":      opts.Checks.WaterlineSymmetric,
		"check_interior_below_waterline": opts.Checks.InteriorBelowWaterline,
		"check_top_below_bottom":         opts.Checks.TopBelowBottom,
		"check_point_distance":           opts.Checks.PointDistance,
	}
	for name, b := range bools {
		rows[name] = strconv.FormatBool(b)
	}
	return rows
}

// IsReadOnly returns false since SQLite databases support writes
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
