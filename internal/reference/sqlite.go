package reference

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore reads a reference-data snapshot prepared by the surrounding
// system. The whole snapshot is loaded into memory when the store opens;
// nothing is ever written back.
type SQLiteStore struct {
	*MemoryStore
	dbPath string
}

// OpenSQLiteStore opens a snapshot database and loads its channel segments
// and expected locations.
func OpenSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	store := &SQLiteStore{
		MemoryStore: NewMemoryStore(),
		dbPath:      dbPath,
	}
	if err := store.loadSegments(db); err != nil {
		return nil, err
	}
	if err := store.loadLocations(db); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) loadSegments(db *sql.DB) error {
	query := `
		SELECT scope, ident, name, winter_level, maintenance_depth,
		       above_design_m3, below_design_m3
		FROM channel_segments
		ORDER BY rowid
	`
	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to query channel segments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var seg ChannelSegment
		var name sql.NullString
		var winterLevel, maintenanceDepth, aboveM3, belowM3 sql.NullFloat64

		err := rows.Scan(&seg.Scope, &seg.Ident, &name,
			&winterLevel, &maintenanceDepth, &aboveM3, &belowM3)
		if err != nil {
			return fmt.Errorf("failed to scan channel segment row: %w", err)
		}

		if name.Valid {
			seg.Name = name.String
		}
		if winterLevel.Valid {
			seg.WinterLevel = winterLevel.Float64
		}
		if maintenanceDepth.Valid {
			seg.MaintenanceDepth = maintenanceDepth.Float64
		}
		if aboveM3.Valid {
			seg.AboveDesignM3 = aboveM3.Float64
		}
		if belowM3.Valid {
			seg.BelowDesignM3 = belowM3.Float64
		}

		s.AddSegment(&seg)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadLocations(db *sql.DB) error {
	query := `
		SELECT hydro_code, profile_name, sampling_interval
		FROM expected_locations
		ORDER BY rowid
	`
	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to query expected locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var loc ExpectedLocation
		var interval sql.NullFloat64

		if err := rows.Scan(&loc.HydroCode, &loc.ProfileName, &interval); err != nil {
			return fmt.Errorf("failed to scan expected location row: %w", err)
		}
		if interval.Valid {
			loc.SamplingInterval = interval.Float64
		}

		s.AddLocation(&loc)
	}
	return rows.Err()
}
