package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/skysight-labs/runwaycast/internal/prediction"
	"github.com/skysight-labs/runwaycast/pkg/logger"
)

// TrackPoint is one stored position sample for an aircraft.
type TrackPoint struct {
	ID             int64     `json:"id"`
	AircraftID     string    `json:"aircraft_id"`
	Callsign       string    `json:"callsign,omitempty"`
	Lat            float64   `json:"lat"`
	Lon            float64   `json:"lon"`
	BaroAltitudeM  *float64  `json:"baro_altitude_m,omitempty"`
	GroundSpeedMS  *float64  `json:"ground_speed_ms,omitempty"`
	TrackDeg       *float64  `json:"track_deg,omitempty"`
	VerticalRateMS *float64  `json:"vertical_rate_ms,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// TrackStorage handles storage of aircraft position tracks.
type TrackStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewTrackStorage creates a new SQLite track storage and initializes its
// schema.
func NewTrackStorage(db *sql.DB, log *logger.Logger) (*TrackStorage, error) {
	storage := &TrackStorage{
		db:     db,
		logger: log.Named("sqlite-tracks"),
	}
	if err := storage.initDB(); err != nil {
		return nil, err
	}
	return storage, nil
}

// initDB initializes the database tables.
func (s *TrackStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS position_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			aircraft_id TEXT NOT NULL,
			callsign TEXT,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			baro_altitude_m REAL,
			ground_speed_ms REAL,
			track_deg REAL,
			vertical_rate_ms REAL,
			timestamp TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create position_tracks table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_tracks_aircraft_id ON position_tracks(aircraft_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tracks_timestamp ON position_tracks(timestamp)`,
	}
	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create track index: %w", err)
		}
	}

	return nil
}

// RecordBatch stores one position sample per flight, all stamped with the
// batch time. Runs in a single transaction.
func (s *TrackStorage) RecordBatch(flights []*prediction.FlightState, at time.Time) error {
	if len(flights) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO position_tracks
		(aircraft_id, callsign, lat, lon, baro_altitude_m, ground_speed_ms, track_deg, vertical_rate_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	ts := at.UTC().Format(time.RFC3339)
	for _, f := range flights {
		if _, err := stmt.Exec(
			f.ID,
			f.Callsign,
			f.Lat,
			f.Lon,
			nullableFloat(f.BaroAltitudeM),
			nullableFloat(f.GroundSpeedMS),
			nullableFloat(f.TrackDeg),
			nullableFloat(f.VerticalRateMS),
			ts,
		); err != nil {
			return fmt.Errorf("failed to insert track point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit track batch: %w", err)
	}
	return nil
}

// GetTracks returns the most recent track points for an aircraft, newest
// first.
func (s *TrackStorage) GetTracks(aircraftID string, limit int) ([]*TrackPoint, error) {
	rows, err := s.db.Query(
		`SELECT id, aircraft_id, callsign, lat, lon, baro_altitude_m, ground_speed_ms, track_deg, vertical_rate_ms, timestamp
		FROM position_tracks
		WHERE aircraft_id = ?
		ORDER BY timestamp DESC
		LIMIT ?`,
		aircraftID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	return scanTrackRows(rows)
}

// Prune deletes track points older than the retention window and returns the
// number removed.
func (s *TrackStorage) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention).Format(time.RFC3339)
	result, err := s.db.Exec(`DELETE FROM position_tracks WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune tracks: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned tracks: %w", err)
	}
	return n, nil
}

// scanTrackRows scans database rows into TrackPoint structs.
func scanTrackRows(rows *sql.Rows) ([]*TrackPoint, error) {
	var points []*TrackPoint
	for rows.Next() {
		var p TrackPoint
		var callsign sql.NullString
		var alt, gs, track, vrate sql.NullFloat64
		var timestamp string

		if err := rows.Scan(
			&p.ID,
			&p.AircraftID,
			&callsign,
			&p.Lat,
			&p.Lon,
			&alt,
			&gs,
			&track,
			&vrate,
			&timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan track point: %w", err)
		}

		var err error
		p.Timestamp, err = time.Parse(time.RFC3339, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}

		if callsign.Valid {
			p.Callsign = callsign.String
		}
		p.BaroAltitudeM = nullFloatPtr(alt)
		p.GroundSpeedMS = nullFloatPtr(gs)
		p.TrackDeg = nullFloatPtr(track)
		p.VerticalRateMS = nullFloatPtr(vrate)

		points = append(points, &p)
	}
	return points, rows.Err()
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
