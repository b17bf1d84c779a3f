// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package archive keeps a queryable sqlite record of compression
// runs and their kept samples.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickbr/tracktidy/track"
	_ "modernc.org/sqlite"
)

// A Run is one archived compression of a single track.
type Run struct {
	ID                    string
	CreatedAt             time.Time
	Source                string
	TrackName             string
	Epsilon               float64
	ElevationThreshold    float64
	OriginalCount         int
	CompressedCount       int
	CompressionRatio      float64
	ElevationGainErrorPct float64
	DistanceErrorPct      float64
	Valid                 bool
}

// An Archive is an open run database.
type Archive struct {
	*sql.DB
}

// Open opens the archive at path, creating the schema if needed.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			track_name TEXT NOT NULL,
			epsilon REAL NOT NULL,
			elevation_threshold REAL NOT NULL,
			original_count INTEGER NOT NULL,
			compressed_count INTEGER NOT NULL,
			compression_ratio REAL NOT NULL,
			elevation_gain_error_pct REAL NOT NULL,
			distance_error_pct REAL NOT NULL,
			valid INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS run_samples (
			run_id TEXT NOT NULL REFERENCES runs(id),
			idx INTEGER NOT NULL,
			time TEXT NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			raw_alt REAL NOT NULL,
			baro_alt REAL,
			fused_alt REAL,
			elev_conf REAL,
			h_acc REAL NOT NULL,
			v_acc REAL NOT NULL,
			speed REAL NOT NULL,
			course REAL NOT NULL,
			PRIMARY KEY (run_id, idx)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create archive schema: %w", err)
	}

	return &Archive{db}, nil
}

// InsertRun stores one run plus its kept samples, where indices[i] is
// the original index of samples[i]. A missing run ID is generated, a
// zero creation time is set to now.
func (a *Archive) InsertRun(run *Run, indices []int, samples []track.Sample) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := a.Begin()
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO runs (id, created_at, source, track_name, epsilon,
			elevation_threshold, original_count, compressed_count,
			compression_ratio, elevation_gain_error_pct,
			distance_error_pct, valid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339), run.Source,
		run.TrackName, run.Epsilon, run.ElevationThreshold,
		run.OriginalCount, run.CompressedCount, run.CompressionRatio,
		run.ElevationGainErrorPct, run.DistanceErrorPct, run.Valid)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert run: %w", err)
	}

	for i, s := range samples {
		_, err = tx.Exec(`
			INSERT INTO run_samples (run_id, idx, time, lat, lon,
				raw_alt, baro_alt, fused_alt, elev_conf, h_acc, v_acc,
				speed, course)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, indices[i], s.Timestamp.Format(time.RFC3339Nano),
			s.Lat, s.Lon, s.RawAltitude, s.BarometricAltitude,
			s.FusedAltitude, s.ElevationConfidence,
			s.HorizontalAccuracy, s.VerticalAccuracy, s.Speed, s.Course)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert run sample %d: %w", indices[i], err)
		}
	}

	return tx.Commit()
}

// Runs returns all archived runs, newest first.
func (a *Archive) Runs() ([]Run, error) {
	rows, err := a.Query(`
		SELECT id, created_at, source, track_name, epsilon,
			elevation_threshold, original_count, compressed_count,
			compression_ratio, elevation_gain_error_pct,
			distance_error_pct, valid
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Source, &r.TrackName,
			&r.Epsilon, &r.ElevationThreshold, &r.OriginalCount,
			&r.CompressedCount, &r.CompressionRatio,
			&r.ElevationGainErrorPct, &r.DistanceErrorPct,
			&r.Valid); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("scan run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// RunSamples returns the kept samples of a run together with their
// original indices, in index order.
func (a *Archive) RunSamples(runID string) ([]int, []track.Sample, error) {
	rows, err := a.Query(`
		SELECT idx, time, lat, lon, raw_alt, baro_alt, fused_alt,
			elev_conf, h_acc, v_acc, speed, course
		FROM run_samples WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("query run samples: %w", err)
	}
	defer rows.Close()

	var indices []int
	var samples []track.Sample

	for rows.Next() {
		var idx int
		var ts string
		var baro, fused, conf sql.NullFloat64
		s := track.Sample{}

		if err := rows.Scan(&idx, &ts, &s.Lat, &s.Lon, &s.RawAltitude,
			&baro, &fused, &conf, &s.HorizontalAccuracy,
			&s.VerticalAccuracy, &s.Speed, &s.Course); err != nil {
			return nil, nil, fmt.Errorf("scan run sample: %w", err)
		}
		if s.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, nil, fmt.Errorf("scan run sample %d: %w", idx, err)
		}

		if baro.Valid {
			s.BarometricAltitude = track.Float(baro.Float64)
		}
		if fused.Valid {
			s.FusedAltitude = track.Float(fused.Float64)
		}
		if conf.Valid {
			s.ElevationConfidence = track.Float(conf.Float64)
		}

		indices = append(indices, idx)
		samples = append(samples, s)
	}

	return indices, samples, rows.Err()
}
