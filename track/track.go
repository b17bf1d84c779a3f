// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package track

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// A Sample is a single timestamped geolocation reading with its
// sensor channels. Optional channels are nil when the recording
// device did not provide them.
type Sample struct {
	Timestamp time.Time
	Lat       float64
	Lon       float64

	// RawAltitude is the device-reported altitude in meters and is
	// always present.
	RawAltitude         float64
	BarometricAltitude  *float64
	FusedAltitude       *float64
	ElevationConfidence *float64

	HorizontalAccuracy float64
	VerticalAccuracy   float64

	// Speed is in m/s, Course in degrees [0, 360). A negative course
	// means unknown.
	Speed  float64
	Course float64
}

// BestAltitude resolves the altitude channels into a single value:
// the fused estimate if its confidence is at least 0.5, else the
// barometric altitude, else the raw altitude.
func (s Sample) BestAltitude() float64 {
	if s.FusedAltitude != nil && s.ElevationConfidence != nil && *s.ElevationConfidence >= 0.5 {
		return *s.FusedAltitude
	}
	if s.BarometricAltitude != nil {
		return *s.BarometricAltitude
	}
	return s.RawAltitude
}

// A Track is one continuous recorded sample sequence.
type Track struct {
	Name    string
	Samples []Sample
}

// A File is a parsed input file, possibly holding several tracks.
type File struct {
	Source string
	Tracks []*Track
}

// NumSamples returns the total sample count over all tracks.
func (f *File) NumSamples() int {
	n := 0
	for _, t := range f.Tracks {
		n += len(t.Samples)
	}
	return n
}

// Subsequence selects the samples at the given ascending indices.
func Subsequence(samples []Sample, indices []int) []Sample {
	ret := make([]Sample, 0, len(indices))
	for _, i := range indices {
		ret = append(ret, samples[i])
	}
	return ret
}

// Float returns a pointer to v, for filling optional channels.
func Float(v float64) *float64 {
	return &v
}

// Parse reads a track file, the format is chosen by the file
// extension (.gpx or .csv).
func Parse(path string) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		return ParseGPX(path)
	case ".csv":
		return ParseCSV(path)
	}
	return nil, fmt.Errorf("unsupported input format '%s'", filepath.Ext(path))
}

// Write writes a track file, the format is chosen by the file
// extension (.gpx, .csv, .json or .geojson).
func Write(f *File, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		return WriteGPX(f, path)
	case ".csv":
		return WriteCSV(f, path)
	case ".json", ".geojson":
		return WriteGeoJSON(f, path)
	}
	return fmt.Errorf("unsupported output format '%s'", filepath.Ext(path))
}
