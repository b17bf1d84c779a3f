// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package track

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/go.geojson"
)

func TestBestAltitude(t *testing.T) {
	s := Sample{RawAltitude: 100}

	if a := s.BestAltitude(); a != 100 {
		t.Error(a)
	}

	s.BarometricAltitude = Float(90)

	if a := s.BestAltitude(); a != 90 {
		t.Error(a)
	}

	// a fused estimate without a confidence is not trusted
	s.FusedAltitude = Float(95)

	if a := s.BestAltitude(); a != 90 {
		t.Error(a)
	}

	s.ElevationConfidence = Float(0.4)

	if a := s.BestAltitude(); a != 90 {
		t.Error(a)
	}

	// the 0.5 confidence bound is inclusive
	s.ElevationConfidence = Float(0.5)

	if a := s.BestAltitude(); a != 95 {
		t.Error(a)
	}

	s.BarometricAltitude = nil
	s.ElevationConfidence = Float(0.3)

	if a := s.BestAltitude(); a != 100 {
		t.Error(a)
	}
}

func TestSubsequence(t *testing.T) {
	samples := []Sample{{Lon: 0}, {Lon: 1}, {Lon: 2}, {Lon: 3}}

	sub := Subsequence(samples, []int{0, 2, 3})

	if len(sub) != 3 || sub[0].Lon != 0 || sub[1].Lon != 2 || sub[2].Lon != 3 {
		t.Error(sub)
	}

	if len(Subsequence(samples, []int{})) != 0 {
		t.Error("empty index set")
	}
}

func TestParseUnsupported(t *testing.T) {
	if _, err := Parse("track.kml"); err == nil {
		t.Error("no errors found")
	}

	if err := Write(&File{}, "track.kml"); err == nil {
		t.Error("no errors found")
	}
}

func TestParseGPX(t *testing.T) {
	f, err := ParseGPX("./testdata/run.gpx")

	if err != nil {
		t.Fatal(err)
	}

	if len(f.Tracks) != 1 {
		t.Fatal(f.Tracks)
	}

	trk := f.Tracks[0]

	if trk.Name != "morning loop" {
		t.Error(trk.Name)
	}

	if len(trk.Samples) != 6 {
		t.Fatal(trk.Samples)
	}

	s := trk.Samples[0]

	if s.Lat != 47.99 || s.Lon != 7.84 || s.RawAltitude != 280.0 {
		t.Error(s)
	}

	if !s.Timestamp.Equal(time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)) {
		t.Error(s.Timestamp)
	}

	// GPX carries no speed or course channels
	if s.Speed != 0 || s.Course >= 0 {
		t.Error(s)
	}

	if s.BarometricAltitude != nil || s.FusedAltitude != nil {
		t.Error(s)
	}
}

func TestWriteGeoJSON(t *testing.T) {
	f, err := ParseGPX("./testdata/run.gpx")

	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "run.geojson")

	if err := WriteGeoJSON(f, path); err != nil {
		t.Fatal(err)
	}

	bytes, err := os.ReadFile(path)

	if err != nil {
		t.Fatal(err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(bytes)

	if err != nil {
		t.Fatal(err)
	}

	if len(fc.Features) != 1 {
		t.Fatal(fc.Features)
	}

	feat := fc.Features[0]

	if !feat.Geometry.IsLineString() || len(feat.Geometry.LineString) != 6 {
		t.Error(feat.Geometry)
	}

	// coordinates are (lon, lat, best altitude)
	c := feat.Geometry.LineString[0]

	if len(c) != 3 || c[0] != 7.84 || c[1] != 47.99 || c[2] != 280.0 {
		t.Error(c)
	}

	if name, _ := feat.PropertyString("name"); name != "morning loop" {
		t.Error(feat.Properties)
	}
}
