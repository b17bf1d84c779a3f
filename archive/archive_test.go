// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/patrickbr/tracktidy/track"
)

func TestArchive(t *testing.T) {
	a, err := Open(filepath.Join(t.TempDir(), "runs.db"))

	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	t0 := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)

	samples := []track.Sample{
		{
			Timestamp:           t0,
			Lat:                 47.99,
			Lon:                 7.84,
			RawAltitude:         280,
			BarometricAltitude:  track.Float(279.8),
			FusedAltitude:       track.Float(279.9),
			ElevationConfidence: track.Float(0.8),
			HorizontalAccuracy:  5,
			VerticalAccuracy:    8,
			Speed:               1.5,
			Course:              90,
		},
		{
			Timestamp:          t0.Add(99 * time.Second),
			Lat:                47.9901,
			Lon:                7.8413,
			RawAltitude:        281.2,
			HorizontalAccuracy: 5,
			VerticalAccuracy:   8,
			Speed:              1.5,
			Course:             90,
		},
	}

	run := &Run{
		Source:                "run.csv",
		TrackName:             "morning loop",
		Epsilon:               5.0,
		ElevationThreshold:    2.0,
		OriginalCount:         100,
		CompressedCount:       2,
		CompressionRatio:      0.02,
		ElevationGainErrorPct: 0.5,
		DistanceErrorPct:      0.1,
		Valid:                 true,
	}

	if err := a.InsertRun(run, []int{0, 99}, samples); err != nil {
		t.Fatal(err)
	}

	if run.ID == "" {
		t.Error("no run id assigned")
	}

	runs, err := a.Runs()

	if err != nil {
		t.Fatal(err)
	}

	if len(runs) != 1 {
		t.Fatal(runs)
	}

	if runs[0].ID != run.ID || runs[0].TrackName != "morning loop" || !runs[0].Valid {
		t.Error(runs[0])
	}

	if runs[0].OriginalCount != 100 || runs[0].CompressedCount != 2 {
		t.Error(runs[0])
	}

	indices, got, err := a.RunSamples(run.ID)

	if err != nil {
		t.Fatal(err)
	}

	if len(indices) != 2 || indices[0] != 0 || indices[1] != 99 {
		t.Error(indices)
	}

	if len(got) != 2 {
		t.Fatal(got)
	}

	if !got[0].Timestamp.Equal(t0) || got[0].Lat != 47.99 || got[0].Lon != 7.84 {
		t.Error(got[0])
	}

	if got[0].BarometricAltitude == nil || *got[0].BarometricAltitude != 279.8 {
		t.Error(got[0].BarometricAltitude)
	}

	if got[0].ElevationConfidence == nil || *got[0].ElevationConfidence != 0.8 {
		t.Error(got[0].ElevationConfidence)
	}

	// absent optional channels stay absent
	if got[1].BarometricAltitude != nil || got[1].FusedAltitude != nil || got[1].ElevationConfidence != nil {
		t.Error(got[1])
	}

	if got[1].RawAltitude != 281.2 || got[1].Speed != 1.5 {
		t.Error(got[1])
	}
}
