// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"testing"
	"time"

	"github.com/patrickbr/tracktidy/track"
)

// a walk, a standstill of the given duration, and a walk again
func pausedTrack(pauseSeconds int) []track.Sample {
	t0 := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)

	samples := make([]track.Sample, 0, 25)

	for i := 0; i < 10; i++ {
		samples = append(samples, track.Sample{
			Timestamp:   t0.Add(time.Duration(i) * time.Second),
			Lon:         float64(i) * 5 * mDeg,
			RawAltitude: 100,
		})
	}

	// five fixes jittering within half a meter
	for j := 0; j < 5; j++ {
		samples = append(samples, track.Sample{
			Timestamp:   t0.Add(time.Duration(10+j*pauseSeconds/4) * time.Second),
			Lon:         (50 + 0.1*float64(j)) * mDeg,
			RawAltitude: 100,
		})
	}

	for k := 0; k < 10; k++ {
		samples = append(samples, track.Sample{
			Timestamp:   t0.Add(time.Duration(11+pauseSeconds+k) * time.Second),
			Lon:         (55 + float64(k)*5) * mDeg,
			RawAltitude: 100,
		})
	}

	return samples
}

func TestPauseDropper(t *testing.T) {
	f := &track.File{Tracks: []*track.Track{{Samples: pausedTrack(40)}}}

	PauseDropper{Radius: 3.0, MinDuration: 30.0}.Run(f)

	if f.NumSamples() != 21 {
		t.Error(f.NumSamples())
	}

	// the cluster collapses to its first sample
	s := f.Tracks[0].Samples[10]
	if s.Lon != 50*mDeg {
		t.Error(s)
	}
}

func TestPauseDropperShortStop(t *testing.T) {
	// a 20 s standstill is below the minimum duration and survives
	f := &track.File{Tracks: []*track.Track{{Samples: pausedTrack(20)}}}

	PauseDropper{Radius: 3.0, MinDuration: 30.0}.Run(f)

	if f.NumSamples() != 25 {
		t.Error(f.NumSamples())
	}
}
