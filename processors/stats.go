// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"fmt"
	"os"
	"time"

	"github.com/patrickbr/tracktidy/track"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// segment speeds above this count as moving
const movingSpeedFloor = 0.5 // m/s

// TrackStats are the whole-track aggregates of one sample sequence.
// Speed figures are derived from geometry and timestamps, not from
// the recorded speed channel, so they also work for sources without
// one.
type TrackStats struct {
	Points        int
	Distance      float64 // meters
	Duration      float64 // seconds
	ElevationGain float64 // meters
	ElevationLoss float64 // meters
	MovingShare   float64 // 0..1
	AvgSpeed      float64 // m/s
	MedianSpeed   float64 // m/s
	P95Speed      float64 // m/s
	MaxSpeed      float64 // m/s
}

// A StatsReporter prints per-track summary statistics.
type StatsReporter struct {
}

// Run this StatsReporter on some track file
func (sr StatsReporter) Run(f *track.File) {
	for i, t := range f.Tracks {
		st := Collect(t.Samples)

		name := t.Name
		if name == "" {
			name = fmt.Sprintf("track %d", i+1)
		}

		fmt.Fprintf(os.Stdout, "%s: %d points, %.2f km in %s, +%.1f m / -%.1f m, moving %.0f%%, speed %.2f m/s avg, %.2f median, %.2f p95, %.2f max\n",
			name,
			st.Points,
			st.Distance/1000.0,
			time.Duration(st.Duration*float64(time.Second)).Round(time.Second),
			st.ElevationGain,
			st.ElevationLoss,
			100.0*st.MovingShare,
			st.AvgSpeed,
			st.MedianSpeed,
			st.P95Speed,
			st.MaxSpeed)
	}
}

// Collect computes the aggregates for one sample sequence.
func Collect(samples []track.Sample) TrackStats {
	st := TrackStats{Points: len(samples)}

	if len(samples) < 2 {
		return st
	}

	st.Distance = totalDistance(samples)
	st.Duration = samples[len(samples)-1].Timestamp.Sub(samples[0].Timestamp).Seconds()
	st.ElevationGain = elevationGain(samples)
	st.ElevationLoss = elevationLoss(samples)

	speeds := make([]float64, 0, len(samples)-1)
	moving := 0.0

	for i := 1; i < len(samples); i++ {
		dt := samples[i].Timestamp.Sub(samples[i-1].Timestamp).Seconds()
		if dt <= 0 {
			continue
		}

		v := distP(&samples[i-1], &samples[i]) / dt
		speeds = append(speeds, v)

		if v > movingSpeedFloor {
			moving += dt
		}
	}

	if len(speeds) == 0 {
		return st
	}

	if st.Duration > 0 {
		st.MovingShare = moving / st.Duration
	}

	st.AvgSpeed = stat.Mean(speeds, nil)
	st.MaxSpeed = slices.Max(speeds)

	slices.Sort(speeds)
	st.MedianSpeed = stat.Quantile(0.5, stat.Empirical, speeds, nil)
	st.P95Speed = stat.Quantile(0.95, stat.Empirical, speeds, nil)

	return st
}
