// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"math"

	"github.com/patrickbr/tracktidy/track"
)

// fixed rule thresholds
const (
	turnAngleThreshold  = 30.0 // degrees
	speedDeltaThreshold = 2.0  // m/s
)

// A KeyPointDetector marks samples that must survive any
// simplification for behavioral reasons: the elevation profile, turns
// and speed changes.
type KeyPointDetector struct {
	// ElevationThreshold is the minimum absolute best-altitude delta
	// in meters for the elevation rules.
	ElevationThreshold       float64
	PreserveElevationChanges bool
}

// Detect returns the ascending index set in samples that must be kept
// regardless of geometric simplification. Endpoints are always kept,
// interior samples by the elevation, turn and speed rules. Single
// forward pass, each rule independent and additive.
func (kd KeyPointDetector) Detect(samples []track.Sample) []int {
	n := len(samples)
	if n == 0 {
		return []int{}
	}

	keep := make([]bool, n)
	keep[0] = true
	keep[n-1] = true

	for i := 1; i < n; i++ {
		if i < n-1 {
			if kd.PreserveElevationChanges {
				prev := samples[i].BestAltitude() - samples[i-1].BestAltitude()
				next := samples[i+1].BestAltitude() - samples[i].BestAltitude()

				if math.Abs(prev) >= kd.ElevationThreshold || math.Abs(next) >= kd.ElevationThreshold {
					keep[i] = true
				}

				// strict local extremum with at least one adjacent
				// change above noise level
				if (prev > 0 && next < 0) || (prev < 0 && next > 0) {
					if math.Abs(prev) >= kd.ElevationThreshold || math.Abs(next) >= kd.ElevationThreshold {
						keep[i] = true
					}
				}
			}

			if math.Abs(turnAngle(&samples[i-1], &samples[i], &samples[i+1])) >= turnAngleThreshold {
				keep[i] = true
			}
		}

		if math.Abs(samples[i].Speed-samples[i-1].Speed) >= speedDeltaThreshold {
			keep[i] = true
		}
	}

	ret := make([]int, 0, n)
	for i, k := range keep {
		if k {
			ret = append(ret, i)
		}
	}

	return ret
}
