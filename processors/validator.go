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

// fixed acceptance gates, they encode the accuracy guarantee and are
// not configurable
const (
	maxElevationGainErrorPct = 5.0
	maxDistanceErrorPct      = 2.0
)

// A ValidationResult reports the reconstruction error of a compressed
// track against its original. Percentages are 0 when the original
// metric is 0.
type ValidationResult struct {
	ElevationGainError    float64
	ElevationGainErrorPct float64
	DistanceError         float64
	DistanceErrorPct      float64
	IsValid               bool
}

// A Validator recomputes whole-track aggregates on the original and
// the compressed sequence and reports their relative error. Advisory
// only, the retry decision belongs to the caller.
type Validator struct {
}

// Validate compares total distance and elevation gain between
// original and compressed.
func (v Validator) Validate(original []track.Sample, compressed []track.Sample) ValidationResult {
	ret := ValidationResult{}

	gainO := elevationGain(original)
	gainC := elevationGain(compressed)
	distO := totalDistance(original)
	distC := totalDistance(compressed)

	ret.ElevationGainError = math.Abs(gainO - gainC)
	if gainO != 0 {
		ret.ElevationGainErrorPct = 100.0 * ret.ElevationGainError / gainO
	}

	ret.DistanceError = math.Abs(distO - distC)
	if distO != 0 {
		ret.DistanceErrorPct = 100.0 * ret.DistanceError / distO
	}

	ret.IsValid = ret.ElevationGainErrorPct < maxElevationGainErrorPct &&
		ret.DistanceErrorPct < maxDistanceErrorPct

	return ret
}

// elevationGain sums the positive consecutive best-altitude deltas
func elevationGain(samples []track.Sample) float64 {
	gain := 0.0
	for i := 1; i < len(samples); i++ {
		d := samples[i].BestAltitude() - samples[i-1].BestAltitude()
		if d > 0 {
			gain += d
		}
	}
	return gain
}

// elevationLoss sums the negative consecutive best-altitude deltas
func elevationLoss(samples []track.Sample) float64 {
	loss := 0.0
	for i := 1; i < len(samples); i++ {
		d := samples[i].BestAltitude() - samples[i-1].BestAltitude()
		if d < 0 {
			loss -= d
		}
	}
	return loss
}

// totalDistance sums the consecutive great-circle distances
func totalDistance(samples []track.Sample) float64 {
	dist := 0.0
	for i := 1; i < len(samples); i++ {
		dist += distP(&samples[i-1], &samples[i])
	}
	return dist
}
