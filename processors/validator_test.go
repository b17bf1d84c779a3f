// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"testing"

	"github.com/patrickbr/tracktidy/track"
)

func TestValidatorRoundTrip(t *testing.T) {
	// all discarded samples lie exactly on the kept chord
	samples := straight(100)

	res := Compress(request(samples, 5.0))
	v := Validator{}.Validate(samples, track.Subsequence(samples, res.KeptIndices))

	if v.ElevationGainError != 0 {
		t.Error(v.ElevationGainError)
	}

	if v.DistanceErrorPct >= 2.0 {
		t.Error(v.DistanceErrorPct)
	}

	if !v.IsValid {
		t.Error(v)
	}
}

func TestValidatorDistanceGate(t *testing.T) {
	// cutting the corner of an L-shaped track loses 29% of the length
	original := []track.Sample{
		pt(0, 0, 100),
		pt(0, 100*mDeg, 100),
		pt(100*mDeg, 100*mDeg, 100),
	}
	compressed := []track.Sample{original[0], original[2]}

	v := Validator{}.Validate(original, compressed)

	if !FloatEquals(v.DistanceError, 58.58, 0.1) {
		t.Error(v.DistanceError)
	}

	if !FloatEquals(v.DistanceErrorPct, 29.29, 0.1) {
		t.Error(v.DistanceErrorPct)
	}

	if v.ElevationGainErrorPct != 0 {
		t.Error(v.ElevationGainErrorPct)
	}

	if v.IsValid {
		t.Error(v)
	}
}

func TestValidatorElevationGate(t *testing.T) {
	// dropping a 10 m peak on a straight line keeps the distance but
	// loses the whole gain
	original := []track.Sample{
		pt(0, 0, 100),
		pt(0, 100*mDeg, 110),
		pt(0, 200*mDeg, 100),
	}
	compressed := []track.Sample{original[0], original[2]}

	v := Validator{}.Validate(original, compressed)

	if !FloatEquals(v.ElevationGainError, 10.0, EPS) {
		t.Error(v.ElevationGainError)
	}

	if !FloatEquals(v.ElevationGainErrorPct, 100.0, EPS) {
		t.Error(v.ElevationGainErrorPct)
	}

	if v.DistanceErrorPct >= 2.0 {
		t.Error(v.DistanceErrorPct)
	}

	if v.IsValid {
		t.Error(v)
	}
}

func TestValidatorZeroMetrics(t *testing.T) {
	// percentages are 0 when the original metric is 0
	original := []track.Sample{pt(47.99, 7.84, 280), pt(47.99, 7.84, 280)}

	v := Validator{}.Validate(original, original)

	if v.ElevationGainErrorPct != 0 || v.DistanceErrorPct != 0 {
		t.Error(v)
	}

	if !v.IsValid {
		t.Error(v)
	}
}
