// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"testing"

	"github.com/patrickbr/tracktidy/track"
	"golang.org/x/exp/slices"
)

func request(samples []track.Sample, epsilon float64) CompressionRequest {
	return CompressionRequest{
		Samples:                  samples,
		Epsilon:                  epsilon,
		PreserveElevationChanges: true,
		ElevationThreshold:       2.0,
	}
}

func TestCompressSmallN(t *testing.T) {
	for n := 0; n <= 2; n++ {
		res := Compress(request(straight(n), 5.0))

		if len(res.KeptIndices) != n {
			t.Error(res.KeptIndices)
		}
		for i, k := range res.KeptIndices {
			if k != i {
				t.Error(res.KeptIndices)
			}
		}

		if res.OriginalCount != n || res.CompressedCount != n {
			t.Error(res)
		}

		if res.CompressionRatio != 1.0 {
			t.Error(res.CompressionRatio)
		}
	}
}

func TestCompressStraightLine(t *testing.T) {
	res := Compress(request(straight(100), 5.0))

	if !slices.Equal(res.KeptIndices, []int{0, 99}) {
		t.Error(res.KeptIndices)
	}

	if res.OriginalCount != 100 || res.CompressedCount != 2 {
		t.Error(res)
	}

	if !FloatEquals(res.CompressionRatio, 0.02, 0.0001) {
		t.Error(res.CompressionRatio)
	}
}

func TestCompressOffsetPoint(t *testing.T) {
	samples := straight(100)
	samples[50].Lat = 10 * mDeg

	res := Compress(request(samples, 5.0))

	if !slices.Contains(res.KeptIndices, 50) {
		t.Error(res.KeptIndices)
	}

	if !slices.Equal(res.KeptIndices, []int{0, 49, 50, 51, 99}) {
		t.Error(res.KeptIndices)
	}
}

func TestCompressEndpointInvariant(t *testing.T) {
	offset := straight(100)
	offset[50].Lat = 10 * mDeg

	tracks := [][]track.Sample{
		straight(1),
		straight(2),
		straight(3),
		offset,
		wiggle(150, 8, 16),
	}

	for _, samples := range tracks {
		res := Compress(request(samples, 5.0))

		if len(res.KeptIndices) == 0 || res.KeptIndices[0] != 0 {
			t.Error(res.KeptIndices)
		}

		if res.KeptIndices[len(res.KeptIndices)-1] != len(samples)-1 {
			t.Error(res.KeptIndices)
		}
	}
}

func TestCompressIdempotent(t *testing.T) {
	samples := wiggle(150, 8, 16)
	samples[40].Speed = 4.0
	samples[90].Speed = 4.0

	first := Compress(request(samples, 3.0))
	compressed := track.Subsequence(samples, first.KeptIndices)

	// re-compressing with the same or a larger tolerance keeps a
	// subset of the first kept set
	for _, eps := range []float64{3.0, 6.0} {
		second := Compress(request(compressed, eps))

		if len(second.KeptIndices) > len(first.KeptIndices) {
			t.Error(second.KeptIndices)
		}

		// mapped back to original indices, the kept set stays a
		// strictly increasing selection from the first one
		for j, k := range second.KeptIndices {
			if k < 0 || k >= len(first.KeptIndices) {
				t.Error(second.KeptIndices)
				break
			}

			if j > 0 && first.KeptIndices[second.KeptIndices[j-1]] >= first.KeptIndices[k] {
				t.Error(second.KeptIndices)
			}
		}
	}
}

func TestCompressMonotoneRatio(t *testing.T) {
	samples := wiggle(200, 4, 50)

	last := 0.0

	// shrinking the tolerance never drops the ratio
	for _, eps := range []float64{20, 10, 5, 2, 1, 0.5} {
		res := Compress(request(samples, eps))

		if res.CompressionRatio < last {
			t.Error(eps, res.CompressionRatio)
		}

		last = res.CompressionRatio
	}
}

func TestCompressElevationSpike(t *testing.T) {
	samples := straight(100)
	samples[50].RawAltitude = 110

	// a 10 m spike survives any tolerance
	for _, eps := range []float64{0.1, 5.0, 1000.0} {
		res := Compress(request(samples, eps))

		if !slices.Contains(res.KeptIndices, 50) {
			t.Error(eps, res.KeptIndices)
		}
	}
}

func TestCompressTurnPreserved(t *testing.T) {
	// 100 m east, then a 90 degree turn 100 m north
	samples := []track.Sample{
		pt(0, 0, 100),
		pt(0, 100*mDeg, 100),
		pt(100*mDeg, 100*mDeg, 100),
	}

	// far beyond the 70 m the apex deviates from the direct chord, so
	// Douglas-Peucker alone would drop it
	res := Compress(request(samples, 10000.0))

	if !slices.Equal(res.KeptIndices, []int{0, 1, 2}) {
		t.Error(res.KeptIndices)
	}
}

func TestCompressSpeedChange(t *testing.T) {
	samples := straight(100)
	for i := 60; i < 100; i++ {
		samples[i].Speed = 4.0
	}

	res := Compress(request(samples, 5.0))

	if !slices.Equal(res.KeptIndices, []int{0, 60, 99}) {
		t.Error(res.KeptIndices)
	}
}

func TestCompressBoundedError(t *testing.T) {
	// gentle enough that no behavioral rule fires, the kept set is
	// purely geometric
	samples := wiggle(300, 6, 40)
	req := request(samples, 2.0)

	res := Compress(req)

	if len(res.KeptIndices) <= 2 {
		t.Error(res.KeptIndices)
	}

	// every discarded sample stays within epsilon of the chord joining
	// its bracketing kept samples
	for k := 1; k < len(res.KeptIndices); k++ {
		l := res.KeptIndices[k-1]
		r := res.KeptIndices[k]

		for i := l + 1; i < r; i++ {
			if d := perpendicularDist(&samples[i], &samples[l], &samples[r]); d > req.Epsilon {
				t.Error(i, d)
			}
		}
	}
}

func TestCompressDoesNotMutate(t *testing.T) {
	samples := wiggle(60, 5, 12)
	samples[10].BarometricAltitude = track.Float(104)
	samples[10].FusedAltitude = track.Float(105)
	samples[10].ElevationConfidence = track.Float(0.9)

	before := slices.Clone(samples)

	Compress(request(samples, 2.0))

	if !slices.Equal(samples, before) {
		t.Error("input samples were mutated")
	}
}

func TestCompressSamples(t *testing.T) {
	samples := straight(100)
	samples[50].Lat = 10 * mDeg

	res := Compress(request(samples, 5.0))
	kept := CompressSamples(request(samples, 5.0))

	if len(kept) != res.CompressedCount {
		t.Error(kept)
	}

	for i, k := range res.KeptIndices {
		if kept[i] != samples[k] {
			t.Error(i, kept[i])
		}
	}
}
