// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"fmt"
	"os"

	"github.com/patrickbr/tracktidy/track"
	"golang.org/x/exp/slices"
)

// An ElevationSmoother applies a centered median window to each
// altitude channel, taming single-sample spikes before compression.
// Optional channels are only smoothed when they are present on every
// sample of a track, gaps are left untouched.
type ElevationSmoother struct {
	// Window is the median window size, it is forced odd and at
	// least 3.
	Window int
}

// Run this ElevationSmoother on some track file
func (es ElevationSmoother) Run(f *track.File) {
	fmt.Fprintf(os.Stdout, "Smoothing elevation... ")

	w := imax(es.Window, 3)
	if w%2 == 0 {
		w++
	}

	n := 0
	for _, t := range f.Tracks {
		n += len(t.Samples)

		raw := make([]float64, len(t.Samples))
		for i := range t.Samples {
			raw[i] = t.Samples[i].RawAltitude
		}
		smoothChannel(raw, w)
		for i := range t.Samples {
			t.Samples[i].RawAltitude = raw[i]
		}

		if baro := channelValues(t.Samples, func(s track.Sample) *float64 { return s.BarometricAltitude }); baro != nil {
			smoothChannel(baro, w)
			for i := range t.Samples {
				t.Samples[i].BarometricAltitude = track.Float(baro[i])
			}
		}

		if fused := channelValues(t.Samples, func(s track.Sample) *float64 { return s.FusedAltitude }); fused != nil {
			smoothChannel(fused, w)
			for i := range t.Samples {
				t.Samples[i].FusedAltitude = track.Float(fused[i])
			}
		}
	}

	fmt.Fprintf(os.Stdout, "done. (%d samples smoothed)\n", n)
}

// channelValues extracts an optional channel, nil if the channel has
// any gap
func channelValues(samples []track.Sample, get func(track.Sample) *float64) []float64 {
	vals := make([]float64, len(samples))
	for i, s := range samples {
		p := get(s)
		if p == nil {
			return nil
		}
		vals[i] = *p
	}
	return vals
}

// smoothChannel replaces every value by the median of its centered
// window, clipped at the channel ends
func smoothChannel(vals []float64, w int) {
	tmp := make([]float64, len(vals))
	copy(tmp, vals)

	for i := range vals {
		lo := imax(0, i-w/2)
		hi := imin(len(vals)-1, i+w/2)
		vals[i] = medianFloat(tmp[lo : hi+1])
	}
}

func medianFloat(vals []float64) float64 {
	s := make([]float64, len(vals))
	copy(s, vals)
	slices.Sort(s)

	m := len(s) / 2
	if len(s)%2 == 0 {
		return (s[m-1] + s[m]) / 2.0
	}
	return s[m]
}
