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
)

// A PauseDropper collapses stationary clusters to their first sample.
// A cluster is a run of consecutive samples that all stay within
// Radius meters of the run's first sample and spans at least
// MinDuration seconds.
type PauseDropper struct {
	Radius      float64
	MinDuration float64
}

// Run this PauseDropper on some track file
func (p PauseDropper) Run(f *track.File) {
	fmt.Fprintf(os.Stdout, "Dropping pauses... ")

	bef := f.NumSamples()

	for _, t := range f.Tracks {
		n := len(t.Samples)
		kept := make([]track.Sample, 0, n)

		i := 0
		for i < n {
			j := i + 1
			for j < n && distP(&t.Samples[i], &t.Samples[j]) <= p.Radius {
				j++
			}

			dur := t.Samples[j-1].Timestamp.Sub(t.Samples[i].Timestamp).Seconds()
			if j-i > 1 && dur >= p.MinDuration {
				kept = append(kept, t.Samples[i])
			} else {
				kept = append(kept, t.Samples[i:j]...)
			}

			i = j
		}

		t.Samples = kept
	}

	fmt.Fprintf(os.Stdout, "done. (-%d samples [-%.2f%%])\n",
		bef-f.NumSamples(),
		100.0*float64(bef-f.NumSamples())/(float64(bef)+0.001))
}
