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

// An OutlierRemover drops samples whose implied movement speed is not
// plausible for a foot activity. The implied speed is measured
// against the last kept sample, so a single teleporting fix does not
// drag its successors with it.
type OutlierRemover struct {
	// MaxSpeed is the plausibility ceiling in m/s.
	MaxSpeed float64
}

// Run this OutlierRemover on some track file
func (o OutlierRemover) Run(f *track.File) {
	fmt.Fprintf(os.Stdout, "Removing implausible samples... ")

	bef := f.NumSamples()

	for _, t := range f.Tracks {
		kept := make([]track.Sample, 0, len(t.Samples))

		for _, s := range t.Samples {
			if len(kept) == 0 {
				kept = append(kept, s)
				continue
			}

			last := &kept[len(kept)-1]
			dt := s.Timestamp.Sub(last.Timestamp).Seconds()

			if dt > 0 && distP(last, &s)/dt > o.MaxSpeed {
				continue
			}

			kept = append(kept, s)
		}

		t.Samples = kept
	}

	fmt.Fprintf(os.Stdout, "done. (-%d samples [-%.2f%%])\n",
		bef-f.NumSamples(),
		100.0*float64(bef-f.NumSamples())/(float64(bef)+0.001))
}
