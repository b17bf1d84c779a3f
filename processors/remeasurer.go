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

// A Remeasurer fills the speed and course channels from the recorded
// geometry and timestamps, for sources (like plain GPX) that carry
// neither.
type Remeasurer struct {
	// Force overwrites channels that are already present.
	Force bool
}

// Run this Remeasurer on some track file
func (r Remeasurer) Run(f *track.File) {
	fmt.Fprintf(os.Stdout, "Remeasuring speed and course... ")

	filled := 0

	for _, t := range f.Tracks {
		n := len(t.Samples)

		for i := 0; i < n; i++ {
			s := &t.Samples[i]
			touched := false

			if r.Force || s.Speed == 0 {
				// the first sample takes the speed of the first
				// segment
				j := imax(i, 1)
				if j < n {
					dt := t.Samples[j].Timestamp.Sub(t.Samples[j-1].Timestamp).Seconds()
					if dt > 0 {
						s.Speed = distP(&t.Samples[j-1], &t.Samples[j]) / dt
						touched = true
					}
				}
			}

			if r.Force || s.Course < 0 {
				if i+1 < n {
					s.Course = bearing(s, &t.Samples[i+1])
					touched = true
				} else if i > 0 {
					s.Course = bearing(&t.Samples[i-1], s)
					touched = true
				}
			}

			if touched {
				filled++
			}
		}
	}

	fmt.Fprintf(os.Stdout, "done. (%d samples remeasured)\n", filled)
}
