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

// A PathSimplifier thins track geometry using Douglas-Peucker. Every
// discarded sample lies within Epsilon meters of the chord joining
// its bracketing kept samples.
type PathSimplifier struct {
	Epsilon float64
}

// Run this PathSimplifier on some track file
func (ps PathSimplifier) Run(f *track.File) {
	fmt.Fprintf(os.Stdout, "Simplifying track geometry... ")
	numchunks := MaxParallelism()
	chunksize := (len(f.Tracks) + numchunks - 1) / numchunks
	chunks := make([][]*track.Track, numchunks)
	chunkgain := make([]int, numchunks)
	chunknum := make([]int, numchunks)

	curchunk := 0
	for _, t := range f.Tracks {
		chunks[curchunk] = append(chunks[curchunk], t)
		if len(chunks[curchunk]) == chunksize {
			curchunk++
		}
	}

	sem := make(chan empty, numchunks)
	for i, c := range chunks {
		go func(chunk []*track.Track, a int) {
			for _, t := range chunk {
				bef := len(t.Samples)
				chunknum[a] += bef
				t.Samples = track.Subsequence(t.Samples, ps.Simplify(t.Samples))
				chunkgain[a] += bef - len(t.Samples)
			}
			sem <- empty{}
		}(c, i)
	}

	// wait for goroutines to finish
	for i := 0; i < len(chunks); i++ {
		<-sem
	}

	n := 0
	orign := 0
	for _, g := range chunkgain {
		n = n + g
	}
	for _, g := range chunknum {
		orign = orign + g
	}
	fmt.Fprintf(os.Stdout, "done. (-%d points [-%.2f%%])\n",
		n,
		100.0*float64(n)/(float64(orign)+0.001))
}

// Simplify returns the ascending set of original sample indices kept
// by Douglas-Peucker with tolerance Epsilon. The subdivision uses an
// explicit stack, recursion on degenerate tracks would grow linear in
// the input.
func (ps PathSimplifier) Simplify(samples []track.Sample) []int {
	n := len(samples)

	if n <= 2 {
		ret := make([]int, 0, n)
		for i := 0; i < n; i++ {
			ret = append(ret, i)
		}
		return ret
	}

	keep := make([]bool, n)
	keep[0] = true
	keep[n-1] = true

	type span struct {
		start int
		end   int
	}

	stack := make([]span, 0, 64)
	stack = append(stack, span{0, n - 1})

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.end-s.start <= 1 {
			continue
		}

		var maxD float64
		var maxI int

		for i := s.start + 1; i < s.end; i++ {
			d := perpendicularDist(&samples[i], &samples[s.start], &samples[s.end])
			if d > maxD {
				maxI = i
				maxD = d
			}
		}

		if maxD > ps.Epsilon {
			keep[maxI] = true
			stack = append(stack, span{s.start, maxI}, span{maxI, s.end})
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

// simplifyRange is the recursive reference form of Simplify over the
// index range [start, end], kept as the oracle the iterative variant
// is checked against.
func (ps PathSimplifier) simplifyRange(samples []track.Sample, start int, end int) []int {
	if end-start <= 1 {
		return []int{start, end}
	}

	var maxD float64
	var maxI int

	for i := start + 1; i < end; i++ {
		d := perpendicularDist(&samples[i], &samples[start], &samples[end])
		if d > maxD {
			maxI = i
			maxD = d
		}
	}

	if maxD > ps.Epsilon {
		retA := ps.simplifyRange(samples, start, maxI)
		retB := ps.simplifyRange(samples, maxI, end)

		return append(retA[:len(retA)-1], retB...)
	}

	return []int{start, end}
}
