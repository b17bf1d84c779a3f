// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"fmt"
	"os"

	"github.com/patrickbr/tracktidy/archive"
	"github.com/patrickbr/tracktidy/track"
)

// retry bounds for the caller-side policies
const (
	maxValidationRetries = 8
	maxBudgetRetries     = 16
)

// A CompressionRequest bundles the input of one compression call.
type CompressionRequest struct {
	Samples []track.Sample

	// Epsilon is the Douglas-Peucker tolerance in meters, > 0.
	Epsilon float64

	PreserveElevationChanges bool

	// ElevationThreshold is the key-point elevation delta in meters.
	ElevationThreshold float64
}

// A CompressionResult describes the kept subsequence. KeptIndices is
// strictly increasing and contains the first and last input index
// whenever the input is non-empty.
type CompressionResult struct {
	KeptIndices      []int
	OriginalCount    int
	CompressedCount  int
	CompressionRatio float64
}

// Compress reduces the request's sample sequence to the union of the
// behaviorally forced key points and the Douglas-Peucker selection.
// Sequences of up to 2 samples are returned unchanged. The input is
// never mutated, only a subsequence is selected.
func Compress(req CompressionRequest) CompressionResult {
	n := len(req.Samples)

	if n <= 2 {
		ret := make([]int, 0, n)
		for i := 0; i < n; i++ {
			ret = append(ret, i)
		}
		return CompressionResult{KeptIndices: ret, OriginalCount: n, CompressedCount: n, CompressionRatio: 1.0}
	}

	kd := KeyPointDetector{
		ElevationThreshold:       req.ElevationThreshold,
		PreserveElevationChanges: req.PreserveElevationChanges,
	}
	ps := PathSimplifier{Epsilon: req.Epsilon}

	kept := merge(kd.Detect(req.Samples), ps.Simplify(req.Samples))

	return CompressionResult{
		KeptIndices:      kept,
		OriginalCount:    n,
		CompressedCount:  len(kept),
		CompressionRatio: float64(len(kept)) / float64(n),
	}
}

// CompressSamples is a convenience variant returning the kept samples
// instead of their indices.
func CompressSamples(req CompressionRequest) []track.Sample {
	return track.Subsequence(req.Samples, Compress(req).KeptIndices)
}

// A Compressor applies Compress to every track of a file. EnsureValid
// and MaxPoints are caller-side policies around the pure compression:
// EnsureValid halves epsilon until the result passes validation,
// MaxPoints grows epsilon until the kept count fits the budget. Both
// retry a bounded number of times, the budget wins over validity.
type Compressor struct {
	Epsilon                  float64
	ElevationThreshold       float64
	PreserveElevationChanges bool
	EnsureValid              bool
	MaxPoints                int

	// Archive, when set, records every track's run together with the
	// kept samples. Source names the input in the archive.
	Archive *archive.Archive
	Source  string
}

// a runRecord keeps what the archive needs about one compressed track
type runRecord struct {
	name    string
	orig    []track.Sample
	res     CompressionResult
	epsilon float64
}

// Run this Compressor on some track file
func (c Compressor) Run(f *track.File) {
	fmt.Fprintf(os.Stdout, "Compressing tracks... ")
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

	chunkrecs := make([][]runRecord, numchunks)

	sem := make(chan empty, numchunks)
	for i, chunk := range chunks {
		go func(chunk []*track.Track, a int) {
			for _, t := range chunk {
				bef := len(t.Samples)
				chunknum[a] += bef
				res, eps := c.compressTrack(t.Samples)
				if c.Archive != nil {
					chunkrecs[a] = append(chunkrecs[a], runRecord{t.Name, t.Samples, res, eps})
				}
				t.Samples = track.Subsequence(t.Samples, res.KeptIndices)
				chunkgain[a] += bef - len(t.Samples)
			}
			sem <- empty{}
		}(chunk, i)
	}

	// wait for goroutines to finish
	for i := 0; i < len(chunks); i++ {
		<-sem
	}

	if c.Archive != nil {
		for _, recs := range chunkrecs {
			for _, rec := range recs {
				if err := c.archiveRun(rec); err != nil {
					panic(fmt.Errorf("could not archive compression run: %v", err))
				}
			}
		}
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

// archiveRun validates one compressed track against its original and
// stores the run record.
func (c Compressor) archiveRun(rec runRecord) error {
	compressed := track.Subsequence(rec.orig, rec.res.KeptIndices)
	val := Validator{}.Validate(rec.orig, compressed)

	return c.Archive.InsertRun(&archive.Run{
		Source:                c.Source,
		TrackName:             rec.name,
		Epsilon:               rec.epsilon,
		ElevationThreshold:    c.ElevationThreshold,
		OriginalCount:         rec.res.OriginalCount,
		CompressedCount:       rec.res.CompressedCount,
		CompressionRatio:      rec.res.CompressionRatio,
		ElevationGainErrorPct: val.ElevationGainErrorPct,
		DistanceErrorPct:      val.DistanceErrorPct,
		Valid:                 val.IsValid,
	}, rec.res.KeptIndices, compressed)
}

// compressTrack wraps the retry and budget policies around a single
// compression and returns the result with the effective epsilon.
func (c Compressor) compressTrack(samples []track.Sample) (CompressionResult, float64) {
	req := CompressionRequest{
		Samples:                  samples,
		Epsilon:                  c.Epsilon,
		PreserveElevationChanges: c.PreserveElevationChanges,
		ElevationThreshold:       c.ElevationThreshold,
	}

	res := Compress(req)

	if c.EnsureValid {
		v := Validator{}
		for try := 0; try < maxValidationRetries; try++ {
			if v.Validate(samples, track.Subsequence(samples, res.KeptIndices)).IsValid {
				break
			}
			req.Epsilon = req.Epsilon / 2.0
			res = Compress(req)
		}
	}

	if c.MaxPoints > 0 {
		// key points do not thin out with epsilon, the budget may
		// stay missed
		for try := 0; try < maxBudgetRetries && len(res.KeptIndices) > c.MaxPoints; try++ {
			req.Epsilon = req.Epsilon * 1.5
			res = Compress(req)
		}
	}

	return res, req.Epsilon
}
